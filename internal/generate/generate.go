// Package generate orchestrates one environment's manifest generation:
// load config, render every template, and atomically publish the output.
package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/smart-dc/mlflowctl/internal/config"
	"github.com/smart-dc/mlflowctl/internal/fileutil"
	"github.com/smart-dc/mlflowctl/internal/lock"
	"github.com/smart-dc/mlflowctl/internal/render"
	"github.com/smart-dc/mlflowctl/internal/template"
)

// Failure records one template that could not be rendered.
type Failure struct {
	TemplateID string
	Err        error
}

// Result summarizes one generation run. It lives for the duration of the
// invocation only; nothing about a run is persisted besides the output
// files of a fully successful one.
type Result struct {
	Environment string
	OutputDir   string

	// Written lists output file names in registry order. Empty when the
	// run failed, because a partial manifest set is never published.
	Written []string

	// Failures lists every template that failed to render, not just the
	// first, so one run surfaces all problems.
	Failures []Failure
}

// Failed reports whether any template failed to render.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// FailureReport returns a one-line-per-template summary of all failures.
func (r *Result) FailureReport() string {
	lines := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		lines[i] = fmt.Sprintf("%s: %v", f.TemplateID, f.Err)
	}
	return strings.Join(lines, "\n")
}

// Render loads the environment's config and renders every template in
// registry order without writing anything. Render failures are collected
// into the Result; a config failure aborts with an error instead.
func Render(ctx context.Context, root, envID string) (*Result, []*render.Manifest, error) {
	env, err := config.Load(ctx, root, envID)
	if err != nil {
		return nil, nil, err
	}

	if err := checkSiblings(root, env); err != nil {
		return nil, nil, err
	}

	result := &Result{
		Environment: envID,
		OutputDir:   config.OutputDir(root, envID),
	}

	bindings := render.Bindings(env)

	var manifests []*render.Manifest
	for _, def := range template.List() {
		m, err := render.Render(def, envID, bindings)
		if err != nil {
			result.Failures = append(result.Failures, Failure{TemplateID: def.ID, Err: err})
			continue
		}
		manifests = append(manifests, m)
	}

	return result, manifests, nil
}

// Run renders an environment and, if every template succeeded, publishes
// the manifest set to <env>/generated/ with an atomic directory swap.
// When any template fails, nothing is written and the previous output is
// left untouched.
func Run(ctx context.Context, root, envID string) (*Result, error) {
	result, manifests, err := Render(ctx, root, envID)
	if err != nil {
		return nil, err
	}

	return finish(config.EnvDir(root, envID), result, manifests)
}

// finish publishes a render unless it failed; a failed render writes
// nothing and leaves any prior output untouched.
func finish(envDir string, result *Result, manifests []*render.Manifest) (*Result, error) {
	if result.Failed() {
		return result, nil
	}

	err := lock.WithLock(envDir, "generate", func() error {
		return publish(result, manifests)
	})
	if err != nil {
		return nil, fmt.Errorf("publish %s: %w", result.Environment, err)
	}

	return result, nil
}

// publish stages every manifest into a temp directory next to the output
// directory, then swaps the two. A failed stage never touches the output.
func publish(result *Result, manifests []*render.Manifest) error {
	staging := result.OutputDir + ".staging-" + uuid.New().String()[:8]
	if err := os.MkdirAll(staging, 0755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	success := false
	defer func() {
		if !success {
			os.RemoveAll(staging)
		}
	}()

	for _, m := range manifests {
		path := filepath.Join(staging, m.FileName)
		if err := fileutil.WriteFile(path, m.Content, 0644); err != nil {
			return fmt.Errorf("stage %s: %w", m.FileName, err)
		}
	}

	if err := fileutil.ReplaceDir(result.OutputDir, staging); err != nil {
		return fmt.Errorf("replace output directory: %w", err)
	}
	success = true

	for _, m := range manifests {
		result.Written = append(result.Written, m.FileName)
	}
	return nil
}

// checkSiblings guards the cross-environment invariants: two environments
// may not share a namespace or ingress path. Sibling configs that are
// absent or unparseable are skipped; they fail on their own runs.
func checkSiblings(root string, env *config.Environment) error {
	envs := []*config.Environment{env}
	for _, id := range config.Environments {
		if id == env.ID {
			continue
		}
		sibling, err := config.Peek(root, id)
		if err != nil {
			continue
		}
		envs = append(envs, sibling)
	}
	return config.CheckCollisions(envs)
}
