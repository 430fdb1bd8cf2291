// Package config loads and validates per-environment deployment
// configuration for the MLflow manifest generator.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Known environment identifiers. The generator refuses anything else.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Environments lists every known environment identifier.
var Environments = []string{EnvDev, EnvProd}

// ErrUnknownEnvironment indicates an identifier outside the known set.
var ErrUnknownEnvironment = errors.New("unknown environment")

// Database holds the PostgreSQL backend-store connection parameters.
// Credentials are not part of the config document; see CredentialsFile.
type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Schema   string `yaml:"schema"`
}

// Resources holds the container resource requests and limits.
type Resources struct {
	CPURequest    string `yaml:"cpuRequest"`
	MemoryRequest string `yaml:"memoryRequest"`
	CPULimit      string `yaml:"cpuLimit"`
	MemoryLimit   string `yaml:"memoryLimit"`
}

// Credentials holds the resolved database credentials. They are loaded
// from the file the config references, never from the config itself.
type Credentials struct {
	User     string `yaml:"pgUser" json:"pgUser"`
	Password string `yaml:"pgPassword" json:"pgPassword"`
}

// Environment is one deployment target, fully loaded and validated.
type Environment struct {
	// ID is the environment identifier ("dev" or "prod").
	ID string `yaml:"-"`

	Namespace       string    `yaml:"namespace"`
	Image           string    `yaml:"image"`
	IngressPath     string    `yaml:"ingressPath"`
	ServicePort     int       `yaml:"servicePort"`
	ShareName       string    `yaml:"shareName"`
	StorageCapacity string    `yaml:"storageCapacity"`
	CredentialsFile string    `yaml:"credentialsFile"`
	Database        Database  `yaml:"database"`
	Resources       Resources `yaml:"resources"`

	// Credentials is resolved from CredentialsFile during Load.
	Credentials Credentials `yaml:"-"`
}

// ValidationError names every missing or invalid config field in one run.
type ValidationError struct {
	Environment string
	Fields      []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid configuration, check fields: %s",
		e.Environment, strings.Join(e.Fields, ", "))
}

// EnvDir returns the directory holding one environment's config and output.
func EnvDir(root, envID string) string {
	return filepath.Join(root, envID)
}

// Path returns the config file path for an environment.
func Path(root, envID string) string {
	return filepath.Join(root, envID, fmt.Sprintf("mlflow-%s-config.yaml", envID))
}

// OutputDir returns the generated-manifest directory for an environment.
func OutputDir(root, envID string) string {
	return filepath.Join(root, envID, "generated")
}

// Load reads, parses, and validates one environment's configuration,
// resolving the referenced credentials file. Validation is all-or-nothing:
// a returned Environment always has every required field populated.
func Load(ctx context.Context, root, envID string) (*Environment, error) {
	env, err := Peek(root, envID)
	if err != nil {
		return nil, err
	}

	if verr := env.Validate(); verr != nil {
		return nil, verr
	}

	creds, err := resolveCredentials(ctx, EnvDir(root, envID), env.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%s: resolve credentials: %w", envID, err)
	}
	env.Credentials = creds

	return env, nil
}

// Peek parses an environment's config without validating it or resolving
// credentials. Used for cross-environment checks and diagnostics.
func Peek(root, envID string) (*Environment, error) {
	if !Known(envID) {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownEnvironment, envID, strings.Join(Environments, ", "))
	}

	path := Path(root, envID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	env := &Environment{ID: envID}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(env); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return env, nil
}

// Known reports whether envID is a recognized environment identifier.
func Known(envID string) bool {
	for _, id := range Environments {
		if envID == id {
			return true
		}
	}
	return false
}

// Validate checks that every field consumed by a template placeholder is
// present and well-formed, collecting all problems before failing.
func (e *Environment) Validate() error {
	var fields []string

	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			fields = append(fields, key)
		}
	}

	require("namespace", e.Namespace)
	require("image", e.Image)
	require("ingressPath", e.IngressPath)
	require("shareName", e.ShareName)
	require("storageCapacity", e.StorageCapacity)
	require("credentialsFile", e.CredentialsFile)
	require("database.host", e.Database.Host)
	require("database.database", e.Database.Database)
	require("database.schema", e.Database.Schema)
	require("resources.cpuRequest", e.Resources.CPURequest)
	require("resources.memoryRequest", e.Resources.MemoryRequest)
	require("resources.cpuLimit", e.Resources.CPULimit)
	require("resources.memoryLimit", e.Resources.MemoryLimit)

	if e.ServicePort < 1 || e.ServicePort > 65535 {
		fields = append(fields, "servicePort")
	}
	if e.Database.Port < 1 || e.Database.Port > 65535 {
		fields = append(fields, "database.port")
	}
	if e.IngressPath != "" && !strings.HasPrefix(e.IngressPath, "/") {
		fields = append(fields, "ingressPath")
	}

	if len(fields) > 0 {
		return &ValidationError{Environment: e.ID, Fields: fields}
	}
	return nil
}

// CheckCollisions verifies that no two environments share a namespace or
// ingress path. Environments never share an output directory because the
// output path is derived from the environment ID.
func CheckCollisions(envs []*Environment) error {
	var problems []string

	byNamespace := make(map[string]string)
	byIngressPath := make(map[string]string)

	for _, env := range envs {
		if other, ok := byNamespace[env.Namespace]; ok {
			problems = append(problems, fmt.Sprintf("environments %s and %s share namespace %q", other, env.ID, env.Namespace))
		} else if env.Namespace != "" {
			byNamespace[env.Namespace] = env.ID
		}

		if other, ok := byIngressPath[env.IngressPath]; ok {
			problems = append(problems, fmt.Sprintf("environments %s and %s share ingress path %q", other, env.ID, env.IngressPath))
		} else if env.IngressPath != "" {
			byIngressPath[env.IngressPath] = env.ID
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("environment collision: %s", strings.Join(problems, "; "))
	}
	return nil
}
