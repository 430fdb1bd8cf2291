package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_RegistryIsConsistent(t *testing.T) {
	// The compiled-in registry must always pass its own consistency check.
	require.NoError(t, Lint())
}

func TestList_ApplyDependencyOrder(t *testing.T) {
	defs := List()
	require.Len(t, defs, 6)

	var ids []string
	for _, def := range defs {
		ids = append(ids, def.ID)
	}

	// Namespace-independent resources come before resources that
	// reference them.
	assert.Equal(t, []string{
		IDPostgresSecret,
		IDPersistentVol,
		IDPersistentVolC,
		IDDeployment,
		IDService,
		IDIngress,
	}, ids)
}

func TestList_ReturnsCopy(t *testing.T) {
	defs := List()
	defs[0].ID = "mutated"

	fresh := List()
	assert.Equal(t, IDPostgresSecret, fresh[0].ID)
}

func TestGet(t *testing.T) {
	def, err := Get(IDDeployment)
	require.NoError(t, err)
	assert.Equal(t, "mlflow-deployment.yaml", def.FileName)

	_, err = Get("nonexistent")
	assert.Error(t, err)
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "distinct markers in order of first appearance",
			body: "a: ${FOO}\nb: ${BAR}\nc: ${FOO}",
			want: []string{"FOO", "BAR"},
		},
		{
			name: "kubernetes env references do not match",
			body: "command: echo $(PG_USER) ${NAMESPACE}",
			want: []string{"NAMESPACE"},
		},
		{
			name: "no markers",
			body: "plain: text",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Markers(tt.body))
		})
	}
}

func TestLintDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		defs     []Definition
		wantErrs []string
	}{
		{
			name: "consistent definition passes",
			defs: []Definition{{
				ID:           "ok",
				Placeholders: []Placeholder{{Name: "NAME", Kind: KindString}},
				Body:         "name: ${NAME}",
			}},
		},
		{
			name: "undeclared marker in body",
			defs: []Definition{{
				ID:           "bad",
				Placeholders: []Placeholder{{Name: "NAME", Kind: KindString}},
				Body:         "name: ${NAME}\nextra: ${STALE}",
			}},
			wantErrs: []string{"undeclared placeholder STALE"},
		},
		{
			name: "declared placeholder missing from body",
			defs: []Definition{{
				ID:           "bad",
				Placeholders: []Placeholder{{Name: "NAME", Kind: KindString}, {Name: "UNUSED", Kind: KindString}},
				Body:         "name: ${NAME}",
			}},
			wantErrs: []string{"UNUSED never appears"},
		},
		{
			name: "conflicting kinds across templates",
			defs: []Definition{
				{
					ID:           "first",
					Placeholders: []Placeholder{{Name: "PORT", Kind: KindInt}},
					Body:         "port: ${PORT}",
				},
				{
					ID:           "second",
					Placeholders: []Placeholder{{Name: "PORT", Kind: KindString}},
					Body:         "port: ${PORT}",
				},
			},
			wantErrs: []string{"PORT declared as string but first declares it as int"},
		},
		{
			name: "all problems collected in one pass",
			defs: []Definition{{
				ID:           "bad",
				Placeholders: []Placeholder{{Name: "UNUSED", Kind: KindString}},
				Body:         "extra: ${STALE}",
			}},
			wantErrs: []string{"STALE", "UNUSED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lintDefinitions(tt.defs)
			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			lintErr, ok := err.(*LintError)
			require.True(t, ok)
			for _, want := range tt.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
			assert.NotEmpty(t, lintErr.Problems)
		})
	}
}
