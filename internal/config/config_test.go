package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devConfig = `namespace: smart-dc-dev
image: mlflow-server:2.0.1
ingressPath: /mlflow
servicePort: 5000
shareName: dev-preprocessed-artifacts
storageCapacity: 10Gi
credentialsFile: mlflow-dev-credentials.yaml
database:
  host: pg.dev.local
  port: 5432
  database: mlflow
  schema: mlflow_dev
resources:
  cpuRequest: 250m
  memoryRequest: 512Mi
  cpuLimit: "1"
  memoryLimit: 2Gi
`

const devCredentials = `pgUser: mlops
pgPassword: hunter2
`

// writeEnv writes a config (and optionally credentials) file for one
// environment under root.
func writeEnv(t *testing.T, root, envID, configBody, credsBody string) {
	t.Helper()

	envDir := filepath.Join(root, envID)
	require.NoError(t, os.MkdirAll(envDir, 0755))
	require.NoError(t, os.WriteFile(Path(root, envID), []byte(configBody), 0644))
	if credsBody != "" {
		credsPath := filepath.Join(envDir, fmt.Sprintf("mlflow-%s-credentials.yaml", envID))
		require.NoError(t, os.WriteFile(credsPath, []byte(credsBody), 0600))
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeEnv(t, root, EnvDev, devConfig, devCredentials)

	env, err := Load(context.Background(), root, EnvDev)
	require.NoError(t, err)

	assert.Equal(t, EnvDev, env.ID)
	assert.Equal(t, "smart-dc-dev", env.Namespace)
	assert.Equal(t, "mlflow-server:2.0.1", env.Image)
	assert.Equal(t, "/mlflow", env.IngressPath)
	assert.Equal(t, 5432, env.Database.Port)
	assert.Equal(t, "mlflow_dev", env.Database.Schema)
	assert.Equal(t, "mlops", env.Credentials.User)
	assert.Equal(t, "hunter2", env.Credentials.Password)
}

func TestLoad_UnknownEnvironment(t *testing.T) {
	_, err := Load(context.Background(), t.TempDir(), "staging")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEnvironment))
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(context.Background(), t.TempDir(), EnvDev)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	root := t.TempDir()
	writeEnv(t, root, EnvDev, devConfig+"surprise: value\n", devCredentials)

	_, err := Load(context.Background(), root, EnvDev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surprise")
}

func TestLoad_MissingFieldsNamed(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		wantField string
	}{
		{
			name:      "namespace",
			config:    "image: mlflow-server:2.0.1\ningressPath: /mlflow\nservicePort: 5000\nshareName: s\nstorageCapacity: 10Gi\ncredentialsFile: c.yaml\ndatabase:\n  host: h\n  port: 5432\n  database: d\n  schema: s\nresources:\n  cpuRequest: 250m\n  memoryRequest: 512Mi\n  cpuLimit: \"1\"\n  memoryLimit: 2Gi\n",
			wantField: "namespace",
		},
		{
			name:      "database port",
			config:    "namespace: n\nimage: i\ningressPath: /p\nservicePort: 5000\nshareName: s\nstorageCapacity: 10Gi\ncredentialsFile: c.yaml\ndatabase:\n  host: h\n  database: d\n  schema: s\nresources:\n  cpuRequest: 250m\n  memoryRequest: 512Mi\n  cpuLimit: \"1\"\n  memoryLimit: 2Gi\n",
			wantField: "database.port",
		},
		{
			name:      "ingress path without leading slash",
			config:    "namespace: n\nimage: i\ningressPath: mlflow\nservicePort: 5000\nshareName: s\nstorageCapacity: 10Gi\ncredentialsFile: c.yaml\ndatabase:\n  host: h\n  port: 5432\n  database: d\n  schema: s\nresources:\n  cpuRequest: 250m\n  memoryRequest: 512Mi\n  cpuLimit: \"1\"\n  memoryLimit: 2Gi\n",
			wantField: "ingressPath",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeEnv(t, root, EnvDev, tt.config, devCredentials)

			_, err := Load(context.Background(), root, EnvDev)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, EnvDev, verr.Environment)
			assert.Equal(t, []string{tt.wantField}, verr.Fields,
				"exactly the removed field must be named")
		})
	}
}

func TestLoad_AllMissingFieldsCollected(t *testing.T) {
	root := t.TempDir()
	writeEnv(t, root, EnvDev, "namespace: smart-dc-dev\n", "")

	_, err := Load(context.Background(), root, EnvDev)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "image")
	assert.Contains(t, verr.Fields, "ingressPath")
	assert.Contains(t, verr.Fields, "database.host")
	assert.Contains(t, verr.Fields, "resources.memoryLimit")
	assert.Contains(t, verr.Fields, "servicePort")
}

func TestLoad_CredentialsMissingKeys(t *testing.T) {
	root := t.TempDir()
	writeEnv(t, root, EnvDev, devConfig, "pgUser: mlops\n")

	_, err := Load(context.Background(), root, EnvDev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pgPassword")
}

func TestLoad_CredentialsFileMissing(t *testing.T) {
	root := t.TempDir()
	writeEnv(t, root, EnvDev, devConfig, "")

	_, err := Load(context.Background(), root, EnvDev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve credentials")
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("root", "dev", "mlflow-dev-config.yaml"), Path("root", "dev"))
	assert.Equal(t, filepath.Join("root", "prod", "generated"), OutputDir("root", "prod"))
	assert.Equal(t, filepath.Join("root", "dev"), EnvDir("root", "dev"))
}

func TestCheckCollisions(t *testing.T) {
	tests := []struct {
		name    string
		envs    []*Environment
		wantErr string
	}{
		{
			name: "distinct environments pass",
			envs: []*Environment{
				{ID: "dev", Namespace: "smart-dc-dev", IngressPath: "/mlflow-dev"},
				{ID: "prod", Namespace: "smart-dc-prod", IngressPath: "/mlflow"},
			},
		},
		{
			name: "shared namespace rejected",
			envs: []*Environment{
				{ID: "dev", Namespace: "smart-dc", IngressPath: "/mlflow-dev"},
				{ID: "prod", Namespace: "smart-dc", IngressPath: "/mlflow"},
			},
			wantErr: `share namespace "smart-dc"`,
		},
		{
			name: "shared ingress path rejected",
			envs: []*Environment{
				{ID: "dev", Namespace: "smart-dc-dev", IngressPath: "/mlflow"},
				{ID: "prod", Namespace: "smart-dc-prod", IngressPath: "/mlflow"},
			},
			wantErr: `share ingress path "/mlflow"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCollisions(tt.envs)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "dev")
			assert.Contains(t, err.Error(), "prod")
		})
	}
}
