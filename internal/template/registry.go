package template

import (
	_ "embed"
	"fmt"
)

// Template bodies are compiled into the binary so the registry is fixed;
// there is no runtime template discovery.
var (
	//go:embed templates/mlflow-postgres-secret.yaml
	postgresSecretBody string

	//go:embed templates/mlflow-pv.yaml
	persistentVolumeBody string

	//go:embed templates/mlflow-pvc.yaml
	persistentVolumeClaimBody string

	//go:embed templates/mlflow-deployment.yaml
	deploymentBody string

	//go:embed templates/mlflow-service.yaml
	serviceBody string

	//go:embed templates/mlflow-ingress.yaml
	ingressBody string
)

// definitions lists every template in Kubernetes apply-dependency order:
// resources that nothing references first (secret, PV), then the resources
// that reference them (PVC, deployment, service, ingress).
var definitions = []Definition{
	{
		ID:       IDPostgresSecret,
		FileName: "mlflow-postgres-secret.yaml",
		Placeholders: []Placeholder{
			{Name: "NAMESPACE", Kind: KindString},
			{Name: "PG_USER_B64", Kind: KindString},
			{Name: "PG_PASSWORD_B64", Kind: KindString},
			{Name: "PG_HOST_B64", Kind: KindString},
			{Name: "PG_PORT_B64", Kind: KindString},
			{Name: "PG_DATABASE_B64", Kind: KindString},
			{Name: "PG_SCHEMA_B64", Kind: KindString},
		},
		Body: postgresSecretBody,
	},
	{
		ID:       IDPersistentVol,
		FileName: "mlflow-pv.yaml",
		Placeholders: []Placeholder{
			{Name: "ENVIRONMENT", Kind: KindString},
			{Name: "STORAGE_CAPACITY", Kind: KindString},
			{Name: "SHARE_NAME", Kind: KindString},
		},
		Body: persistentVolumeBody,
	},
	{
		ID:       IDPersistentVolC,
		FileName: "mlflow-pvc.yaml",
		Placeholders: []Placeholder{
			{Name: "NAMESPACE", Kind: KindString},
			{Name: "ENVIRONMENT", Kind: KindString},
			{Name: "STORAGE_CAPACITY", Kind: KindString},
		},
		Body: persistentVolumeClaimBody,
	},
	{
		ID:       IDDeployment,
		FileName: "mlflow-deployment.yaml",
		Placeholders: []Placeholder{
			{Name: "NAMESPACE", Kind: KindString},
			{Name: "IMAGE", Kind: KindString},
			{Name: "MLFLOW_PORT", Kind: KindInt},
			{Name: "MLFLOW_PATH", Kind: KindString},
			{Name: "PG_HOST", Kind: KindString},
			{Name: "PG_PORT", Kind: KindInt},
			{Name: "PG_DATABASE", Kind: KindString},
			{Name: "PG_SCHEMA", Kind: KindString},
			{Name: "CPU_REQUEST", Kind: KindString},
			{Name: "MEMORY_REQUEST", Kind: KindString},
			{Name: "CPU_LIMIT", Kind: KindString},
			{Name: "MEMORY_LIMIT", Kind: KindString},
		},
		Body: deploymentBody,
	},
	{
		ID:       IDService,
		FileName: "mlflow-service.yaml",
		Placeholders: []Placeholder{
			{Name: "NAMESPACE", Kind: KindString},
			{Name: "MLFLOW_PORT", Kind: KindInt},
		},
		Body: serviceBody,
	},
	{
		ID:       IDIngress,
		FileName: "mlflow-ingress.yaml",
		Placeholders: []Placeholder{
			{Name: "NAMESPACE", Kind: KindString},
			{Name: "MLFLOW_PATH", Kind: KindString},
			{Name: "MLFLOW_PORT", Kind: KindInt},
		},
		Body: ingressBody,
	},
}

// List returns every template definition in apply-dependency order.
func List() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Get returns the definition for the given template ID.
func Get(id string) (Definition, error) {
	for _, def := range definitions {
		if def.ID == id {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown template: %s", id)
}
