// Package template holds the fixed registry of MLflow manifest templates
// and the build-time consistency checks over their declared placeholders.
package template

// Placeholder kind constants. Kinds describe the canonical textual form a
// binding must take; two templates may not declare the same placeholder
// name with different kinds.
const (
	KindString = "string"
	KindInt    = "int"
	KindBool   = "bool"
)

// Template identifiers, one per manifest the generator emits.
const (
	IDPostgresSecret = "postgres-secret"
	IDPersistentVol  = "persistent-volume"
	IDPersistentVolC = "persistent-volume-claim"
	IDDeployment     = "deployment"
	IDService        = "service"
	IDIngress        = "ingress"
)

// Placeholder declares one required substitution variable of a template.
type Placeholder struct {
	// Name is the marker identifier, matched case-sensitively.
	Name string

	// Kind is one of KindString, KindInt, KindBool.
	Kind string
}

// Definition is one named manifest template.
type Definition struct {
	// ID identifies the template (e.g., "deployment").
	ID string

	// FileName is the canonical output file name for rendered manifests.
	FileName string

	// Placeholders lists every variable the body references, in order.
	Placeholders []Placeholder

	// Body is the raw template text with ${NAME} markers.
	Body string
}

// DeclaredNames returns the declared placeholder names in order.
func (d Definition) DeclaredNames() []string {
	names := make([]string, len(d.Placeholders))
	for i, p := range d.Placeholders {
		names[i] = p.Name
	}
	return names
}
