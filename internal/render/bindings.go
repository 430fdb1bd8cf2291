package render

import (
	"encoding/base64"
	"regexp"
	"strconv"

	"github.com/smart-dc/mlflowctl/internal/config"
)

// safeScalar matches strings that can be inserted into a YAML scalar
// position verbatim. Anything else is emitted as a quoted scalar.
var safeScalar = regexp.MustCompile(`^[A-Za-z0-9._/:+=-]+$`)

// Bindings builds the full substitution map for an environment. Numbers
// use their canonical base-10 form, strings are escaped when they contain
// YAML-significant characters, and the secret template's *_B64 values are
// derived here so raw credentials never appear as bindings.
func Bindings(env *config.Environment) map[string]string {
	port := strconv.Itoa(env.Database.Port)

	return map[string]string{
		"ENVIRONMENT":      scalar(env.ID),
		"NAMESPACE":        scalar(env.Namespace),
		"IMAGE":            scalar(env.Image),
		"MLFLOW_PATH":      scalar(env.IngressPath),
		"MLFLOW_PORT":      strconv.Itoa(env.ServicePort),
		"PG_HOST":          scalar(env.Database.Host),
		"PG_PORT":          port,
		"PG_DATABASE":      scalar(env.Database.Database),
		"PG_SCHEMA":        scalar(env.Database.Schema),
		"SHARE_NAME":       scalar(env.ShareName),
		"STORAGE_CAPACITY": scalar(env.StorageCapacity),
		"CPU_REQUEST":      scalar(env.Resources.CPURequest),
		"MEMORY_REQUEST":   scalar(env.Resources.MemoryRequest),
		"CPU_LIMIT":        scalar(env.Resources.CPULimit),
		"MEMORY_LIMIT":     scalar(env.Resources.MemoryLimit),
		"PG_USER_B64":      b64(env.Credentials.User),
		"PG_PASSWORD_B64":  b64(env.Credentials.Password),
		"PG_HOST_B64":      b64(env.Database.Host),
		"PG_PORT_B64":      b64(port),
		"PG_DATABASE_B64":  b64(env.Database.Database),
		"PG_SCHEMA_B64":    b64(env.Database.Schema),
	}
}

// scalar returns s verbatim when it is safe in a YAML scalar position,
// otherwise a double-quoted escaped form.
func scalar(s string) string {
	if s == "" || safeScalar.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}

// b64 encodes a value for a Secret data key.
func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
