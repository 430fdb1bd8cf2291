package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// resolveCredentials loads the credentials document the config references.
// Files with a ".sops." infix are decrypted by the sops binary; anything
// else is read as plain YAML. The path is resolved relative to the
// environment directory unless absolute.
func resolveCredentials(ctx context.Context, envDir, file string) (Credentials, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(envDir, file)
	}

	var creds Credentials
	var err error
	if strings.Contains(filepath.Base(path), ".sops.") {
		creds, err = decryptCredentials(ctx, path)
	} else {
		creds, err = readCredentials(path)
	}
	if err != nil {
		return Credentials{}, err
	}

	var missing []string
	if creds.User == "" {
		missing = append(missing, "pgUser")
	}
	if creds.Password == "" {
		missing = append(missing, "pgPassword")
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("credentials file %s: missing keys: %s", path, strings.Join(missing, ", "))
	}

	return creds, nil
}

// readCredentials parses a plaintext YAML credentials file.
func readCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	return creds, nil
}

// decryptCredentials shells out to sops for encrypted credentials files.
func decryptCredentials(ctx context.Context, path string) (Credentials, error) {
	cmd := exec.CommandContext(ctx, "sops", "--input-type", "yaml", "--output-type", "json", "-d", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Credentials{}, fmt.Errorf("sops decrypt failed for %s: %w: %s", path, err, stderr.String())
	}

	var creds Credentials
	if err := json.Unmarshal(stdout.Bytes(), &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse decrypted credentials from %s: %w", path, err)
	}
	return creds, nil
}
