// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Defaults",
			testFunc: func(t *testing.T) {
				config, err := Load("")
				require.NoError(t, err)

				assert.Equal(t, "certs", config.Payload.CertsField)
				assert.Equal(t, "keyId", config.Payload.KeyIDField)
				assert.Equal(t, "activeKeyIds", config.Payload.ActiveKeyIDsField)
				assert.Equal(t, "revokedCerts", config.Payload.RevokedField)
				assert.Equal(t, []string{"keyId", "subjectPublicKeyInfo"}, config.Projection.DropFields)
				assert.Equal(t, "json", config.Output.Format)
				assert.Equal(t, 2, config.Output.Indent)
				assert.Equal(t, "text", config.Log.Format)
			},
		},
		{
			name: "YAML File",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.yaml", `
payload:
  certsField: certificates
output:
  format: yaml
  indent: 4
projection:
  dropFields: [keyId, rawData]
`)
				config, err := Load(path)
				require.NoError(t, err)

				assert.Equal(t, "certificates", config.Payload.CertsField)
				assert.Equal(t, "keyId", config.Payload.KeyIDField, "unset fields keep defaults")
				assert.Equal(t, "yaml", config.Output.Format)
				assert.Equal(t, 4, config.Output.Indent)
				assert.Equal(t, []string{"keyId", "rawData"}, config.Projection.DropFields)
			},
		},
		{
			name: "JSON File",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.json", `{"log":{"format":"json"},"payload":{"revokedField":"revoked"}}`)

				config, err := Load(path)
				require.NoError(t, err)

				assert.Equal(t, "json", config.Log.Format)
				assert.Equal(t, "revoked", config.Payload.RevokedField)
			},
		},
		{
			name: "Path From Environment",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "env.yml", "output:\n  indent: 0\n")
				t.Setenv(EnvConfigFile, path)

				config, err := Load("")
				require.NoError(t, err)
				assert.Equal(t, 0, config.Output.Indent)
			},
		},
		{
			name: "Environment Overrides File",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.yaml", "output:\n  format: json\n")
				t.Setenv(EnvOutputFormat, "YAML")
				t.Setenv(EnvLogFormat, "json")

				config, err := Load(path)
				require.NoError(t, err)
				assert.Equal(t, "yaml", config.Output.Format)
				assert.Equal(t, "json", config.Log.Format)
			},
		},
		{
			name: "Invalid Output Format",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.yaml", "output:\n  format: xml\n")

				_, err := Load(path)
				assert.ErrorContains(t, err, "invalid config")
			},
		},
		{
			name: "Empty Field Name",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.json", `{"payload":{"certsField":""}}`)

				_, err := Load(path)
				assert.ErrorContains(t, err, "CertsField")
			},
		},
		{
			name: "Blank Drop Field",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.json", `{"projection":{"dropFields":["keyId",""]}}`)

				_, err := Load(path)
				assert.Error(t, err)
			},
		},
		{
			name: "Indent Out Of Range",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.json", `{"output":{"indent":42}}`)

				_, err := Load(path)
				assert.Error(t, err)
			},
		},
		{
			name: "Unreadable File",
			testFunc: func(t *testing.T) {
				_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
				assert.ErrorContains(t, err, "failed to read config file")
			},
		},
		{
			name: "Broken YAML",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.yaml", "output: [unclosed\n")

				_, err := Load(path)
				assert.ErrorContains(t, err, "failed to parse YAML config file")
			},
		},
		{
			name: "Broken JSON",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "config.json", "{")

				_, err := Load(path)
				assert.ErrorContains(t, err, "failed to parse JSON config file")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigFile, "")
			t.Setenv(EnvOutputFormat, "")
			t.Setenv(EnvLogFormat, "")
			tt.testFunc(t)
		})
	}
}

func TestDetectConfigFormat(t *testing.T) {
	tests := []struct {
		path string
		want configFormat
	}{
		{"config.json", configFormatJSON},
		{"config.YAML", configFormatYAML},
		{"config.yml", configFormatYAML},
		{"config", configFormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, detectConfigFormat(tt.path))
		})
	}
}
