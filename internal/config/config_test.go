package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func writeKeyFile(t *testing.T, dir, name, hexLine string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(hexLine+"\n"), 0o644); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	return path
}

func TestLoadFixedKeyConfigAndResolveRelativePaths(t *testing.T) {
	tmp := t.TempDir()
	metaPath := writeKeyFile(t, tmp, "meta.hex", "00112233445566778899AABBCCDDEEFF")
	filePath := writeKeyFile(t, tmp, "file.hex", "FFEEDDCCBBAA99887766554433221100")

	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
keys:
  meta_key_hex_file: "meta.hex"
  file_key_hex_file: "file.hex"
protocol:
  param_mode: "separated"
  sdmmac_param: "cmac"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Keys.MetaKeyHexFile != metaPath {
		t.Fatalf("expected resolved meta key path %q, got %q", metaPath, cfg.Keys.MetaKeyHexFile)
	}
	if cfg.Keys.FileKeyHexFile != filePath {
		t.Fatalf("expected resolved file key path %q, got %q", filePath, cfg.Keys.FileKeyHexFile)
	}
}

func TestLoadRejectsMixedKeySchemes(t *testing.T) {
	cfgPath := writeConfig(t, `
keys:
  meta_key_hex_file: "meta.hex"
  master_key_hex_file: "master.hex"
  meta_key_number: 1
  file_key_number: 2
protocol:
  param_mode: "separated"
`)
	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "must set either master_key_hex_file") {
		t.Fatalf("expected mixed-scheme error, got %v", err)
	}
}

func TestLoadRejectsMissingKeyNumbersWithMasterKey(t *testing.T) {
	tmp := t.TempDir()
	masterPath := writeKeyFile(t, tmp, "master.hex", strings.Repeat("00", 16))
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
keys:
  master_key_hex_file: "master.hex"
protocol:
  param_mode: "separated"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_ = masterPath

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "meta_key_number is required") {
		t.Fatalf("expected missing meta_key_number error, got %v", err)
	}
}

func TestLoadRejectsUnknownParamMode(t *testing.T) {
	tmp := t.TempDir()
	writeKeyFile(t, tmp, "meta.hex", strings.Repeat("00", 16))
	writeKeyFile(t, tmp, "file.hex", strings.Repeat("00", 16))
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
keys:
  meta_key_hex_file: "meta.hex"
  file_key_hex_file: "file.hex"
protocol:
  param_mode: "sideways"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "param_mode must be") {
		t.Fatalf("expected invalid param_mode error, got %v", err)
	}
}

func TestLoadWithModeFixtureRequiresUIDAndCounter(t *testing.T) {
	tmp := t.TempDir()
	writeKeyFile(t, tmp, "meta.hex", strings.Repeat("00", 16))
	writeKeyFile(t, tmp, "file.hex", strings.Repeat("00", 16))
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
keys:
  meta_key_hex_file: "meta.hex"
  file_key_hex_file: "file.hex"
protocol:
  param_mode: "separated"
  encryption_mode: "aes"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadWithMode(cfgPath, ModeFixture)
	if err == nil || !strings.Contains(err.Error(), "fixture.uid is required") {
		t.Fatalf("expected missing uid error, got %v", err)
	}

	cfgYAML += `fixture:
  uid: "04112233445566"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err = LoadWithMode(cfgPath, ModeFixture)
	if err == nil || !strings.Contains(err.Error(), "fixture.read_counter is required") {
		t.Fatalf("expected missing read_counter error, got %v", err)
	}
}

func TestLoadRejectsUnknownYAMLFields(t *testing.T) {
	tmp := t.TempDir()
	writeKeyFile(t, tmp, "meta.hex", strings.Repeat("00", 16))
	writeKeyFile(t, tmp, "file.hex", strings.Repeat("00", 16))
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
keys:
  meta_key_hex_file: "meta.hex"
  file_key_hex_file: "file.hex"
protocol:
  param_mode: "separated"
typo_field: "oops"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for unknown top-level field")
	}
}
