// Package config loads the YAML configuration for the sdmdecode and
// sdmfixture CLIs: which keys to use (fixed, or master-key-diversified),
// which parameter mode the MAC was computed under, and which
// encryption mode to assume.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects which subset of Config is required: a decode needs keys
// and protocol parameters, while a fixture build additionally needs the
// fixture UID, read counter and encryption mode (the plaintext file is
// optional).
type Mode int

const (
	ModeDecode Mode = iota
	ModeFixture
)

type Config struct {
	Keys     KeysConfig     `yaml:"keys"`
	Protocol ProtocolConfig `yaml:"protocol"`
	Fixture  FixtureConfig  `yaml:"fixture"`
}

// KeysConfig carries either a fixed meta/file key pair, or a master key
// plus key numbers from which both are diversified per tag UID.
type KeysConfig struct {
	MetaKeyHexFile   string `yaml:"meta_key_hex_file"`
	FileKeyHexFile   string `yaml:"file_key_hex_file"`
	MasterKeyHexFile string `yaml:"master_key_hex_file"`
	MetaKeyNumber    *int   `yaml:"meta_key_number"`
	FileKeyNumber    *int   `yaml:"file_key_number"`
}

type ProtocolConfig struct {
	ParamMode   string `yaml:"param_mode"`      // "separated" or "bulk"
	SDMMACParam string `yaml:"sdmmac_param"`    // e.g. "cmac"; only used when param_mode is separated
	Encryption  string `yaml:"encryption_mode"` // "aes" or "lrp"; fixture only — decode detects it
}

type FixtureConfig struct {
	UID           string `yaml:"uid"` // hex, 7 bytes
	ReadCounter   *int   `yaml:"read_counter"`
	PlaintextFile string `yaml:"plaintext_file"`
	OutputPath    string `yaml:"output_path"`
}

func Load(path string) (*Config, error) {
	return LoadWithMode(path, ModeDecode)
}

func LoadWithMode(path string, mode Mode) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.resolvePaths(path)
	if err := cfg.ValidateWithMode(mode); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	return c.ValidateWithMode(ModeDecode)
}

func (c *Config) ValidateWithMode(mode Mode) error {
	if err := c.validateKeys(); err != nil {
		return err
	}
	if err := c.validateProtocol(); err != nil {
		return err
	}
	if mode == ModeFixture {
		return c.validateFixture()
	}
	return nil
}

func (c *Config) validateKeys() error {
	usesMaster := strings.TrimSpace(c.Keys.MasterKeyHexFile) != ""
	usesFixed := strings.TrimSpace(c.Keys.MetaKeyHexFile) != "" || strings.TrimSpace(c.Keys.FileKeyHexFile) != ""
	if usesMaster == usesFixed {
		return fmt.Errorf("config.keys must set either master_key_hex_file, or both meta_key_hex_file and file_key_hex_file, but not both schemes")
	}
	if usesMaster {
		if c.Keys.MetaKeyNumber == nil {
			return fmt.Errorf("config.keys.meta_key_number is required with master_key_hex_file")
		}
		if c.Keys.FileKeyNumber == nil {
			return fmt.Errorf("config.keys.file_key_number is required with master_key_hex_file")
		}
		if err := validateReadableFile(c.Keys.MasterKeyHexFile, "config.keys.master_key_hex_file"); err != nil {
			return err
		}
		return nil
	}
	if err := validateReadableFile(c.Keys.MetaKeyHexFile, "config.keys.meta_key_hex_file"); err != nil {
		return err
	}
	if err := validateReadableFile(c.Keys.FileKeyHexFile, "config.keys.file_key_hex_file"); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProtocol() error {
	switch strings.ToLower(strings.TrimSpace(c.Protocol.ParamMode)) {
	case "separated", "bulk":
	default:
		return fmt.Errorf("config.protocol.param_mode must be \"separated\" or \"bulk\"")
	}
	return nil
}

func (c *Config) validateFixture() error {
	if strings.TrimSpace(c.Fixture.UID) == "" {
		return fmt.Errorf("config.fixture.uid is required")
	}
	if c.Fixture.ReadCounter == nil {
		return fmt.Errorf("config.fixture.read_counter is required")
	}
	if *c.Fixture.ReadCounter < 0 || *c.Fixture.ReadCounter > 0xFFFFFF {
		return fmt.Errorf("config.fixture.read_counter must be 0..16777215")
	}
	switch strings.ToLower(strings.TrimSpace(c.Protocol.Encryption)) {
	case "aes", "lrp":
	default:
		return fmt.Errorf("config.protocol.encryption_mode must be \"aes\" or \"lrp\" for fixture generation")
	}
	return nil
}

func (c *Config) resolvePaths(configPath string) {
	dir := filepath.Dir(configPath)
	c.Keys.MetaKeyHexFile = resolvePath(dir, c.Keys.MetaKeyHexFile)
	c.Keys.FileKeyHexFile = resolvePath(dir, c.Keys.FileKeyHexFile)
	c.Keys.MasterKeyHexFile = resolvePath(dir, c.Keys.MasterKeyHexFile)
	c.Fixture.PlaintextFile = resolvePath(dir, c.Fixture.PlaintextFile)
	c.Fixture.OutputPath = resolvePath(dir, c.Fixture.OutputPath)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}

func validateReadableFile(path, field string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s must point to a file, got directory", field)
	}
	return nil
}
