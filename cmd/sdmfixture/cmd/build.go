package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taplink/sdmcore/internal/config"
	"github.com/taplink/sdmcore/internal/fixtures"
	"github.com/taplink/sdmcore/internal/logging"
	"github.com/taplink/sdmcore/pkg/sdmcore"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build one SUN message triple from the configured keys, UID, and plaintext",
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, _ []string) error {
	logging.Init(viper.GetBool("debug"), viper.GetBool("human_log"))
	correlationID := uuid.NewString()

	cfgPath := viper.GetString("config")
	if strings.TrimSpace(cfgPath) == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := config.LoadWithMode(cfgPath, config.ModeFixture)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	metaKey, fileKey, err := resolveFixedKeys(cfg)
	if err != nil {
		return fmt.Errorf("resolve keys: %w", err)
	}

	uid, err := hex.DecodeString(strings.TrimSpace(cfg.Fixture.UID))
	if err != nil {
		return fmt.Errorf("invalid fixture.uid hex: %w", err)
	}

	var plaintext []byte
	if strings.TrimSpace(cfg.Fixture.PlaintextFile) != "" {
		plaintext, err = os.ReadFile(cfg.Fixture.PlaintextFile)
		if err != nil {
			return fmt.Errorf("read plaintext file: %w", err)
		}
	}

	mode := sdmcore.ModeAES
	if strings.EqualFold(cfg.Protocol.Encryption, "lrp") {
		mode = sdmcore.ModeLRP
	}
	paramMode := sdmcore.ParamSeparated
	if strings.EqualFold(cfg.Protocol.ParamMode, "bulk") {
		paramMode = sdmcore.ParamBulk
	}

	triple, err := fixtures.BuildSUNTriple(metaKey, fileKey, uid, uint32(*cfg.Fixture.ReadCounter), plaintext, mode, paramMode, cfg.Protocol.SDMMACParam)
	if err != nil {
		return fmt.Errorf("build triple: %w", err)
	}

	fmt.Printf("correlation_id: %s\n", correlationID)
	fmt.Printf("piccEnc: %s\n", hex.EncodeToString(triple.PICCEnc))
	fmt.Printf("sdmmac: %s\n", hex.EncodeToString(triple.SDMMAC))
	if triple.EncFile != nil {
		fmt.Printf("encFile: %s\n", hex.EncodeToString(triple.EncFile))
	}

	if strings.TrimSpace(cfg.Fixture.OutputPath) != "" {
		return writeOutput(cfg.Fixture.OutputPath, triple)
	}
	return nil
}

func resolveFixedKeys(cfg *config.Config) (metaKey, fileKey []byte, err error) {
	if strings.TrimSpace(cfg.Keys.MasterKeyHexFile) != "" {
		masterKey, err := config.LoadMasterKeyHexFile(cfg.Keys.MasterKeyHexFile)
		if err != nil {
			return nil, nil, err
		}
		metaKey, err = sdmcore.DeriveUndiversifiedKey(masterKey, *cfg.Keys.MetaKeyNumber)
		if err != nil {
			return nil, nil, fmt.Errorf("derive meta key: %w", err)
		}
		// The fixture's own UID diversifies the file key deterministically,
		// mirroring what a real tag session would produce.
		uid, err := hex.DecodeString(strings.TrimSpace(cfg.Fixture.UID))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid fixture.uid hex: %w", err)
		}
		fileKey, err = sdmcore.DeriveTagKey(masterKey, uid, *cfg.Keys.FileKeyNumber)
		if err != nil {
			return nil, nil, fmt.Errorf("derive file key: %w", err)
		}
		return metaKey, fileKey, nil
	}

	metaKey, err = config.LoadKeyHexFile(cfg.Keys.MetaKeyHexFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load meta key: %w", err)
	}
	fileKey, err = config.LoadKeyHexFile(cfg.Keys.FileKeyHexFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load file key: %w", err)
	}
	return metaKey, fileKey, nil
}

func writeOutput(path string, triple *fixtures.SUNTriple) error {
	var b strings.Builder
	fmt.Fprintf(&b, "piccEnc=%s\n", hex.EncodeToString(triple.PICCEnc))
	fmt.Fprintf(&b, "sdmmac=%s\n", hex.EncodeToString(triple.SDMMAC))
	if triple.EncFile != nil {
		fmt.Fprintf(&b, "encFile=%s\n", hex.EncodeToString(triple.EncFile))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
