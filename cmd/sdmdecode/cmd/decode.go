package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/taplink/sdmcore/internal/config"
	"github.com/taplink/sdmcore/internal/logging"
	"github.com/taplink/sdmcore/pkg/sdmcore"
)

var (
	piccHex   string
	macHex    string
	fileHex   string
	promptKey bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decrypt and verify one captured SUN message triple",
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&piccHex, "picc", "", "hex-encoded encrypted PICC data (16 or 24 bytes)")
	decodeCmd.Flags().StringVar(&macHex, "mac", "", "hex-encoded SDMMAC (8 bytes)")
	decodeCmd.Flags().StringVar(&fileHex, "file", "", "hex-encoded encrypted file data (optional)")
	decodeCmd.Flags().BoolVar(&promptKey, "prompt-master-key", false, "prompt for the master key instead of reading it from a file")
	decodeCmd.MarkFlagRequired("picc")
	decodeCmd.MarkFlagRequired("mac")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(_ *cobra.Command, _ []string) error {
	logging.Init(viper.GetBool("debug"), viper.GetBool("human_log"))
	correlationID := logging.NewCorrelationID()

	cfgPath := viper.GetString("config")
	if strings.TrimSpace(cfgPath) == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	piccEnc, err := hex.DecodeString(strings.TrimSpace(piccHex))
	if err != nil {
		return fmt.Errorf("invalid --picc hex: %w", err)
	}
	sdmmac, err := hex.DecodeString(strings.TrimSpace(macHex))
	if err != nil {
		return fmt.Errorf("invalid --mac hex: %w", err)
	}
	var encFile []byte
	if strings.TrimSpace(fileHex) != "" {
		encFile, err = hex.DecodeString(strings.TrimSpace(fileHex))
		if err != nil {
			return fmt.Errorf("invalid --file hex: %w", err)
		}
	}

	metaKey, fileKeyFor, err := resolveKeys(cfg)
	if err != nil {
		return fmt.Errorf("resolve keys: %w", err)
	}

	paramMode := sdmcore.ParamSeparated
	if strings.EqualFold(cfg.Protocol.ParamMode, "bulk") {
		paramMode = sdmcore.ParamBulk
	}

	logging.LogDecodeAttempt(correlationID, piccEnc, sdmmac)
	result, err := sdmcore.DecryptSunMessage(paramMode, metaKey, fileKeyFor, piccEnc, sdmmac, encFile, cfg.Protocol.SDMMACParam)
	if err != nil {
		kind, _ := sdmcore.KindOf(err)
		logging.LogDecodeOutcome(correlationID, false, nil, 0, kind.String())
		printFailure(err)
		return err
	}
	logging.LogDecodeOutcome(correlationID, true, result.UID, result.ReadCtr, "")
	printSuccess(result)
	return nil
}

func resolveKeys(cfg *config.Config) ([]byte, sdmcore.FileKeyFunc, error) {
	if strings.TrimSpace(cfg.Keys.MasterKeyHexFile) != "" {
		var masterKey []byte
		var err error
		if promptKey {
			masterKey, err = readMasterKeyFromTerminal()
		} else {
			masterKey, err = config.LoadMasterKeyHexFile(cfg.Keys.MasterKeyHexFile)
		}
		if err != nil {
			return nil, nil, err
		}
		metaKey, err := sdmcore.DeriveUndiversifiedKey(masterKey, *cfg.Keys.MetaKeyNumber)
		if err != nil {
			return nil, nil, fmt.Errorf("derive meta key: %w", err)
		}
		fileKeyNumber := *cfg.Keys.FileKeyNumber
		fileKeyFor := func(uid []byte) ([]byte, error) {
			return sdmcore.DeriveTagKey(masterKey, uid, fileKeyNumber)
		}
		return metaKey, fileKeyFor, nil
	}

	metaKey, err := config.LoadKeyHexFile(cfg.Keys.MetaKeyHexFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load meta key: %w", err)
	}
	fileKey, err := config.LoadKeyHexFile(cfg.Keys.FileKeyHexFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load file key: %w", err)
	}
	fileKeyFor := func(_ []byte) ([]byte, error) { return fileKey, nil }
	return metaKey, fileKeyFor, nil
}

func readMasterKeyFromTerminal() ([]byte, error) {
	fmt.Fprint(os.Stderr, "master key (hex): ")
	line, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read master key: %w", err)
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(line)))
	if err != nil {
		return nil, fmt.Errorf("invalid hex master key: %w", err)
	}
	return key, nil
}

func printSuccess(res *sdmcore.SunResult) {
	fmt.Println("SUN decode:")
	fmt.Printf("  mode: %s\n", res.EncryptionMode)
	fmt.Printf("  uid: %s\n", hex.EncodeToString(res.UID))
	fmt.Printf("  read counter: %d\n", res.ReadCtr)
	if res.FileData != nil {
		fmt.Printf("  file data (%d bytes): %s\n", len(res.FileData), hex.EncodeToString(res.FileData))
	} else {
		fmt.Println("  file data: (none)")
	}
}

func printFailure(err error) {
	kind, ok := sdmcore.KindOf(err)
	if !ok {
		fmt.Printf("SUN decode failed: %v\n", err)
		return
	}
	fmt.Printf("SUN decode failed [%s]: %v\n", kind, err)
}
