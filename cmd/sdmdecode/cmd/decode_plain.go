package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taplink/sdmcore/internal/config"
	"github.com/taplink/sdmcore/internal/logging"
	"github.com/taplink/sdmcore/pkg/sdmcore"
)

var (
	plainUIDHex string
	plainCtrHex string
	plainMode   string
)

var decodePlainCmd = &cobra.Command{
	Use:   "decode-plain",
	Short: "Validate a plain-SUN triple (UID/counter carried in the clear)",
	RunE:  runDecodePlain,
}

func init() {
	decodePlainCmd.Flags().StringVar(&plainUIDHex, "uid", "", "hex-encoded UID (7 bytes)")
	decodePlainCmd.Flags().StringVar(&plainCtrHex, "ctr", "", "hex-encoded read counter (3 bytes, most significant byte first)")
	decodePlainCmd.Flags().StringVar(&macHex, "mac", "", "hex-encoded SDMMAC (8 bytes)")
	decodePlainCmd.Flags().StringVar(&plainMode, "mode", "aes", "encryption mode used to compute the MAC: aes or lrp")
	decodePlainCmd.MarkFlagRequired("uid")
	decodePlainCmd.MarkFlagRequired("ctr")
	decodePlainCmd.MarkFlagRequired("mac")
	rootCmd.AddCommand(decodePlainCmd)
}

func runDecodePlain(_ *cobra.Command, _ []string) error {
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
	if strings.TrimSpace(cfg.Keys.MasterKeyHexFile) != "" {
		return fmt.Errorf("decode-plain requires a fixed file_key_hex_file; master-key diversification needs a decrypted UID from an encrypted PICC blob, which plain SUN has no PICC blob to supply")
	}
	fileKey, err := config.LoadKeyHexFile(cfg.Keys.FileKeyHexFile)
	if err != nil {
		return fmt.Errorf("load file key: %w", err)
	}

	uid, err := hex.DecodeString(strings.TrimSpace(plainUIDHex))
	if err != nil {
		return fmt.Errorf("invalid --uid hex: %w", err)
	}
	readCtrLE, err := hex.DecodeString(strings.TrimSpace(plainCtrHex))
	if err != nil {
		return fmt.Errorf("invalid --ctr hex: %w", err)
	}
	sdmmac, err := hex.DecodeString(strings.TrimSpace(macHex))
	if err != nil {
		return fmt.Errorf("invalid --mac hex: %w", err)
	}

	mode := sdmcore.ModeAES
	if strings.EqualFold(plainMode, "lrp") {
		mode = sdmcore.ModeLRP
	}

	logging.LogDecodeAttempt(correlationID, nil, sdmmac)
	res, err := sdmcore.ValidatePlainSun(uid, readCtrLE, sdmmac, fileKey, mode)
	if err != nil {
		kind, _ := sdmcore.KindOf(err)
		logging.LogDecodeOutcome(correlationID, false, nil, 0, kind.String())
		printFailure(err)
		return err
	}
	logging.LogDecodeOutcome(correlationID, true, res.UID, res.ReadCtr, "")
	fmt.Println("plain-SUN validate:")
	fmt.Printf("  mode: %s\n", res.EncryptionMode)
	fmt.Printf("  uid: %s\n", hex.EncodeToString(res.UID))
	fmt.Printf("  read counter: %d\n", res.ReadCtr)
	return nil
}
