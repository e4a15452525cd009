// Package cmd provides the CLI commands for the sdmdecode application.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	debug   bool
	human   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sdmdecode",
	Short: "Decrypt and verify NTAG 424 DNA SDM message triples",
	Long:  `A command-line tool for decrypting and authenticating captured Secure Dynamic Messaging triples from NTAG 424 DNA tags, for both AES and LRP encryption modes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config YAML (required)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&human, "human-log", false, "human-readable console log output")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("human_log", rootCmd.PersistentFlags().Lookup("human-log"))
	viper.SetEnvPrefix("sdmdecode")
	viper.AutomaticEnv()
}
