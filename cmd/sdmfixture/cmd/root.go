// Package cmd provides the CLI commands for the sdmfixture application.
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

var rootCmd = &cobra.Command{
	Use:   "sdmfixture",
	Short: "Build NTAG 424 DNA SDM message triples from keys and plaintext",
	Long:  `A command-line tool that encrypts a UID, read counter, and optional file payload into the (piccEnc, sdmmac, encFile) triple a genuine tag would emit — the forward-direction counterpart of sdmdecode.`,
}

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
	viper.SetEnvPrefix("sdmfixture")
	viper.AutomaticEnv()
}
