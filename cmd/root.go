package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pders01/prochist/internal/ollama"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "prochist",
	Short: "Attach and inspect processing history for data files",
	Long: `prochist stores a small lineage graph in a data file's metadata slot:
the creation record of the file itself plus that of every ancestor file
that contributed to it. The full lineage of a file can then be inspected
without access to any of its ancestors.

Composite files (VRT) derive their parentage implicitly from their
component files.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/prochist/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "prochist")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("view.width", 80)
	viper.SetDefault("describe.model", ollama.DefaultModel)
	viper.SetDefault("describe.ollama_url", ollama.DefaultURL)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
