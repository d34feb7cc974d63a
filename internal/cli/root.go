// Package cli implements the promptlens command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/promptlens/promptlens/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "promptlens",
	Short: "PromptLens - Explainability for generative AI prompts",
	Long: `PromptLens shows which parts of a prompt drive which parts of a
generated output.

It segments prompts into meaningful units, classifies and scores each
segment, maps generated sentences back to the segments that produced
them, synthesizes attention heatmaps for image generations, and
compares prompt variants to estimate the impact of an edit before
spending a generation on it.

PromptLens explains structure, not model internals.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for PromptLens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("promptlens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.promptlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.promptlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PROMPTLENS_*
	viper.SetEnvPrefix("PROMPTLENS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the effective configuration from defaults plus any
// settings loaded by viper
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("segmentation.min_words") {
		cfg.Segmentation.MinWords = viper.GetInt("segmentation.min_words")
	}
	if viper.IsSet("matching.consider_threshold") {
		cfg.Matching.ConsiderThreshold = viper.GetFloat64("matching.consider_threshold")
	}
	if viper.IsSet("matching.modified_threshold") {
		cfg.Matching.ModifiedThreshold = viper.GetFloat64("matching.modified_threshold")
	}
	if viper.IsSet("text.provider") {
		cfg.Text.Provider = viper.GetString("text.provider")
	}
	if viper.IsSet("text.model") {
		cfg.Text.Model = viper.GetString("text.model")
	}
	if viper.IsSet("text.max_tokens") {
		cfg.Text.MaxTokens = viper.GetInt("text.max_tokens")
	}
	if viper.IsSet("image.provider") {
		cfg.Image.Provider = viper.GetString("image.provider")
	}
	if viper.IsSet("image.model") {
		cfg.Image.Model = viper.GetString("image.model")
	}
	if viper.IsSet("image.width") {
		cfg.Image.Width = viper.GetInt("image.width")
	}
	if viper.IsSet("image.height") {
		cfg.Image.Height = viper.GetInt("image.height")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}

	cfg.Output.Verbose = verbose
	return cfg
}
