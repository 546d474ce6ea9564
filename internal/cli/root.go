// Package cli implements the slugline command tree.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/slugline/slugline/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slugline",
	Short: "Slugline - screenplay format checker and fixer",
	Long: `Slugline classifies loosely-structured screenplay text into typed
elements (scene headings, character cues, dialogue, transitions, ...)
and flags formatting defects with confidence-scored suggestions.

High-confidence findings can be fixed automatically; the rest are
reported for review. Slugline checks structure, not story.`,
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
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("slugline v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.slugline/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and SLUGLINE_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.slugline")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SLUGLINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the effective configuration: defaults, then
// config file / environment, then command flags (applied by callers).
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("parser.enable_scene_numbers") {
		cfg.Parser.EnableSceneNumbers = viper.GetBool("parser.enable_scene_numbers")
	}
	if viper.IsSet("validation.strict") {
		cfg.Validation.Strict = viper.GetBool("validation.strict")
	}
	if viper.IsSet("validation.review_threshold") {
		cfg.Validation.ReviewThreshold = viper.GetFloat64("validation.review_threshold")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	if viper.IsSet("llm.timeout") {
		cfg.LLM.Timeout = viper.GetDuration("llm.timeout")
	}
	if viper.IsSet("llm.min_confidence") {
		cfg.LLM.MinConfidence = viper.GetFloat64("llm.min_confidence")
	}
	if viper.IsSet("llm.max_edit_distance") {
		cfg.LLM.MaxEditDistance = viper.GetInt("llm.max_edit_distance")
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.requests_per_second") {
		cfg.LLM.RequestsPerSecond = viper.GetFloat64("llm.requests_per_second")
	}
	if viper.IsSet("concurrency.batch_workers") {
		cfg.Concurrency.BatchWorkers = viper.GetInt("concurrency.batch_workers")
	}
	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}
	cfg.Output.Verbose = verbose

	// Secrets come from the environment only.
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")

	return cfg
}

// buildLogger returns a development logger under --verbose, a no-op
// logger otherwise. Engine logging is for maintainers, not users.
func buildLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// writeOutput writes to path, or stdout when path is empty.
func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// durationFlagDefault is used by commands that expose timeouts.
const durationFlagDefault = 30 * time.Second
