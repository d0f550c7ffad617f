package main

import (
	"fmt"
	"strings"
	"time"

	"growth_analyzer/pkg/core/agent"
	"growth_analyzer/pkg/core/app"
	"growth_analyzer/pkg/core/config"
	"growth_analyzer/pkg/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "analyze",
	Short:         "Score stocks against the Gunderson growth criteria.",
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(criteriaCmd)

	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().String("provider", "", "Override the active oracle provider (gemini, gemini-legacy, deepseek, qwen, openai)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Deadline for each oracle sequence (0 = config value)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("binding root flags: %v", err))
	}
}

func initConfig() {
	_ = godotenv.Load()

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("gemini-api-key", "GEMINI_API_KEY", "API_KEY")
}

// loadServices merges the config file, environment and flags and builds the pipeline.
func loadServices() (*app.Services, error) {
	if err := logger.InitLogger(viper.GetString("log-level"), ""); err != nil {
		return nil, err
	}

	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)

	svc, err := app.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := selectProvider(svc.Agents, viper.GetString("provider")); err != nil {
		return nil, err
	}
	return svc, nil
}

// selectProvider switches the global provider when --provider is given. Unknown names are
// rejected rather than silently falling back to gemini.
func selectProvider(mgr *agent.Manager, name string) error {
	if name == "" {
		return nil
	}
	if err := mgr.SetGlobalProvider(name); err != nil {
		return fmt.Errorf("unknown provider %q (available: %s)", name, strings.Join(mgr.Available(), ", "))
	}
	return nil
}

func applyOverrides(cfg *config.AppConfig) {
	if d := viper.GetDuration("timeout"); d > 0 {
		cfg.Oracle.TimeoutSeconds = int((d + time.Second - 1) / time.Second)
	}
	if key := viper.GetString("gemini-api-key"); key != "" {
		cfg.Credentials.Gemini = key
	}
}

func Execute() error {
	return rootCmd.Execute()
}
