package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/app"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagProfile  string
	flagPeriod   string
	flagQuestion string
	flagDataDir  string
	flagAPIKey   string
)

var rootCmd = &cobra.Command{
	Use:          "overview",
	Short:        "Financial overview CLI",
	Long:         "Build financial snapshots, summaries and scenario simulations for customer profiles.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Profile directory (overrides DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Text-generation API key (overrides OPENAI_API_KEY and the key file)")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp is the shared setup path used by all commands. Logs go to stderr
// so stdout stays valid JSON.
func loadApp() (*app.App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	log := app.NewLogger(cfg.LogLevel, os.Stderr)
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, err
	}
	if flagAPIKey != "" {
		a.UseCredentials(config.StaticKey(flagAPIKey))
	}
	return a, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
