package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mosdac/assist/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	verbose  bool
	dataPath string
	endpoint string
	version  string = "dev"
	commit   string = "unknown"
	date     string = "unknown"
)

// fileConfig is the optional YAML config at ~/.mosdac-assist.yaml
type fileConfig struct {
	Endpoint string `yaml:"endpoint"`
	Data     string `yaml:"data"`
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mosdac-assist",
	Short: "Chat with the MOSDAC satellite-data assistant",
	Long: `A CLI client for the MOSDAC satellite-data help assistant.

Conversations are stored locally and survive restarts. Each question is
answered by the remote assistant backend; when the backend is
unreachable, a local substitute answers instead so you always get a
best-effort response.

Quick Start:
  mosdac-assist ask "What is INSAT-3D?"   # One-shot question
  mosdac-assist chat                      # Interactive conversation
  mosdac-assist sessions list             # List stored conversations
  mosdac-assist export --format csv       # Export history`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
		applyFileConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Custom store location (path to database file)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Assistant backend endpoint override")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// applyFileConfig fills unset flags from the optional YAML config file.
// Flags win over the file, the file wins over defaults.
func applyFileConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	data, err := os.ReadFile(filepath.Join(home, ".mosdac-assist.yaml"))
	if err != nil {
		return
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		internal.LogWarn("Ignoring malformed config file: %v", err)
		return
	}

	if endpoint == "" {
		endpoint = cfg.Endpoint
	}
	if dataPath == "" {
		dataPath = cfg.Data
	}
}

// defaultDataPath is where the store lives unless overridden
func defaultDataPath() (string, error) {
	if dataPath != "" {
		return dataPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".mosdac-assist")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(dir, "assist.db"), nil
}
