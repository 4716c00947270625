package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"atc-cli/api"
	"atc-cli/booking"
	"atc-cli/storage"

	"github.com/spf13/cobra"
)

var (
	outputJSON    bool
	outputCompact bool
	cfg           Config
	client        *api.Client
	store         = booking.NewStore()
)

type Config struct {
	APIBaseURL string `json:"api_base_url"`
}

var rootCmd = &cobra.Command{
	Use:   "atc",
	Short: "ATC position booking CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputJSON && outputCompact {
			return fmt.Errorf("choose either --json or --compact")
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	cobra.OnInitialize(initSession)
	rootCmd.AddCommand(vidCmd())
	rootCmd.AddCommand(bookingsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output JSON")
	rootCmd.PersistentFlags().BoolVar(&outputCompact, "compact", false, "Output compact text")
}

// initSession loads the config file and the persisted VID, then
// builds the API client the commands share.
func initSession() {
	loaded, err := loadConfig()
	if err == nil {
		cfg = loaded
	}

	opts := []api.Option{api.WithBaseURL(cfg.APIBaseURL)}
	if ident, err := storage.LoadIdentity(); err == nil && ident != nil {
		opts = append(opts, api.WithVID(ident.VID))
	}
	client = api.NewClient(opts...)
}

func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, fmt.Errorf("config path is a directory: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var conf Config
	if err := json.NewDecoder(file).Decode(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func configPath() (string, error) {
	dir, err := storage.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
