package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harun/aruna/internal/config"
)

var (
	configureProvider string
	configureAPIKey   string
	configureModel    string
	configurePort     int
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write the service configuration file",
	Long: `Write the Aruna configuration file. Starts from the existing config
(or defaults) and applies any provided flags before saving.`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&configureProvider, "provider", "", "model provider (anthropic, openai)")
	configureCmd.Flags().StringVar(&configureAPIKey, "api-key", "", "model provider API key")
	configureCmd.Flags().StringVar(&configureModel, "model", "", "model name")
	configureCmd.Flags().IntVar(&configurePort, "port", 0, "gateway port")

	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(cfgFile)

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if configureProvider != "" {
		cfg.Model.Provider = configureProvider
	}
	if configureAPIKey != "" {
		cfg.Model.APIKey = configureAPIKey
	}
	if configureModel != "" {
		cfg.Model.Name = configureModel
	}
	if configurePort != 0 {
		cfg.Server.Port = configurePort
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Println("Configuration saved")
	cmd.Println("You can now start Aruna with: aruna serve")

	return nil
}
