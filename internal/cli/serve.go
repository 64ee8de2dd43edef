package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harun/aruna/internal/config"
	"github.com/harun/aruna/internal/logger"
	"github.com/harun/aruna/pkg/agent"
	"github.com/harun/aruna/pkg/gateway"
	"github.com/harun/aruna/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Aruna chat service",
	Long: `Start the Aruna HTTP gateway. The gateway serves chat completions,
session history, statistics and import/export endpoints until it receives
SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	manager := session.NewManager(session.NewStore())

	// A missing API key degrades the gateway to session-only mode rather
	// than refusing to start.
	var provider agent.LLMProvider
	if cfg.Model.APIKey != "" {
		provider, err = agent.NewProvider(cfg.Model.Provider, cfg.Model.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create model provider: %w", err)
		}
	} else {
		log.Warn().Msg("No API key configured, chat endpoint disabled")
	}

	server, err := gateway.NewServer(gateway.ServerOptions{
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		Model: gateway.ModelOptions{
			Name:         cfg.Model.Name,
			Temperature:  cfg.Model.Temperature,
			MaxTokens:    cfg.Model.MaxTokens,
			SystemPrompt: cfg.Model.SystemPrompt,
		},
	}, manager, provider, appLogger.GetZerolog())
	if err != nil {
		return fmt.Errorf("failed to create gateway server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		if err := server.Stop(); err != nil {
			return fmt.Errorf("failed to stop gateway server: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
