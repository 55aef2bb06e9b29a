package main

import (
	"fmt"
	"os"

	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/sources"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
	sourceName   string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sales Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the settings file")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", "", "Path to the source profiles file (overrides settings)")
	rootCmd.Flags().StringVarP(&sourceName, "source", "s", "", "Source profile to load (overrides settings)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if profilesPath != "" {
		settings.Profiles = profilesPath
	}
	if sourceName != "" {
		settings.Source = sourceName
	}

	opts, err := settings.EngineOptions(logger)
	if err != nil {
		return err
	}
	engine, err := dashboard.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create dashboard engine: %w", err)
	}

	if settings.Source == "" {
		return fmt.Errorf("no source selected; pass --source or set source in the settings file")
	}
	registry, err := config.NewRegistry(settings.Profiles)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}
	profile, err := registry.GetProfile(ctx, settings.Source)
	if err != nil {
		return err
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", settings.Profiles)

	sourceRegistry, err := sources.NewDefaultRegistry()
	if err != nil {
		return err
	}
	src, err := sourceRegistry.Open(ctx, *profile)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close source")
		}
	}()

	// A failed load still serves the empty dataset; /status reports the error.
	if err := engine.Load(ctx, src); err != nil {
		logger.Error().Err(err).Str("source", profile.String()).Msg("failed to load sales data")
	} else {
		logger.Info().
			Str("source", profile.String()).
			Int("records", len(engine.Records())).
			Int("skipped", engine.Skipped()).
			Msg("sales data loaded")
	}

	api := server.NewWebAPI(server.Config{
		Addr: settings.Address(),
		Dependencies: server.Dependencies{
			Engine: engine,
			Logger: logger,
		},
	})
	return api.Start()
}

func loadSettings() (*config.Settings, error) {
	if cfgPath == "" {
		return config.DefaultSettings()
	}
	return config.LoadSettings(cfgPath)
}
