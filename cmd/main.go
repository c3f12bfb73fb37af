package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/auth"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/config"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/database"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/database/memdb"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/logger"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/scoring"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
	"go.uber.org/zap"
)

var (
	flagEnvFile  string
	flagInMemory bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "resilience",
	Short:         "Household financial resilience API",
	Long:          "Scores household financial resilience: flexibility, shock and opportunity simulation, monthly tracking.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded := config.LoadDotEnv(flagEnvFile)

		var err error
		if cfg, err = config.FromEnv(); err != nil {
			return err
		}
		if err := logger.Init(cfg.Development(), logger.LogLevel(cfg.LogLevel)); err != nil {
			return err
		}
		if !loaded {
			logger.Get().Warn(".env file not loaded", zap.String("path", flagEnvFile))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "File with environment variables")
	rootCmd.PersistentFlags().BoolVar(&flagInMemory, "in-memory", false, "Use the in-memory store instead of PostgreSQL")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openStore returns the configured store and a function that releases it.
func openStore(ctx context.Context) (services.Store, *database.Store, func(), error) {
	if flagInMemory {
		logger.Get().Warn("using the in-memory store, data is lost on exit")
		return memdb.New(), nil, func() {}, nil
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL is not set (use --in-memory to run without PostgreSQL)")
	}

	store, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	return store, store, store.Close, nil
}

func newService(store services.Store) (*services.Service, error) {
	scoringCfg, err := scoring.LoadConfig(cfg.ScoringConfig)
	if err != nil {
		return nil, err
	}
	return services.New(store, scoringCfg, auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL), logger.Get()), nil
}
