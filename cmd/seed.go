package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/logger"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/seed"
	"go.uber.org/zap"
)

var (
	flagHouseholds int
	flagMonths     int
	flagSeed       int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo households with profiles and tracker history",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, _, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		svc, err := newService(store)
		if err != nil {
			return err
		}
		usernames, err := seed.New(svc, flagSeed, flagMonths, logger.Get()).Households(cmd.Context(), flagHouseholds)
		if err != nil {
			return err
		}
		logger.Get().Info("demo accounts ready",
			zap.Strings("usernames", usernames), zap.String("password", seed.DefaultPassword))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&flagHouseholds, "households", 10, "Number of households to create")
	seedCmd.Flags().IntVar(&flagMonths, "months", 6, "Months of tracker history per household")
	seedCmd.Flags().Int64Var(&flagSeed, "seed", time.Now().UnixNano(), "Random seed")
}
