package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/auth"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/logger"
	"go.uber.org/zap"
)

var flagRehashPasswords bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagInMemory {
			return errors.New("migrate needs PostgreSQL")
		}
		_, pg, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()
		logger.Get().Info("schema is up to date")

		if !flagRehashPasswords {
			return nil
		}
		n, err := auth.RehashPasswords(cmd.Context(), pg)
		if err != nil {
			return err
		}
		logger.Get().Info("passwords rehashed", zap.Int("updated", n))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&flagRehashPasswords, "rehash-passwords", false, "Replace plain-text passwords with bcrypt hashes")
}
