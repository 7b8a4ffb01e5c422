// Package ledgerapi provides the API to manage store clients, their debt accounts and payments.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/db/migration"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/passpkg"

	_ "github.com/lib/pq"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Debt ledger for small stores",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "directory containing app.env")

	rootCmd.AddCommand(
		newServeCommand(&configPath),
		newMigrateCommand(&configPath),
		newHashPasswordCommand(),
	)

	return rootCmd
}

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configpkg.Load(*configPath)
			if err != nil {
				log.Error().Err(err).Msg("cannot load config")
				return err
			}

			logger := middleware.CreateLogger(config)

			server, err := newServer(logger, config)
			if err != nil {
				logger.Error().Err(err).Msg("cannot create server")
				return err
			}

			logger.Info().
				Str("storage", config.StorageDriver).
				Str("address", config.ServerAddress).
				Msg("LEDGER API SERVER HAS STARTED")

			if err := server.Engine.Run(config.ServerAddress); err != nil {
				logger.Error().Err(err).Msg("cannot start server")
				return err
			}

			return nil
		},
	}
}

func newServer(logger zerolog.Logger, config configpkg.Config) (*httpserver.Server, error) {
	switch config.StorageDriver {
	case configpkg.StorageMemory:
		logger.Warn().Msg("in-memory storage: data will be lost on exit")
		return httpserver.NewInMemory(logger, config)
	case configpkg.StoragePostgres:
		db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			return nil, fmt.Errorf("cannot connect to database: %w", err)
		}

		return httpserver.New(db, logger, config)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", config.StorageDriver)
	}
}

func newMigrateCommand(configPath *string) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configpkg.Load(*configPath)
			if err != nil {
				log.Error().Err(err).Msg("cannot load config")
				return err
			}

			logger := middleware.CreateLogger(config)

			db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
			if err != nil {
				logger.Error().Err(err).Msg("cannot connect to database")
				return err
			}
			defer db.Close()

			migrate := migration.Up
			if down {
				migrate = migration.Down
			}

			if err := migrate(context.Background(), db); err != nil {
				logger.Error().Err(err).Bool("down", down).Msg("migration failed")
				return err
			}

			logger.Info().Bool("down", down).Msg("migration applied")

			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "revert the schema instead of applying it")

	return cmd
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for OPERATOR_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := passpkg.Hash(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hashed)

			return nil
		},
	}
}
