// Package cli implements outboundctl, the operator CLI for migrations,
// tenants, on-demand sequencing passes and ad-hoc lead scoring.
package cli

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-outbound/internal/config"
	"github.com/xavierca1/ligue-outbound/internal/infra/database"
	"github.com/xavierca1/ligue-outbound/internal/infra/logger"
)

// DBOpener abre a conexão sob demanda; comandos como score não precisam de banco.
type DBOpener func(ctx context.Context) (*sql.DB, error)

// Env carrega config do ambiente e abre o Postgres.
func Env(ctx context.Context) (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, "console", nil)
	return database.NewDBConnection(ctx, cfg.DatabaseURL)
}

func NewRootCmd(version string, openDB DBOpener) *cobra.Command {
	var jsonOutput bool

	root := &cobra.Command{
		Use:           "outboundctl",
		Short:         "Operate the ligue-outbound lead engine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	outputFn := func() *Output {
		return &Output{jsonMode: jsonOutput, w: root.OutOrStdout(), errW: root.ErrOrStderr()}
	}

	root.AddCommand(
		newMigrateCmd(openDB, outputFn),
		newTenantCmd(openDB, outputFn),
		newSequenceCmd(openDB, outputFn),
		newScoreCmd(outputFn),
	)
	return root
}
