package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/trendgraph/internal/appconfig"
	"github.com/lisanmuaddib/trendgraph/pkg/db"
)

func newMigrateCommand(a *app) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Backend != appconfig.BackendPostgres {
				return fmt.Errorf("migrate needs the postgres backend, have %s", a.cfg.Backend)
			}

			if !statusOnly {
				if err := db.RunMigrations(a.logger, a.cfg.Postgres); err != nil {
					return err
				}
			}

			version, dirty, err := db.MigrationStatus(a.logger, a.cfg.Postgres)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "only print the current schema version")
	return cmd
}
