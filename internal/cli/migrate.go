package cli

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/mediadb-backend/internal/db"
)

func newMigrateCmd(a *app) *cobra.Command {
	var (
		dir    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Применить SQL миграции",
		Long:  "Применяет файлы *.sql из каталога миграций, которые ещё не отмечены в schema_migrations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = a.cfg.MigrationsPath
			}
			out := cmd.OutOrStdout()

			if dryRun {
				names, err := db.ListMigrations(os.DirFS(dir))
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			return a.withDB(cmd.Context(), func(conn *sqlx.DB) error {
				applied, err := db.RunMigrations(cmd.Context(), conn, dir)
				for _, name := range applied {
					fmt.Fprintf(out, "applied %s\n", name)
				}
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(out, "schema is up to date")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "каталог миграций (по умолчанию MIGRATIONS_PATH)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "только вывести список миграций, не подключаясь к базе")

	return cmd
}
