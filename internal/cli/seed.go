package cli

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/mediadb-backend/internal/repository"
	"github.com/ignatzorin/mediadb-backend/internal/service"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Создать демо-пользователя и рабочее пространство",
		Long:  "Идемпотентно создаёт demo-user, demo-workspace и членство пользователя в нём.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(cmd.Context(), func(conn *sqlx.DB) error {
				seeder := service.NewSeedService(repository.NewIdentityRepository(conn))
				result, err := seeder.SeedDemo(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded user %s (%s) in workspace %s\n",
					result.User.ID, result.User.Email, result.Workspace.ID)
				return nil
			})
		},
	}
}
