package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Aplica ou desfaz as migrações do banco",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			a, err := open(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if direction == "down" {
				if err := database.RollbackMigrations(a.db, steps); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
				return nil
			}
			if err := database.RunMigrations(a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "quantas migrações desfazer com down")
	return cmd
}
