package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func newImportCommand(opts *RootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Importa leads de um CSV para o usuário",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := database.NewUserRepository(a.db).FindByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("user %s: %w", email, err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out, err := usecase.NewImportLeadsUseCase(database.NewLeadRepository(a.db)).Execute(cmd.Context(), user.ID, f)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "imported: %d\nerrors:   %d\n", out.ImportedCount, out.ErrorCount)
			for _, e := range out.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "dono dos leads importados")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newExportCommand(opts *RootOptions) *cobra.Command {
	var (
		email  string
		status string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta os leads do usuário em CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := database.NewUserRepository(a.db).FindByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("user %s: %w", email, err)
			}

			filter := entity.LeadFilter{}
			if status != "" {
				if filter.Status, err = entity.ParseStage(status); err != nil {
					return fmt.Errorf("--status %q: %w", status, err)
				}
			}

			out, err := usecase.NewExportLeadsUseCase(database.NewLeadRepository(a.db)).Execute(cmd.Context(), user.ID, filter)
			if err != nil {
				return err
			}

			if output == "" {
				output = out.Filename
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(out.Data)
				return err
			}
			if err := os.WriteFile(output, out.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d leads -> %s\n", out.Count, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "dono dos leads")
	cmd.Flags().StringVar(&status, "status", "", "exporta só este estágio")
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de saída ('-' para stdout)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
