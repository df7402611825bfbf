package main

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/board"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/tui"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func newBoardCommand(opts *RootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Abre o quadro kanban de leads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			leads := database.NewLeadRepository(a.db)
			interactions := database.NewInteractionRepository(a.db)
			auth := usecase.NewAuthUseCase(database.NewUserRepository(a.db), database.NewSessionRepository(a.db), a.cfg.SessionTTL)

			input, err := loginForm(email)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			session, err := auth.Login(ctx, input)
			if err != nil {
				return err
			}
			defer func() { _ = auth.Logout(ctx, session.Token) }()

			owner := session.User.ID
			owned := database.NewOwnedLeads(owner, leads, interactions)
			boardOpts := []board.Option{
				board.WithOwner(owner),
				board.WithLogger(a.log.Named("board")),
			}
			if !a.cfg.SerializeTransitions {
				boardOpts = append(boardOpts, board.WithoutSerialization())
			}
			b := board.New(owned, owned, boardOpts...)

			details := usecase.NewLeadDetailsUseCase(leads, interactions)
			_, err = tea.NewProgram(tui.New(ctx, b, owner, details), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "e-mail já preenchido no login")
	return cmd
}

func loginForm(email string) (usecase.LoginInput, error) {
	in := usecase.LoginInput{Email: email}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("E-mail").
				Value(&in.Email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("e-mail inválido")
					}
					return nil
				}),
			huh.NewInput().
				Title("Senha").
				EchoMode(huh.EchoModePassword).
				Value(&in.Password),
		),
	)
	if err := form.Run(); err != nil {
		return in, err
	}
	return in, nil
}
