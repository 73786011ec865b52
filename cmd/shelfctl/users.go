package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/listenupapp/shelfnotes/internal/auth"
	"github.com/listenupapp/shelfnotes/internal/service"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	authService := func() (*service.AuthService, *service.SessionService, error) {
		tokens, err := a.tokenService()
		if err != nil {
			return nil, nil, err
		}
		sessions := service.NewSessionService(a.store, tokens, a.logger)
		hasher := auth.NewPasswordHasher(auth.DefaultArgon2Params)
		return service.NewAuthService(a.store, hasher, tokens, sessions, a.logger), sessions, nil
	}

	var (
		password string
		email    string
		staff    bool
	)
	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := authService()
			if err != nil {
				return err
			}
			user, err := svc.CreateUser(cmd.Context(), service.CreateUserRequest{
				Username: args[0],
				Password: password,
				Email:    email,
				IsStaff:  staff,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&password, "password", "", "Password (at least 8 characters)")
	create.Flags().StringVar(&email, "email", "", "Email address")
	create.Flags().BoolVar(&staff, "staff", false, "Grant staff status")
	_ = create.MarkFlagRequired("password")

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := authService()
			if err != nil {
				return err
			}
			users, err := svc.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tSTAFF")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.IsStaff)
			}
			return w.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account with its sessions and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := authService()
			if err != nil {
				return err
			}
			if err := svc.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, list, del)
	return cmd
}

func newSessionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage refresh sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired refresh sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, err := a.tokenService()
			if err != nil {
				return err
			}
			n, err := service.NewSessionService(a.store, tokens, a.logger).DeleteExpiredSessions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired sessions\n", n)
			return nil
		},
	})

	return cmd
}
