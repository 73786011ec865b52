package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/listenupapp/shelfnotes/internal/seed"
	"github.com/listenupapp/shelfnotes/internal/service"
)

func newSeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Apply or revert the initial catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Load the classic books (no-op when already applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := seed.NewSeeder(a.store, a.logger)
			applied, err := s.Apply(cmd.Context())
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", s.Name())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already applied\n", s.Name())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revert",
		Short: "Delete every book and mark the seed unapplied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := seed.NewSeeder(a.store, a.logger)
			reverted, err := s.Revert(cmd.Context())
			if err != nil {
				return err
			}
			if reverted {
				fmt.Fprintf(cmd.OutOrStdout(), "reverted %s\n", s.Name())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s not applied\n", s.Name())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the seed is applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := seed.NewSeeder(a.store, a.logger)
			rec, err := s.Status(cmd.Context())
			if err != nil {
				return err
			}
			count, err := service.NewCatalogService(a.store, a.store, a.logger).CountBooks(cmd.Context())
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not applied (%d books)\n", s.Name(), count)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: applied at %s (%d books)\n", rec.Name, rec.AppliedAt.Format(time.RFC3339), count)
			return nil
		},
	})

	return cmd
}
