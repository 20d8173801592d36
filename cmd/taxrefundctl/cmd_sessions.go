package main

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/taxrefund/internal/bff/app"
	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/spf13/cobra"
)

func (c *ctl) newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage login sessions",
	}
	cmd.AddCommand(c.newSessionsPruneCmd(), c.newSessionsRevokeCmd())
	return cmd
}

func (c *ctl) newSessionsPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete expired and revoked sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, _ app.Config, st store.Store) error {
				n, err := (&service.SessionService{Store: st}).Prune(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d sessions deleted\n", n)
				return nil
			})
		},
	}
}

func (c *ctl) newSessionsRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <userId>",
		Short: "End every active session of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(ctx context.Context, _ app.Config, st store.Store) error {
				n, err := st.Sessions().RevokeUserSessions(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d sessions revoked for %s\n", n, args[0])
				return nil
			})
		},
	}
}
