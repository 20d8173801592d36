package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/taxrefund/internal/bff/app"
	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/aussiebroadwan/taxrefund/pkg/cryptox"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/spf13/cobra"
)

func (c *ctl) newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage stored user passwords",
	}
	cmd.AddCommand(c.newCredentialsSetCmd(), c.newCredentialsDeleteCmd())
	return cmd
}

func (c *ctl) newCredentialsSetCmd() *cobra.Command {
	var (
		password     string
		skipUpstream bool
	)

	cmd := &cobra.Command{
		Use:   "set <userId>",
		Short: "Set a user's password and end their sessions",
		Long: `Stores an argon2id hash of the password for a record-service user.
When --password is omitted a random password is generated and printed.
The user must exist in the record service unless --skip-upstream-check is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			generated := password == ""
			if generated {
				var err error
				if password, err = cryptox.GeneratePassword(); err != nil {
					return err
				}
			}

			return c.withStore(cmd, func(ctx context.Context, cfg app.Config, st store.Store) error {
				hasher, err := app.NewHasher(cfg)
				if err != nil {
					return err
				}

				if !skipUpstream {
					users := &service.UserService{
						Upstream: taxsdk.NewClient(cfg.RecordServiceURL, taxsdk.WithCallTimeout(cfg.UpstreamCallTimeout)),
					}
					if _, err := users.Resolve(ctx, userID); err != nil {
						return fmt.Errorf("check user %s: %w", userID, err)
					}
				}

				auth := &service.AuthService{Store: st, Hasher: hasher}
				revoked, err := auth.SetPassword(ctx, userID, password)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "password set for %s (%d sessions revoked)\n", userID, revoked)
				if generated {
					fmt.Fprintf(cmd.OutOrStdout(), "generated password: %s\n", password)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (generated when empty)")
	cmd.Flags().BoolVar(&skipUpstream, "skip-upstream-check", false, "Do not check that the user exists in the record service")
	return cmd
}

func (c *ctl) newCredentialsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <userId>",
		Short: "Remove a user's stored password and end their sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			return c.withStore(cmd, func(ctx context.Context, _ app.Config, st store.Store) error {
				auth := &service.AuthService{Store: st}
				revoked, err := auth.DeletePassword(ctx, userID)
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no stored password for %s", userID)
				}
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "password removed for %s (%d sessions revoked)\n", userID, revoked)
				return nil
			})
		},
	}
}
