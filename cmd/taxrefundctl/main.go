// Command taxrefundctl administers the BFF's local state: schema migrations,
// stored passwords and login sessions. It reads the same configuration as
// the BFF itself.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/app"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ctl carries the flags shared by every subcommand.
type ctl struct {
	envFiles []string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	c := &ctl{}

	root := &cobra.Command{
		Use:           "taxrefundctl",
		Short:         "Administer the tax refund BFF's credentials and sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "Operation timeout")

	root.AddCommand(
		c.newMigrateCmd(),
		c.newCredentialsCmd(),
		c.newSessionsCmd(),
	)
	return root
}

func (c *ctl) config() (app.Config, error) {
	if err := app.LoadDotEnv(c.envFiles...); err != nil {
		return app.Config{}, err
	}
	return app.LoadConfig()
}

// withStore opens the configured store, migrated, for the duration of fn.
func (c *ctl) withStore(cmd *cobra.Command, fn func(ctx context.Context, cfg app.Config, st store.Store) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()

	st, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	return fn(ctx, cfg, st)
}

func (c *ctl) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(_ context.Context, cfg app.Config, _ store.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s store)\n", cfg.StoreDriver)
				return nil
			})
		},
	}
}
