package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/bissquit/rolechain/internal/app"
	"github.com/bissquit/rolechain/internal/config"
	"github.com/bissquit/rolechain/internal/domain"
	"github.com/bissquit/rolechain/internal/pkg/ctxlog"
	"github.com/bissquit/rolechain/internal/version"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	metrics     bool
	permissions []string
	depth       int
	userID      int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	var application *app.App

	rootCmd := &cobra.Command{
		Use:           "rolechain",
		Short:         "Permission catalog and user ancestry tool",
		Long:          `Resolve permission names and walk parent links of user chains given as ids.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			application = app.New(cfg, stdout, stderr)
			ctx := application.Context(cmd.Context())
			cmd.SetContext(ctxlog.With(ctx, "command", cmd.Name()))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if application == nil || !(opts.metrics || application.Config().Metrics.Enabled) {
				return nil
			}
			return application.DumpMetrics(stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "Dump metrics to stderr after the command")

	chainCmd := func(use, short string, run func(ctx context.Context, u *domain.User) error) *cobra.Command {
		cmd := &cobra.Command{
			Use:   use + " ID [PARENT_ID ...]",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				u, err := application.BuildChain(cmd.Context(), ids, opts.permissions)
				if err != nil {
					return err
				}
				return run(cmd.Context(), u)
			},
		}
		cmd.Flags().StringSliceVarP(&opts.permissions, "permission", "p", nil, "Permission granted to the first user (repeatable)")
		return cmd
	}

	ancestorCmd := chainCmd("ancestor", "Print the id of the ancestor --depth hops up", func(ctx context.Context, u *domain.User) error {
		_, _, err := application.Ancestor(ctx, u, opts.depth)
		return err
	})
	ancestorCmd.Flags().IntVar(&opts.depth, "depth", -1, "Number of hops (default from config)")

	permissionsOfCmd := chainCmd("permissions-of", "Print permissions of --user within the chain", func(ctx context.Context, u *domain.User) error {
		_, err := application.PermissionsOf(ctx, u, opts.userID)
		return err
	})
	permissionsOfCmd.Flags().IntVar(&opts.userID, "user", 0, "User id to look up")
	_ = permissionsOfCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "permissions",
			Short: "List the permission catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return application.ListPermissions(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "lookup NAME",
			Short: "Resolve a permission by its exact name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := application.Lookup(cmd.Context(), args[0])
				return err
			},
		},
		chainCmd("grandparent", "Print the grandparent id of the first user", func(ctx context.Context, u *domain.User) error {
			_, _, err := application.Grandparent(ctx, u)
			return err
		}),
		ancestorCmd,
		chainCmd("lineage", "Print the chain, nearest first", func(ctx context.Context, u *domain.User) error {
			return application.Lineage(ctx, u)
		}),
		permissionsOfCmd,
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return err
			},
		},
	)

	return rootCmd
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("parse user id %q: %w", arg, err)
		}
		ids[i] = id
	}
	return ids, nil
}
