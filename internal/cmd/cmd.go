package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/cmd/cliopts"
	"github.com/shareclass/accounts/internal/logging"
)

// Run the main CLI command with the given args. The args should not contain
// the name of the binary (ex: os.Args[1:]).
func Run(ctx context.Context, args ...string) error {
	cli := newCLI(ctx)
	cmd := NewRootCmd(cli)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd(cli *CLI) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "accounts",
		Short:             "Account service for Share Class",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := cliopts.DefaultsFromEnv("ACCOUNTS", cmd.Flags()); err != nil {
				return err
			}
			return logging.SetLevel(cli.RootOptions.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(
		newServerCmd(),
		newVersionCmd(cli),
	)

	rootCmd.PersistentFlags().Bool("help", false, "Display help")
	rootCmd.PersistentFlags().StringVar(&cli.RootOptions.LogLevel, "log-level", "info", "Show logs when running the command [error, warn, info, debug]")

	return rootCmd
}

func newVersionCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.Output("accounts version %s", internal.FullVersion())
			return nil
		},
	}
}
