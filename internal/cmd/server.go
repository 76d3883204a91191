package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shareclass/accounts/internal/logging"
	"github.com/shareclass/accounts/internal/server"
)

func newServerCmd() *cobra.Command {
	options := defaultServerOptions()
	var logFile string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the accounts server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				logging.UseFileLogger(logFile)
			} else {
				logging.UseServerLogger()
			}

			srv, err := server.New(options)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			return runServer(cmd.Context(), srv)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&options.Addr.HTTP, "addr-http", options.Addr.HTTP, "HTTP listen address")
	flags.StringVar(&options.Addr.Metrics, "addr-metrics", options.Addr.Metrics, "Metrics listen address")
	flags.StringVar(&options.DBDriver, "db-driver", options.DBDriver, "Database driver [sqlite, postgres]")
	flags.StringVar(&options.DBConnectionString, "db-connection-string", options.DBConnectionString, "Database connection string")
	flags.StringVar(&options.Redis.Host, "redis-host", "", "Redis host for rate limits")
	flags.IntVar(&options.Redis.Port, "redis-port", 6379, "Redis port")
	flags.StringVar(&options.Redis.Username, "redis-username", "", "Redis username")
	flags.StringVar(&options.Redis.Password, "redis-password", "", "Redis password (secret)")
	flags.StringVar(&options.EmailAppDomain, "email-app-domain", "", "Base URL used in password reset links")
	flags.StringVar(&options.EmailFromAddress, "email-from-address", "", "From address for outgoing mail")
	flags.StringVar(&options.EmailFromName, "email-from-name", "", "From name for outgoing mail")
	flags.StringVar(&options.SendgridApiKey, "sendgrid-api-key", "", "Sendgrid API key (secret)")
	flags.StringVar(&options.SMTPServer, "smtp-server", "", "SMTP server address")
	flags.DurationVar(&options.SessionDuration, "session-duration", options.SessionDuration, "Browser session duration")
	flags.BoolVar(&options.EnableLogSampling, "enable-log-sampling", true, "Sample repeated HTTP access logs")
	flags.StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")

	return cmd
}

func defaultServerOptions() server.Options {
	return server.Options{
		Addr: server.ListenerOptions{
			HTTP:    ":80",
			Metrics: ":9090",
		},
		DBDriver:           "sqlite",
		DBConnectionString: "accounts.db",
		SessionDuration:    24 * time.Hour,
	}
}

// shim for testing
var runServer = func(ctx context.Context, srv *server.Server) error {
	return srv.Run(ctx)
}
