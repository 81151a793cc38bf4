// Package cli implements calendarctl, a terminal client for the calendar backend.
package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/client/api"
	"github.com/calendarapp/calendar-service/internal/client/gate"
	"github.com/calendarapp/calendar-service/internal/client/session"
	"github.com/calendarapp/calendar-service/internal/client/storage"
	"github.com/calendarapp/calendar-service/internal/observability"
)

// app is built once per invocation and shared by every subcommand.
type app struct {
	opts    Options
	logger  *zap.Logger
	store   *storage.FileStore
	client  *api.Client
	session *session.Session
}

func (a *app) gate(cmd *cobra.Command) *gate.Gate {
	return gate.New(a.session, NewTextRenderer(cmd.OutOrStdout()))
}

// NewRootCommand returns the calendarctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "calendarctl",
		Short:         "calendarctl: terminal client for the calendar service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		statusCmd(a),
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		eventsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	opts, err := loadOptions(cmd.Flags())
	if err != nil {
		return err
	}
	a.opts = opts

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	if a.logger, err = observability.NewConsoleLogger(level); err != nil {
		return err
	}

	a.store = storage.NewFileStore(opts.SessionFile)
	a.client = api.New(opts.APIURL, a.store,
		api.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
		api.WithLogger(a.logger.Named("api")),
	)
	a.session = session.New(a.client, a.store,
		session.WithErrorTTL(opts.ErrorTTL),
		session.WithLogger(a.logger.Named("session")),
	)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
