package cli

import (
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/calendarapp/calendar-service/internal/client/api"
)

type eventOptions struct {
	Title    string
	Notes    string
	Start    string
	End      string
	Duration time.Duration
}

func eventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "manage calendar events",
	}
	cmd.AddCommand(eventsListCmd(a), eventsCreateCmd(a), eventsDeleteCmd(a))
	return cmd
}

func eventsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list every event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := a.client.ListEvents(commandContext(cmd))
			if err != nil {
				return explain(err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tOWNER")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Title, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.User.Name)
			}
			return w.Flush()
		},
	}
}

func eventsCreateCmd(a *app) *cobra.Command {
	var opts eventOptions
	cmd := &cobra.Command{
		Use:   "create",
		Short: "create an event owned by the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := opts.input()
			if err != nil {
				return err
			}
			event, err := a.client.CreateEvent(commandContext(cmd), input)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Evento creado: %s\n", event.ID)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.Title, "title", "t", "", "event title")
	fs.StringVar(&opts.Notes, "notes", "", "free text notes")
	fs.StringVar(&opts.Start, "start", "", "start time, RFC3339")
	fs.StringVar(&opts.End, "end", "", "end time, RFC3339 (defaults to start + duration)")
	fs.DurationVar(&opts.Duration, "duration", time.Hour, "length used when --end is omitted")
	return cmd
}

func eventsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "delete an event owned by the current user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteEvent(commandContext(cmd), args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Evento eliminado: %s\n", args[0])
			return nil
		},
	}
}

func (o eventOptions) input() (api.EventInput, error) {
	if o.Start == "" {
		return api.EventInput{}, errors.New("--start is required")
	}
	start, err := time.Parse(time.RFC3339, o.Start)
	if err != nil {
		return api.EventInput{}, fmt.Errorf("--start: %w", err)
	}
	end := start.Add(o.Duration)
	if o.End != "" {
		if end, err = time.Parse(time.RFC3339, o.End); err != nil {
			return api.EventInput{}, fmt.Errorf("--end: %w", err)
		}
	}
	return api.EventInput{Title: o.Title, Notes: o.Notes, Start: start, End: end}, nil
}

// explain turns backend errors into messages for the terminal. A 401 never logs the
// user out; it only suggests doing so.
func explain(err error) error {
	if api.IsUnauthorized(err) {
		return fmt.Errorf("%w (ejecute 'calendarctl status' o 'calendarctl login')", err)
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		fields := make([]string, 0, len(apiErr.Fields))
		for field := range apiErr.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		msg := apiErr.Message
		for _, field := range fields {
			msg += fmt.Sprintf("; %s: %s", field, apiErr.Fields[field])
		}
		return errors.New(msg)
	}
	return err
}
