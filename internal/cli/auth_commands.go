package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/calendarapp/calendar-service/internal/client/session"
)

type credentialOptions struct {
	Name     string
	Email    string
	Password string
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "renew the stored session and show who is logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			unmount := a.gate(cmd).Mount(commandContext(cmd))
			unmount()
			return nil
		},
	}
}

func loginCmd(a *app) *cobra.Command {
	var opts credentialOptions
	cmd := &cobra.Command{
		Use:   "login",
		Short: "log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := promptMissing(cmd, &opts, false); err != nil {
				return err
			}
			state := a.session.Login(commandContext(cmd), opts.Email, opts.Password)
			return settle(a, cmd, state)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.Email, "email", "e", "", "account email")
	fs.StringVarP(&opts.Password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var opts credentialOptions
	cmd := &cobra.Command{
		Use:   "register",
		Short: "create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := promptMissing(cmd, &opts, true); err != nil {
				return err
			}
			state := a.session.Register(commandContext(cmd), opts.Name, opts.Email, opts.Password)
			return settle(a, cmd, state)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.Name, "name", "n", "", "display name")
	fs.StringVarP(&opts.Email, "email", "e", "", "account email")
	fs.StringVarP(&opts.Password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.gate(cmd).Render(a.session.Logout())
			return nil
		},
	}
}

// settle renders the final state and turns a failed authentication into a non-zero exit.
func settle(a *app, cmd *cobra.Command, state session.State) error {
	a.gate(cmd).Render(state)
	if na, ok := state.(session.NotAuthenticated); ok {
		if na.ErrorMessage != "" {
			return errors.New(na.ErrorMessage)
		}
		return errors.New("not authenticated")
	}
	return nil
}

func promptMissing(cmd *cobra.Command, opts *credentialOptions, withName bool) error {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	var err error
	if withName && opts.Name == "" {
		if opts.Name, err = p.readLine("name: ", false); err != nil {
			return err
		}
	}
	if opts.Email == "" {
		if opts.Email, err = p.readLine("email: ", false); err != nil {
			return err
		}
	}
	if opts.Password == "" {
		if opts.Password, err = p.readLine("password: ", true); err != nil {
			return errors.New("password required")
		}
	}
	return nil
}
