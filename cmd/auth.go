package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/danielolaszy/boardctl/internal/render"
	"github.com/danielolaszy/boardctl/internal/state"
	"github.com/danielolaszy/boardctl/pkg/models"
)

var loginRules = map[string]state.Rule{
	"email":    state.Email("Email is required", "Email is invalid"),
	"password": state.Required("Password is required"),
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: `Log in with email and password. The token and the logged-in member are
stored in the session file and sent with every later command.

Missing values are prompted for; the password is read without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(a.stdin)

			var err error
			if email == "" {
				if email, err = prompt(in, a.stderr, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword(in, a.stdin, a.stderr, "Password: "); err != nil {
					return err
				}
			}

			form, err := submit(state.Values{"email": email, "password": password}, loginRules)
			if err != nil {
				return err
			}

			resp, err := a.client.Auth.Login(cmd.Context(), form.String("email"), form.String("password"))
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			name := form.String("email")
			if resp.TeamMember != nil {
				name = resp.TeamMember.FullName()
			}
			return a.out.Success(resp.TeamMember, fmt.Sprintf("Logged in as %s", name))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Auth.Logout(); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			return a.out.Success(nil, "Logged out")
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := a.client.Auth.CurrentUser()
			if user == nil {
				return errors.New("not logged in: run boardctl login")
			}
			return a.out.Result(user, func() string {
				return render.RenderMembers([]models.TeamMember{*user})
			})
		},
	}
}

func prompt(in *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo from a terminal and falls back to a
// plain line read for pipes.
func promptPassword(in *bufio.Reader, raw io.Reader, w io.Writer, label string) (string, error) {
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(w, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return prompt(in, w, label)
}
