// Package cmd provides the command-line interface for boardctl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/boardctl/internal/api"
	"github.com/danielolaszy/boardctl/internal/config"
	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/internal/output"
	"github.com/danielolaszy/boardctl/internal/session"
	"github.com/danielolaszy/boardctl/internal/state"
)

const appName = "boardctl"

// app is the application root: it owns configuration, the session and the
// API client every command works through.
type app struct {
	apiURL       string
	sessionFile  string
	outputFormat string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg     *config.Config
	out     *output.Writer
	client  *api.Client
	closers []io.Closer
}

// setup loads configuration and builds the client. Flags override config.
func (a *app) setup() error {
	format, err := output.ParseFormat(a.outputFormat)
	if err != nil {
		return err
	}
	a.out = &output.Writer{Format: format, Stdout: a.stdout, Stderr: a.stderr}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.URL = strings.TrimRight(a.apiURL, "/")
	}
	if err := config.ValidateAPIConfig(cfg); err != nil {
		return err
	}
	if a.sessionFile != "" {
		cfg.Session.File = a.sessionFile
	}
	a.cfg = cfg

	if cfg.Log.File {
		dir, err := logging.DefaultLogDir(appName)
		if err != nil {
			return err
		}
		closer, err := logging.SetupWithFile(a.stderr, logging.LevelFromEnv(), dir, appName)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, closer)
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.Session.File != "" {
		store = session.NewFileStore(cfg.Session.File)
	}

	client, err := api.NewClient(cfg.API.URL, session.New(store), api.WithNotifier(a.out.Notifier()))
	if err != nil {
		return err
	}
	a.client = client

	logging.Debug("boardctl configured",
		"api_url", cfg.API.URL,
		"session_file", cfg.Session.File,
		"output", format)
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		c.Close()
	}
	a.closers = nil
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "boardctl is a command-line client for the project board",
		Long: `boardctl works with the project board backend from the terminal.

It manages projects, teams, members, labels, boards and tickets, renders
a project's kanban board, checks linked GitHub pull requests and workflow
runs, and mirrors board tickets into JIRA.

Configuration is read from the environment (BOARDCTL_API_URL,
BOARDCTL_SESSION_FILE, BOARDCTL_LOG_FILE, GITHUB_TOKEN, GITHUB_DOMAIN,
JIRA_URL, JIRA_USERNAME, JIRA_TOKEN) and ~/.boardctl/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "board backend URL (overrides BOARDCTL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "session file (overrides BOARDCTL_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", string(output.FormatHuman), "output format: human, json or yaml")

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProjectsCmd(a),
		newTeamsCmd(a),
		newMembersCmd(a),
		newLabelsCmd(a),
		newBoardsCmd(a),
		newTicketsCmd(a),
		newGitHubCmd(a),
		newJiraCmd(a),
	)

	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	return run(context.Background(), a, os.Args[1:])
}

func run(ctx context.Context, a *app, args []string) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	defer a.close()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return output.ExitSuccess
	}

	logging.Debug("command execution failed", "error", err)
	w := a.out
	if w == nil {
		w = &output.Writer{Format: output.FormatHuman, Stdout: a.stdout, Stderr: a.stderr}
	}
	return w.Error(err)
}

// viewError is the message a view shows for a failed load. The cause is kept
// for classification.
type viewError struct {
	msg string
	err error
}

func (e *viewError) Error() string { return e.msg }
func (e *viewError) Unwrap() error { return e.err }

// notFound reports a lookup that came back empty. It classifies like a 404.
func notFound(kind, ref string) error {
	return &viewError{
		msg: fmt.Sprintf("%s %q not found", kind, ref),
		err: &api.HTTPError{StatusCode: http.StatusNotFound, Status: "404 Not Found"},
	}
}

// load runs op through a fetch-state container, the way every view loads
// its data, and turns a failure into the message the view would show.
func load[T any](ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	var cause error
	f := state.NewFetch[T](ctx, func(ctx context.Context, _ ...any) (T, error) {
		v, err := op(ctx)
		cause = err
		return v, err
	})
	defer f.Dispose()

	data, ok := f.Execute(ctx)
	if !ok {
		if cause == nil {
			cause = errors.New(f.Err())
		}
		return data, &viewError{msg: f.Err(), err: cause}
	}
	return data, nil
}

// readMany wraps a read-many call, which never fails.
func readMany[T any](fn func(context.Context) T) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return fn(ctx), nil
	}
}

// submit validates values as a form would before anything is sent. Strings
// are trimmed first.
func submit(values state.Values, rules map[string]state.Rule) (*state.Form, error) {
	form := state.NewForm(nil)
	for name, v := range values {
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		form.HandleChange(state.FieldEvent{Name: name, Value: v})
	}

	if !form.Validate(rules) {
		return nil, &output.ValidationError{Fields: form.Errors()}
	}
	return form, nil
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}

// optionalID returns nil for an unset flag.
func optionalID(cmd *cobra.Command, flag string, v int64) *int64 {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}
