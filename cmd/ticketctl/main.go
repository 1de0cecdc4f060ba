// Command ticketctl signs in to a ticket tracker server and keeps the session in
// files under the user's config directory.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go-ticket-tracker/internal/client"
	"go-ticket-tracker/internal/logger"
	"go-ticket-tracker/internal/session"
)

const usage = `usage: ticketctl [flags] <command>

commands:
  login       sign in with -email and -password
  whoami      print the signed-in user
  refresh     renew the access token
  logout      revoke the refresh token and forget the session
  logout-all  revoke every refresh token of the signed-in user

flags:
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "ticketctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ticketctl", flag.ContinueOnError)
	server := fs.String("server", envOr("TICKETCTL_SERVER", "http://localhost:5000"), "API base URL")
	email := fs.String("email", "", "account email (login)")
	password := fs.String("password", os.Getenv("TICKETCTL_PASSWORD"), "account password (login)")
	dir := fs.String("dir", defaultDir(), "directory holding the session files")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one command")
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	slog.SetDefault(logger.New(os.Stderr, logger.FormatPretty, level))

	c := client.New(*server,
		session.FileSlot{Path: filepath.Join(*dir, "accessToken")},
		session.FileSlot{Path: filepath.Join(*dir, "refreshToken")},
	)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var (
		state session.State
		err   error
	)
	switch cmd := fs.Arg(0); cmd {
	case "login":
		if *email == "" || *password == "" {
			return errors.New("login needs -email and -password")
		}
		state, err = c.Login(ctx, *email, *password)
	case "whoami":
		state, err = c.LoadUser(ctx)
	case "refresh":
		if state, err = c.Refresh(ctx); err == nil {
			state, err = c.LoadUser(ctx)
		}
	case "logout":
		state, err = c.Logout(ctx)
	case "logout-all":
		state, err = c.LogoutAll(ctx)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}

	return printState(out, state)
}

func printState(w io.Writer, state session.State) error {
	view := struct {
		Authenticated bool           `json:"authenticated"`
		User          any            `json:"user,omitempty"`
		Alert         *session.Alert `json:"alert,omitempty"`
	}{Authenticated: state.IsAuthenticated, Alert: state.Alert}
	if state.User != nil {
		view.User = state.User
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func defaultDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "ticketctl")
	}
	return ".ticketctl"
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
