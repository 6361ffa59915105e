// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

type command struct {
	usage string
	nargs int
	run   func(ctx context.Context, args []string) error
}

type App struct {
	server adapter.ServerAdapter
	out    io.Writer

	commands map[string]command

	logger *logger.Logger
}

// NewApp builds the client over server. A non-empty token is used for the
// commands that need a logged-in account.
func NewApp(server adapter.ServerAdapter, token string, out io.Writer, logger *logger.Logger) *App {
	if token != "" {
		server.SetToken(token)
	}

	a := &App{server: server, out: out, logger: logger}
	a.commands = map[string]command{
		"register": {usage: "register <username> <password>", nargs: 2, run: a.register},
		"login":    {usage: "login <username> <password>", nargs: 2, run: a.login},
		"logout":   {usage: "logout", run: a.logout},
		"passwd":   {usage: "passwd <old-password> <new-password>", nargs: 2, run: a.changePassword},
		"me":       {usage: "me", run: a.me},
		"logs":     {usage: "logs", run: a.logs},
		"version":  {usage: "version", run: a.version},
	}
	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	if len(args)-1 != cmd.nargs {
		return fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	if err := cmd.run(ctx, args[1:]); err != nil {
		a.logger.Err(err).Str("command", args[0]).Msg("command failed")
		return err
	}
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	account, err := a.server.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return a.printSession(account)
}

func (a *App) login(ctx context.Context, args []string) error {
	account, err := a.server.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return a.printSession(account)
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.server.Logout(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, "logged out")
	return err
}

func (a *App) changePassword(ctx context.Context, args []string) error {
	if err := a.server.ChangePassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, "password changed")
	return err
}

func (a *App) me(ctx context.Context, _ []string) error {
	account, err := a.server.Me(ctx)
	if err != nil {
		return err
	}
	return a.printAccount(account)
}

func (a *App) logs(ctx context.Context, _ []string) error {
	entries, err := a.server.Logs(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tOP\tTIME\tIP\tTRANSACTION")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			entry.ID, entry.OpType, entry.OpTimestamp.Format(time.RFC3339), entry.IP, entry.TransactionID)
	}
	return tw.Flush()
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.server.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "server version: %s\n", v)
	return err
}

func (a *App) printSession(account models.Account) error {
	if err := a.printAccount(account); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "token: %s\n", a.server.Token())
	return err
}

func (a *App) printAccount(account models.Account) error {
	_, err := fmt.Fprintf(a.out, "id: %d\nusername: %s\n", account.ID, account.UsernameValue())
	return err
}
