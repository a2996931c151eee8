package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	Status(ctx context.Context) error
	Setup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
	Backup(ctx context.Context) error
}

const helpText = `Available commands:
  status                          show whether the vault is configured and unlocked
  setup                           choose the master password (first run only)
  login | logout                  unlock or lock the vault
  list [category]                 list entries
  add                             add an entry
  edit <id>                       change fields of an entry
  delete <id>                     delete an entry
  generate [length] [--no-symbols]
  copy <id>                       copy an entry's password to the clipboard
  backup                          upload an encrypted backup
  exit | quit`

// runREPL reads a command per line from reader and dispatches it to a.
// Command errors are printed and the loop continues. It returns on EOF or
// on "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "passvault (%s)> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(out, errStyle.Render("Error: "+err.Error()))
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)
		case "status":
			cmdErr = a.Status(ctx)
		case "setup":
			cmdErr = a.Setup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "add":
			cmdErr = a.Add(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "generate":
			cmdErr = a.Generate(ctx, args)
		case "copy":
			cmdErr = a.Copy(ctx, args)
		case "backup":
			cmdErr = a.Backup(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, errStyle.Render("Error: "+cmdErr.Error()))
		}
	}
}
