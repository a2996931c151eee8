package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/services"
)

// Generate prints a random password: generate [length] [--no-symbols].
func (a *App) Generate(ctx context.Context, args []string) error {
	length := services.DefaultGenerateLength
	symbols := true

	for _, arg := range args {
		switch arg {
		case "--no-symbols", "-n":
			symbols = false
		default:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: unexpected argument %q", common.ErrValidation, arg)
			}
			length = n
		}
	}

	pw, err := a.records.Generate(length, symbols)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, pw)
	return nil
}

// Copy puts an entry's password on the clipboard and clears it after the
// configured delay.
func (a *App) Copy(ctx context.Context, args []string) error {
	rec, err := a.findRecord(ctx, args)
	if err != nil {
		return err
	}

	if err := writeClipboard(rec.Password); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	a.scheduleClipboardClear()

	a.success("Password for %q copied to clipboard. Clearing in %s.", rec.Name, a.clearAfter)
	return nil
}

func (a *App) Backup(ctx context.Context) error {
	key, err := a.backup.Export(ctx)
	if err != nil {
		return err
	}
	a.success("Backup uploaded as %s.", key)
	return nil
}
