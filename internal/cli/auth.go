package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
)

var errPasswordMismatch = errors.New("passwords do not match")

func (a *App) Status(ctx context.Context) error {
	st, err := a.auth.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "configured: %t\nunlocked:   %t\n", st.Configured, st.Unlocked)
	if n := a.records.SkippedEntries(); n > 0 {
		fmt.Fprintf(a.out, "skipped undecryptable entries: %d\n", n)
	}
	return nil
}

// Setup asks for the new master password twice and configures the vault.
func (a *App) Setup(ctx context.Context) error {
	st, err := a.auth.Status(ctx)
	if err != nil {
		return err
	}
	if st.Configured {
		return fmt.Errorf("%w, use 'login'", common.ErrAlreadyConfigured)
	}

	pw, err := GetPassword("New master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	again, err := GetPassword("Repeat master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if string(pw) != string(again) {
		return errPasswordMismatch
	}

	if _, err := a.auth.Setup(ctx, string(pw)); err != nil {
		return err
	}

	a.success("Vault configured and unlocked.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	pw, err := GetPassword("Master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if _, err := a.auth.Login(ctx, string(pw)); err != nil {
		return err
	}

	a.success("Vault unlocked.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.flushClipboard()
	a.success("Vault locked.")
	return nil
}
