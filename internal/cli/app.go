package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/passvault/internal/services"
)

// writeClipboard is a test seam for clipboard.WriteAll.
var writeClipboard = clipboard.WriteAll

type App struct {
	auth       services.AuthService
	records    services.RecordService
	backup     services.BackupService
	clearAfter time.Duration
	reader     *bufio.Reader
	out        io.Writer

	mu         sync.Mutex
	clearTimer *time.Timer
	clearGen   uint64
}

// NewApp builds the REPL. clearAfter is how long a copied password stays
// on the clipboard.
func NewApp(auth services.AuthService, records services.RecordService, backup services.BackupService,
	clearAfter time.Duration, in io.Reader, out io.Writer) *App {
	return &App{
		auth:       auth,
		records:    records,
		backup:     backup,
		clearAfter: clearAfter,
		reader:     bufio.NewReader(in),
		out:        out,
	}
}

// Run blocks until the user exits or input ends. On return the vault is
// locked and a pending clipboard clear is performed immediately.
func (a *App) Run(ctx context.Context) {
	defer a.auth.Logout(ctx)
	defer a.flushClipboard()

	fmt.Fprintln(a.out, titleStyle.Render("passvault")+" (type 'help' for commands)")

	if st, err := a.auth.Status(ctx); err == nil && !st.Configured {
		fmt.Fprintln(a.out, dimStyle.Render("The vault is not configured yet. Run 'setup' to choose a master password."))
	}

	runREPL(ctx, a, func() string { return a.promptStatus(ctx) }, a.reader, a.out)
}

func (a *App) promptStatus(ctx context.Context) string {
	st, err := a.auth.Status(ctx)
	switch {
	case err != nil:
		return "error"
	case !st.Configured:
		return "not configured"
	case st.Unlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

func (a *App) success(format string, args ...any) {
	fmt.Fprintln(a.out, msgStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) scheduleClipboardClear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.clearTimer != nil {
		a.clearTimer.Stop()
	}
	a.clearGen++
	gen := a.clearGen
	a.clearTimer = time.AfterFunc(a.clearAfter, func() { a.clearIfCurrent(gen) })
}

// clearIfCurrent runs when the timer of generation gen fires. A timer
// superseded by a later copy or flushed on logout leaves the clipboard alone.
func (a *App) clearIfCurrent(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.clearGen || a.clearTimer == nil {
		return
	}
	a.clearTimer = nil
	_ = writeClipboard("")
}

func (a *App) flushClipboard() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.clearTimer == nil {
		return
	}
	a.clearTimer.Stop()
	a.clearTimer = nil
	a.clearGen++
	_ = writeClipboard("")
}
