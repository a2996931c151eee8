package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/models"
)

type fakeAuth struct {
	configured bool
	unlocked   bool
	password   string
	logouts    int
}

func (f *fakeAuth) Setup(ctx context.Context, password string) (string, error) {
	if f.configured {
		return "", common.ErrAlreadyConfigured
	}
	f.configured, f.unlocked, f.password = true, true, password
	return "tok", nil
}

func (f *fakeAuth) Login(ctx context.Context, password string) (string, error) {
	if !f.configured {
		return "", common.ErrNotConfigured
	}
	if password != f.password {
		return "", common.ErrAuthentication
	}
	f.unlocked = true
	return "tok", nil
}

func (f *fakeAuth) Logout(ctx context.Context) {
	f.logouts++
	f.unlocked = false
}

func (f *fakeAuth) Status(ctx context.Context) (models.Status, error) {
	return models.Status{Configured: f.configured, Unlocked: f.unlocked}, nil
}

// fakeRecords is a tiny in-memory store gated on the fake auth state.
type fakeRecords struct {
	auth    *fakeAuth
	nextID  int64
	entries []models.RecordView
	skipped uint64
}

func (f *fakeRecords) locked() error {
	if !f.auth.unlocked {
		return common.ErrUnauthenticated
	}
	return nil
}

func (f *fakeRecords) List(ctx context.Context) ([]models.RecordView, error) {
	if err := f.locked(); err != nil {
		return nil, err
	}
	return append([]models.RecordView(nil), f.entries...), nil
}

func (f *fakeRecords) Create(ctx context.Context, in models.RecordInput) (int64, error) {
	if err := f.locked(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, errors.Join(common.ErrValidation, errors.New("name is required"))
	}
	f.nextID++
	cat := in.Category
	if cat == "" {
		cat = common.DefaultCategory
	}
	f.entries = append(f.entries, models.RecordView{
		ID: f.nextID, Name: in.Name, URL: in.URL, Username: in.Username,
		Password: in.Password, Notes: in.Notes, Category: cat,
	})
	return f.nextID, nil
}

func (f *fakeRecords) Update(ctx context.Context, id int64, p models.RecordPatch) error {
	if err := f.locked(); err != nil {
		return err
	}
	for i := range f.entries {
		e := &f.entries[i]
		if e.ID != id {
			continue
		}
		set := func(dst *string, v *string) {
			if v != nil {
				*dst = *v
			}
		}
		set(&e.Name, p.Name)
		set(&e.URL, p.URL)
		set(&e.Username, p.Username)
		set(&e.Password, p.Password)
		set(&e.Notes, p.Notes)
		set(&e.Category, p.Category)
		return nil
	}
	return common.ErrorNotFound
}

func (f *fakeRecords) Delete(ctx context.Context, id int64) error {
	if err := f.locked(); err != nil {
		return err
	}
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeRecords) Generate(length int, symbols bool) (string, error) {
	if length < 1 {
		return "", errors.Join(common.ErrValidation, errors.New("bad length"))
	}
	s := strings.Repeat("x", length)
	if symbols {
		s = strings.Repeat("!", length)
	}
	return s, nil
}

func (f *fakeRecords) SkippedEntries() uint64 { return f.skipped }

type fakeBackup struct {
	key string
	err error
}

func (f *fakeBackup) Export(ctx context.Context) (string, error) { return f.key, f.err }

// stubPasswords makes readPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	var mu sync.Mutex
	readPassword = func(int) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(answers) == 0 {
			return nil, errors.New("no more passwords")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

type clipboardRecorder struct {
	mu     sync.Mutex
	writes []string
}

func (c *clipboardRecorder) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writes) == 0 {
		return ""
	}
	return c.writes[len(c.writes)-1]
}

func (c *clipboardRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

func stubClipboard(t *testing.T) *clipboardRecorder {
	t.Helper()
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	rec := &clipboardRecorder{}
	writeClipboard = func(s string) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.writes = append(rec.writes, s)
		return nil
	}
	return rec
}

type testApp struct {
	app     *App
	auth    *fakeAuth
	records *fakeRecords
	backup  *fakeBackup
	out     *bytes.Buffer
}

func newTestApp(input string, clearAfter time.Duration) *testApp {
	fa := &fakeAuth{}
	fr := &fakeRecords{auth: fa}
	fb := &fakeBackup{}
	out := &bytes.Buffer{}

	return &testApp{
		app:     NewApp(fa, fr, fb, clearAfter, strings.NewReader(input), out),
		auth:    fa,
		records: fr,
		backup:  fb,
		out:     out,
	}
}

func (ta *testApp) unlock() {
	ta.auth.configured, ta.auth.unlocked, ta.auth.password = true, true, "master-pass"
}
