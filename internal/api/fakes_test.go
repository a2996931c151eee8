package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/auth"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/session"
)

type fakeAuth struct {
	tokens *auth.TokenIssuer
	sess   *session.State

	setupErr  error
	loginErr  error
	statusErr error
	logouts   int
}

func (f *fakeAuth) unlock() (string, error) {
	tok, err := f.tokens.Issue()
	if err != nil {
		return "", err
	}
	f.sess.Unlock([]byte("0123456789abcdef0123456789abcdef"), tok)
	return tok, nil
}

func (f *fakeAuth) Setup(ctx context.Context, password string) (string, error) {
	if f.setupErr != nil {
		return "", f.setupErr
	}
	return f.unlock()
}

func (f *fakeAuth) Login(ctx context.Context, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.unlock()
}

func (f *fakeAuth) Logout(ctx context.Context) {
	f.logouts++
	f.sess.Lock()
}

func (f *fakeAuth) Status(ctx context.Context) (models.Status, error) {
	if f.statusErr != nil {
		return models.Status{}, f.statusErr
	}
	return models.Status{Configured: true, Unlocked: f.sess.Unlocked()}, nil
}

type fakeRecords struct {
	list      []models.RecordView
	listErr   error
	createID  int64
	createErr error
	created   []models.RecordInput
	updateErr error
	updated   map[int64]models.RecordPatch
	deleteErr error
	deleted   []int64

	genLength  int
	genSymbols bool
	genErr     error
}

func (f *fakeRecords) List(ctx context.Context) ([]models.RecordView, error) {
	return f.list, f.listErr
}

func (f *fakeRecords) Create(ctx context.Context, in models.RecordInput) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, in)
	return f.createID, nil
}

func (f *fakeRecords) Update(ctx context.Context, id int64, patch models.RecordPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = map[int64]models.RecordPatch{}
	}
	f.updated[id] = patch
	return nil
}

func (f *fakeRecords) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecords) Generate(length int, symbols bool) (string, error) {
	f.genLength, f.genSymbols = length, symbols
	if f.genErr != nil {
		return "", f.genErr
	}
	return "generated", nil
}

func (f *fakeRecords) SkippedEntries() uint64 { return 0 }

type fakeBackup struct {
	key string
	err error
}

func (f *fakeBackup) Export(ctx context.Context) (string, error) {
	return f.key, f.err
}

type testEnv struct {
	auth    *fakeAuth
	records *fakeRecords
	backup  *fakeBackup
	sess    *session.State
	server  *Server
	http    *httptest.Server
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()

	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	sess := session.New()

	env := &testEnv{
		auth:    &fakeAuth{tokens: issuer, sess: sess},
		records: &fakeRecords{},
		backup:  &fakeBackup{},
		sess:    sess,
	}
	env.server = NewServer(opts, env.auth, env.records, env.backup, issuer, sess, logging.Nop())
	env.http = httptest.NewServer(env.server.NewRouter())
	t.Cleanup(env.http.Close)

	return env
}

// login unlocks the fake vault and returns the bearer token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	tok, err := e.auth.unlock()
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	return tok
}

func authorized(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
