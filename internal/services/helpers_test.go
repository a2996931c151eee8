package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/auth"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db      *sql.DB
	repos   *repomanager.SQLRepositoryManager
	session *session.State
	auth    AuthService
	records RecordService
}

func fastDerive(password string, salt []byte) []byte {
	return cryptox.DeriveKeyIter(password, salt, 1000)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, repos, err := repomanager.Open(context.Background(), "sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sess := session.New()
	log := logging.Nop()

	a := NewAuthService(db, repos, sess, auth.NewTokenIssuer([]byte("test-secret"), time.Hour), log)
	a.(*authService).deriveKey = fastDerive

	return &testEnv{
		db:      db,
		repos:   repos,
		session: sess,
		auth:    a,
		records: NewRecordService(repos.Records(db), sess, log),
	}
}

func (e *testEnv) rawColumn(t *testing.T, id int64, column string) string {
	t.Helper()
	var v sql.NullString
	require.NoError(t, e.db.QueryRow(`SELECT `+column+` FROM passwords WHERE id = ?`, id).Scan(&v))
	return v.String
}

func ptr[T any](v T) *T { return &v }
