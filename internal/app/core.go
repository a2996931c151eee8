// Package app wires configuration, storage, the session and the vault
// services together, and runs the network servers.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/auth"
	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/objstore"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/services"
	"github.com/dmitrijs2005/passvault/internal/session"
)

// Core is the transport-independent part of the application, shared by the
// server and the CLI.
type Core struct {
	DB      *sql.DB
	Session *session.State
	Tokens  *auth.TokenIssuer
	Auth    services.AuthService
	Records services.RecordService
	Backup  services.BackupService
}

// NewCore opens and migrates the database and builds the services. Backups
// are enabled only when an S3 bucket is configured.
func NewCore(ctx context.Context, c *config.Config, logger logging.Logger) (*Core, error) {
	db, repos, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var presigner services.Presigner
	if c.S3Bucket != "" {
		p, err := objstore.NewS3Presigner(ctx, objstore.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		presigner = p
	}

	sess := session.New()
	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.TokenValidityDuration)

	return &Core{
		DB:      db,
		Session: sess,
		Tokens:  tokens,
		Auth:    services.NewAuthService(db, repos, sess, tokens, logger),
		Records: services.NewRecordService(repos.Records(db), sess, logger),
		Backup:  services.NewBackupService(db, repos, sess, presigner, logger),
	}, nil
}

// Close locks the vault and closes the database.
func (c *Core) Close() error {
	c.Session.Lock()
	return c.DB.Close()
}
