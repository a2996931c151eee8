package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/netx"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
	"github.com/google/uuid"
)

const backupFormatVersion = 1

// Presigner issues a one-shot upload URL for an object key.
type Presigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
}

// BackupService exports the vault, still encrypted, to object storage.
type BackupService interface {
	Export(ctx context.Context) (string, error)
}

type backupRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Username  string    `json:"username_encrypted"`
	Password  string    `json:"password_encrypted"`
	Notes     *string   `json:"notes_encrypted"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type backupSnapshot struct {
	Version   int                `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	Config    models.VaultConfig `json:"config"`
	Records   []backupRecord     `json:"records"`
}

type backupService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	keys      KeyProvider
	presigner Presigner
	upload    func(ctx context.Context, url, contentType string, body []byte) error
	logger    logging.Logger
	now       func() time.Time
}

// NewBackupService returns a service that uploads snapshots through
// presigner. A nil presigner disables backups.
func NewBackupService(db *sql.DB, repos repomanager.RepositoryManager, keys KeyProvider, presigner Presigner, logger logging.Logger) BackupService {
	return &backupService{
		db:        db,
		repos:     repos,
		keys:      keys,
		presigner: presigner,
		upload: func(ctx context.Context, url, contentType string, body []byte) error {
			return netx.UploadToPresignedURL(ctx, nil, url, contentType, body)
		},
		logger: logger.With("module", "backup"),
		now:    time.Now,
	}
}

// Export requires an unlocked vault, although it never decrypts anything:
// the snapshot holds exactly what is on disk.
func (b *backupService) Export(ctx context.Context) (string, error) {
	key, err := b.keys.CurrentKey()
	if err != nil {
		return "", err
	}
	common.WipeByteArray(key)

	if b.presigner == nil {
		return "", common.ErrBackupDisabled
	}

	snap, err := b.snapshot(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	objectKey := fmt.Sprintf("backups/%s/%s.json", snap.CreatedAt.Format("2006/01/02"), uuid.NewString())

	url, err := b.presigner.PresignPut(ctx, objectKey)
	if err != nil {
		return "", err
	}
	if err := b.upload(ctx, url, "application/json", body); err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}

	b.logger.Info(ctx, "backup uploaded", "key", objectKey, "records", len(snap.Records))
	return objectKey, nil
}

func (b *backupService) snapshot(ctx context.Context) (*backupSnapshot, error) {
	snap := &backupSnapshot{Version: backupFormatVersion, CreatedAt: b.now().UTC()}

	err := dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cfg, err := b.repos.VaultConfig(tx).List(ctx)
		if err != nil {
			return err
		}
		snap.Config = models.VaultConfig{
			Salt:     cfg[models.ConfigKeySalt],
			Verifier: cfg[models.ConfigKeyVerifier],
		}

		rows, err := b.repos.Records(tx).List(ctx)
		if err != nil {
			return err
		}
		snap.Records = make([]backupRecord, 0, len(rows))
		for _, r := range rows {
			snap.Records = append(snap.Records, backupRecord{
				ID:        r.ID,
				Name:      r.Name,
				URL:       r.URL,
				Username:  r.Username,
				Password:  r.Password,
				Notes:     r.Notes,
				Category:  r.Category,
				CreatedAt: r.CreatedAt,
				UpdatedAt: r.UpdatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}

	return snap, nil
}
