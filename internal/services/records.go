package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/repositories/records"
)

const (
	DefaultGenerateLength = 20
	MaxGenerateLength     = 256
)

// KeyProvider hands out the current master key, or common.ErrUnauthenticated
// while the vault is locked. *session.State implements it.
type KeyProvider interface {
	CurrentKey() ([]byte, error)
}

// RecordService is the session-gated record store. Every method except
// Generate fails with common.ErrUnauthenticated while the vault is locked.
type RecordService interface {
	List(ctx context.Context) ([]models.RecordView, error)
	Create(ctx context.Context, in models.RecordInput) (int64, error)
	Update(ctx context.Context, id int64, patch models.RecordPatch) error
	Delete(ctx context.Context, id int64) error
	Generate(length int, symbols bool) (string, error)
	// SkippedEntries counts records List could not decrypt since start.
	SkippedEntries() uint64
}

type recordService struct {
	repo    records.Repository
	keys    KeyProvider
	logger  logging.Logger
	now     func() time.Time
	skipped atomic.Uint64
}

func NewRecordService(repo records.Repository, keys KeyProvider, logger logging.Logger) RecordService {
	return &recordService{
		repo:   repo,
		keys:   keys,
		logger: logger.With("module", "records"),
		now:    time.Now,
	}
}

func (s *recordService) SkippedEntries() uint64 {
	return s.skipped.Load()
}

// List decrypts every record. Rows that fail to decrypt are left out of the
// result rather than failing the whole listing.
func (s *recordService) List(ctx context.Context) ([]models.RecordView, error) {
	key, err := s.keys.CurrentKey()
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	result := make([]models.RecordView, 0, len(rows))
	for _, row := range rows {
		view, err := openRecord(&row, key)
		if err != nil {
			s.skipped.Add(1)
			s.logger.Warn(ctx, "skipping undecryptable record", "id", row.ID)
			continue
		}
		result = append(result, view)
	}

	return result, nil
}

func openRecord(r *models.Record, key []byte) (models.RecordView, error) {
	username, err := cryptox.Open(r.Username, key)
	if err != nil {
		return models.RecordView{}, fmt.Errorf("%w: username", common.ErrCorruptEntry)
	}
	password, err := cryptox.Open(r.Password, key)
	if err != nil {
		return models.RecordView{}, fmt.Errorf("%w: password", common.ErrCorruptEntry)
	}
	var notes string
	if r.Notes != nil {
		notes, err = cryptox.Open(*r.Notes, key)
		if err != nil {
			return models.RecordView{}, fmt.Errorf("%w: notes", common.ErrCorruptEntry)
		}
	}

	return models.RecordView{
		ID:        r.ID,
		Name:      r.Name,
		URL:       r.URL,
		Username:  username,
		Password:  password,
		Notes:     notes,
		Category:  r.Category,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}

// Create seals the sensitive fields and stores the record. Nothing is
// written if any field fails to seal.
func (s *recordService) Create(ctx context.Context, in models.RecordInput) (int64, error) {
	key, err := s.keys.CurrentKey()
	if err != nil {
		return 0, err
	}
	defer common.WipeByteArray(key)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, validationErr("name is required")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = common.DefaultCategory
	}

	username, err := cryptox.Seal(in.Username, key)
	if err != nil {
		return 0, fmt.Errorf("seal username: %w", err)
	}
	password, err := cryptox.Seal(in.Password, key)
	if err != nil {
		return 0, fmt.Errorf("seal password: %w", err)
	}
	notes, err := cryptox.Seal(in.Notes, key)
	if err != nil {
		return 0, fmt.Errorf("seal notes: %w", err)
	}

	now := s.now().UTC()
	id, err := s.repo.Create(ctx, &models.Record{
		Name:      name,
		URL:       strings.TrimSpace(in.URL),
		Username:  username,
		Password:  password,
		Notes:     &notes,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, storageErr(err)
	}

	s.logger.Debug(ctx, "record created", "id", id)
	return id, nil
}

func validatePatch(p models.RecordPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return validationErr("name must not be blank")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return validationErr("category must not be blank")
	}
	return nil
}

// Update applies the fields present in patch. Validation and sealing both
// finish before the single write, so a failed update changes nothing.
func (s *recordService) Update(ctx context.Context, id int64, patch models.RecordPatch) error {
	key, err := s.keys.CurrentKey()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	if err := validatePatch(patch); err != nil {
		return err
	}

	rec, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return storageErr(err)
	}

	updated := *rec
	if patch.Username != nil {
		if updated.Username, err = cryptox.Seal(*patch.Username, key); err != nil {
			return fmt.Errorf("seal username: %w", err)
		}
	}
	if patch.Password != nil {
		if updated.Password, err = cryptox.Seal(*patch.Password, key); err != nil {
			return fmt.Errorf("seal password: %w", err)
		}
	}
	if patch.Notes != nil {
		notes, err := cryptox.Seal(*patch.Notes, key)
		if err != nil {
			return fmt.Errorf("seal notes: %w", err)
		}
		updated.Notes = &notes
	}
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.URL != nil {
		updated.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.Category != nil {
		updated.Category = strings.TrimSpace(*patch.Category)
	}
	updated.UpdatedAt = s.now().UTC()

	err = s.repo.Update(ctx, &updated)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return storageErr(err)
	}

	s.logger.Debug(ctx, "record updated", "id", id)
	return nil
}

func (s *recordService) Delete(ctx context.Context, id int64) error {
	key, err := s.keys.CurrentKey()
	if err != nil {
		return err
	}
	common.WipeByteArray(key)

	err = s.repo.Delete(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return storageErr(err)
	}

	s.logger.Debug(ctx, "record deleted", "id", id)
	return nil
}

// Generate needs no session.
func (s *recordService) Generate(length int, symbols bool) (string, error) {
	if length < 1 || length > MaxGenerateLength {
		return "", validationErr("length must be between 1 and %d", MaxGenerateLength)
	}
	return cryptox.GeneratePassword(length, symbols)
}
