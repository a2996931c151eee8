// Package services implements the vault's application layer: the master
// password verifier protocol, session-gated record operations and encrypted
// backups. Transports call into these services with plaintext and get
// plaintext or typed errors back.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/session"
)

const (
	// MinPasswordLength is counted in characters, not bytes.
	MinPasswordLength = 8

	// verifierMarker is sealed under the master key at setup; opening it at
	// login proves the password.
	verifierMarker = "VAULT_OK"
)

// AuthService drives the vault lifecycle.
//
// Setup and Login both replace the current session and return a fresh
// token. Logout never fails.
type AuthService interface {
	Setup(ctx context.Context, password string) (string, error)
	Login(ctx context.Context, password string) (string, error)
	Logout(ctx context.Context)
	Status(ctx context.Context) (models.Status, error)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue() (string, error)
}

type authService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	session   *session.State
	tokens    TokenIssuer
	logger    logging.Logger
	deriveKey func(password string, salt []byte) []byte
}

func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, sess *session.State, tokens TokenIssuer, logger logging.Logger) AuthService {
	return &authService{
		db:        db,
		repos:     repos,
		session:   sess,
		tokens:    tokens,
		logger:    logger.With("module", "auth"),
		deriveKey: cryptox.DeriveKey,
	}
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}

func (a *authService) configured(ctx context.Context) (bool, error) {
	_, err := a.repos.VaultConfig(a.db).Get(ctx, models.ConfigKeySalt)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storageErr(err)
	}
	return true, nil
}

// Setup initialises a fresh vault. It fails with ErrAlreadyConfigured when a
// configuration exists and with ErrValidation for short passwords.
func (a *authService) Setup(ctx context.Context, password string) (string, error) {
	ok, err := a.configured(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		return "", common.ErrAlreadyConfigured
	}

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: master password must be at least %d characters", common.ErrValidation, MinPasswordLength)
	}

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := a.deriveKey(password, salt)
	defer common.WipeByteArray(key)

	verifier, err := cryptox.Seal(verifierMarker, key)
	if err != nil {
		return "", fmt.Errorf("seal verifier: %w", err)
	}

	token, err := a.tokens.Issue()
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.repos.VaultConfig(tx)
		if err := repo.Insert(ctx, models.ConfigKeySalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
			return err
		}
		return repo.Insert(ctx, models.ConfigKeyVerifier, verifier)
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return "", common.ErrAlreadyConfigured
	}
	if err != nil {
		return "", storageErr(err)
	}

	a.session.Unlock(key, token)
	a.logger.Info(ctx, "vault configured")

	return token, nil
}

// Login re-derives the key from the stored salt and checks it against the
// verifier. A wrong password and a damaged verifier both yield
// ErrAuthentication.
func (a *authService) Login(ctx context.Context, password string) (string, error) {
	repo := a.repos.VaultConfig(a.db)

	saltB64, err := repo.Get(ctx, models.ConfigKeySalt)
	if errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrNotConfigured
	}
	if err != nil {
		return "", storageErr(err)
	}

	verifier, err := repo.Get(ctx, models.ConfigKeyVerifier)
	if errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrAuthentication
	}
	if err != nil {
		return "", storageErr(err)
	}

	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		a.logger.Warn(ctx, "stored salt is not valid base64")
		return "", common.ErrAuthentication
	}

	key := a.deriveKey(password, salt)
	defer common.WipeByteArray(key)

	marker, err := cryptox.Open(verifier, key)
	if err != nil || subtle.ConstantTimeCompare([]byte(marker), []byte(verifierMarker)) != 1 {
		a.logger.Warn(ctx, "login failed")
		return "", common.ErrAuthentication
	}

	token, err := a.tokens.Issue()
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	a.session.Unlock(key, token)
	a.logger.Info(ctx, "vault unlocked")

	return token, nil
}

func (a *authService) Logout(ctx context.Context) {
	if a.session.Unlocked() {
		a.logger.Info(ctx, "vault locked")
	}
	a.session.Lock()
}

func (a *authService) Status(ctx context.Context) (models.Status, error) {
	ok, err := a.configured(ctx)
	if err != nil {
		return models.Status{}, err
	}
	return models.Status{Configured: ok, Unlocked: a.session.Unlocked()}, nil
}
