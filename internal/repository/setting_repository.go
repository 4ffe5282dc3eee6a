package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
)

// Setting keys in use.
const (
	// SettingCategorizerToken holds the API token for the external
	// categorizer service, stored encrypted.
	SettingCategorizerToken = "categorizer_api_token"
)

// SettingRepository stores key/value application settings. Secret values
// (API tokens) are encrypted at rest with a fernet key; non-secret values are
// stored as plain text.
type SettingRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewSettingRepository creates a new SettingRepository. encryptionKey is a
// base64 fernet key; it may be empty, in which case encrypted settings are
// unavailable and SetSecret/GetSecret return an error.
func NewSettingRepository(db *sql.DB, encryptionKey string) (*SettingRepository, error) {
	repo := &SettingRepository{db: db}

	if encryptionKey != "" {
		keys, err := fernet.DecodeKeys(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode encryption key: %w", err)
		}
		repo.key = keys[0]
	}

	return repo, nil
}

// Get returns a plain-text setting value.
// Returns apperrors.ErrSettingNotFound when the key has not been configured.
func (r *SettingRepository) Get(key string) (string, error) {
	var value string
	var isEncrypted bool

	err := r.db.QueryRow(`SELECT value, is_encrypted FROM setting WHERE key = ?`, key).
		Scan(&value, &isEncrypted)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	if isEncrypted {
		return "", fmt.Errorf("setting %s is encrypted, use GetSecret", key)
	}
	return value, nil
}

// Set stores a plain-text setting value, overwriting any prior value.
func (r *SettingRepository) Set(key, value string) error {
	return r.upsert(key, value, false)
}

// GetSecret returns a decrypted secret setting value.
func (r *SettingRepository) GetSecret(key string) (string, error) {
	if r.key == nil {
		return "", fmt.Errorf("no encryption key configured")
	}

	var value string
	var isEncrypted bool

	err := r.db.QueryRow(`SELECT value, is_encrypted FROM setting WHERE key = ?`, key).
		Scan(&value, &isEncrypted)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	if !isEncrypted {
		return value, nil
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(value), 0, []*fernet.Key{r.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt setting %s", key)
	}
	return string(plaintext), nil
}

// SetSecret encrypts and stores a secret setting value.
func (r *SettingRepository) SetSecret(key, value string) error {
	if r.key == nil {
		return fmt.Errorf("no encryption key configured")
	}

	ciphertext, err := fernet.EncryptAndSign([]byte(value), r.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt setting %s: %w", key, err)
	}

	return r.upsert(key, string(ciphertext), true)
}

func (r *SettingRepository) upsert(key, value string, encrypted bool) error {
	_, err := r.db.Exec(`
		INSERT INTO setting (key, value, is_encrypted, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			is_encrypted = excluded.is_encrypted,
			updated_at = excluded.updated_at
	`, key, value, encrypted, time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}
