package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// SnapshotKey is the fixed key the latest analysis result is persisted under.
// There is exactly one current snapshot; every successful computation
// overwrites it.
const SnapshotKey = "transactionAnalysis"

// SnapshotRepository persists the versioned analysis result so consumers can
// render a cached result on cold start before the first recomputation. The
// snapshot is advisory only, never a source of truth.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveSnapshot serializes the analysis under the fixed key, overwriting any
// prior value.
func (r *SnapshotRepository) SaveSnapshot(a *model.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis snapshot: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO analysis_snapshot (key, version, generated_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			generated_at = excluded.generated_at,
			payload = excluded.payload
	`, SnapshotKey, a.Version, a.GeneratedAt.UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("failed to persist analysis snapshot: %w", err)
	}
	return nil
}

// GetSnapshot reads the persisted analysis back. A missing row or a row whose
// schema version does not match model.AnalysisVersion both return
// apperrors.ErrSnapshotNotFound: stale-schema snapshots must be discarded,
// not migrated.
func (r *SnapshotRepository) GetSnapshot() (*model.Analysis, error) {
	var version int
	var payload string

	err := r.db.QueryRow(`
		SELECT version, payload
		FROM analysis_snapshot
		WHERE key = ?
	`, SnapshotKey).Scan(&version, &payload)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis snapshot: %w", err)
	}

	if version != model.AnalysisVersion {
		return nil, apperrors.ErrSnapshotNotFound
	}

	var a model.Analysis
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("failed to deserialize analysis snapshot: %w", err)
	}
	return &a, nil
}
