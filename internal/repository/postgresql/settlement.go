package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/database"
)

type settlementRepositoryImpl struct {
	db *database.DB
}

func NewSettlementRepository(db *database.DB) settlement.SettlementRepository {
	return &settlementRepositoryImpl{db: db}
}

// Save implements settlement.SettlementRepository. One row per employee;
// the full record is stored as a jsonb document with the workflow columns
// lifted out for filtering. The version column is the optimistic lock: an
// update only lands when the caller's version matches the stored one, and
// every landed write increments it.
func (r *settlementRepositoryImpl) Save(ctx context.Context, rec settlement.Record) (settlement.Record, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(rec)
	if err != nil {
		return settlement.Record{}, fmt.Errorf("failed to marshal settlement record: %w", err)
	}

	query := `
		INSERT INTO settlements (employee_id, status, version, payload)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (employee_id) DO UPDATE SET
			status = EXCLUDED.status,
			version = settlements.version + 1,
			payload = EXCLUDED.payload,
			updated_at = NOW()
		WHERE settlements.version = $4
		RETURNING version, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, rec.EmployeeID, rec.Status, payload, rec.Version).Scan(
		&rec.Version,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		// the only way the upsert returns no row is a filtered-out update
		if errors.Is(err, pgx.ErrNoRows) {
			return settlement.Record{}, settlement.ErrVersionConflict
		}
		return settlement.Record{}, err
	}

	return rec, nil
}

// GetByEmployeeID implements settlement.SettlementRepository.
func (r *settlementRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (settlement.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payload, version, created_at, updated_at
		FROM settlements
		WHERE employee_id = $1
	`

	rec, err := scanSettlement(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settlement.Record{}, settlement.ErrSettlementNotFound
		}
		return settlement.Record{}, err
	}
	return rec, nil
}

// List implements settlement.SettlementRepository.
func (r *settlementRepositoryImpl) List(ctx context.Context) ([]settlement.Record, error) {
	return r.list(ctx, `
		SELECT payload, version, created_at, updated_at
		FROM settlements
		ORDER BY updated_at DESC
	`)
}

// ListByStatus implements settlement.SettlementRepository.
func (r *settlementRepositoryImpl) ListByStatus(ctx context.Context, status settlement.Status) ([]settlement.Record, error) {
	return r.list(ctx, `
		SELECT payload, version, created_at, updated_at
		FROM settlements
		WHERE status = $1
		ORDER BY updated_at DESC
	`, status)
}

func (r *settlementRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]settlement.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []settlement.Record
	for rows.Next() {
		rec, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanSettlement(row pgx.Row) (settlement.Record, error) {
	var payload []byte
	var rec settlement.Record

	// version and timestamps come from the columns, not the document
	err := row.Scan(&payload, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return settlement.Record{}, err
	}

	version, createdAt, updatedAt := rec.Version, rec.CreatedAt, rec.UpdatedAt
	if err := json.Unmarshal(payload, &rec); err != nil {
		return settlement.Record{}, fmt.Errorf("failed to unmarshal settlement record: %w", err)
	}
	rec.Version, rec.CreatedAt, rec.UpdatedAt = version, createdAt, updatedAt

	return rec, nil
}
