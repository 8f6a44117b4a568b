package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

var _ repository.QualityRepository = (*QualityRepo)(nil)

// QualityRepo implementação do porto QualityRepository sobre PostgreSQL.
// O checklist vai como JSONB (map item -> aprovado).
type QualityRepo struct {
	q Querier
}

// NewQualityRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewQualityRepository(q Querier) *QualityRepo {
	return &QualityRepo{q: q}
}

// Create persiste um registro de inspeção (append-only).
func (r *QualityRepo) Create(ctx context.Context, record *entity.QualityRecord) error {
	checklist, err := json.Marshal(record.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	query := `
		INSERT INTO quality_records (id, order_id, operator_id, checklist, tracking_code, carrier, approved, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		record.ID, record.OrderID, record.OperatorID, checklist,
		record.TrackingCode, record.Carrier, record.Approved, record.Notes, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quality record: %w", err)
	}
	return nil
}

// ListByOrder registros de inspeção do pedido, do mais recente ao mais antigo.
func (r *QualityRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.QualityRecord, error) {
	query := `
		SELECT id, order_id, operator_id, checklist, tracking_code, carrier, approved, notes, created_at
		FROM quality_records WHERE order_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list quality records: %w", err)
	}
	defer rows.Close()

	var records []*entity.QualityRecord
	for rows.Next() {
		rec, err := scanQualityRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestByOrder registro mais recente do pedido. (nil, nil) se nunca inspecionado.
func (r *QualityRepo) LatestByOrder(ctx context.Context, orderID string) (*entity.QualityRecord, error) {
	query := `
		SELECT id, order_id, operator_id, checklist, tracking_code, carrier, approved, notes, created_at
		FROM quality_records WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`
	rec, err := scanQualityRecord(r.q.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest quality record: %w", err)
	}
	return rec, nil
}

func scanQualityRecord(row pgx.Row) (*entity.QualityRecord, error) {
	var rec entity.QualityRecord
	var checklist []byte
	err := row.Scan(&rec.ID, &rec.OrderID, &rec.OperatorID, &checklist,
		&rec.TrackingCode, &rec.Carrier, &rec.Approved, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(checklist, &rec.Checklist); err != nil {
		return nil, fmt.Errorf("unmarshal checklist: %w", err)
	}
	return &rec, nil
}
