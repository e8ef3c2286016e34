package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/crowd_safety_system/internal/models"
)

// Store определяет контракт долговременного хранилища завершенных
// инцидентов. Запись идет только из асинхронного архиватора, путь
// сопоставления никогда не ждет этой записи.
type Store interface {
	InsertIncident(ctx context.Context, inc models.Incident) error
}

// PostgresStore - реализация Store поверх пула pgx.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore создает хранилище архива.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// InsertIncident сохраняет завершенный инцидент вместе со списком
// назначений. Повторная вставка того же id игнорируется.
func (s *PostgresStore) InsertIncident(ctx context.Context, inc models.Incident) error {
	assignments, err := json.Marshal(inc.Assignments)
	if err != nil {
		return fmt.Errorf("failed to marshal assignments: %w", err)
	}

	query := `
		INSERT INTO archived_incidents
			(id, type, zone_id, severity, status, description, reported_at, resolved_at, assignments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING;
	`
	if _, err := s.db.Exec(ctx, query,
		inc.ID,
		inc.Type,
		inc.ZoneID,
		inc.Severity,
		inc.Status,
		inc.Description,
		inc.ReportedAt,
		inc.ResolvedAt,
		assignments,
	); err != nil {
		return fmt.Errorf("failed to archive incident: %w", err)
	}
	return nil
}
