package repository

import (
	"context"
	"fmt"

	"github.com/iIonel/EventReport/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// importBatchSize - сколько INSERT уходит в базу одним батчем
const importBatchSize = 500

// EventImportRepository - массовая запись событий для импорта, без кэша
type EventImportRepository struct {
	db *pgxpool.Pool
}

func NewEventImportRepository(db *pgxpool.Pool) *EventImportRepository {
	return &EventImportRepository{db: db}
}

// CreateBatch вставляет события в одной транзакции. При ошибке не сохраняется ничего.
func (r *EventImportRepository) CreateBatch(ctx context.Context, events []models.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for start := 0; start < len(events); start += importBatchSize {
		end := min(start+importBatchSize, len(events))

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			batch.Queue(insertEventQuery, insertEventArgs(&events[i])...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("failed to insert events %d-%d: %w", start, end-1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return len(events), nil
}

// DeleteAll удаляет все события вместе с их историей уведомлений
func (r *EventImportRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events;`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
