package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/internal/service"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create добавляет получателя уведомлений, email уникален
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, first_name, last_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.FirstName,
		admin.LastName,
		admin.Email,
		admin.Phone,
		admin.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("admin with email %s: %w", admin.Email, service.ErrAdminExists)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, created_at
		FROM admins ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	admins := make([]models.Admin, 0)
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admins: %w", err)
	}
	return admins, nil
}

// ListAdmins отдает всех получателей воркеру уведомлений
func (r *AdminRepository) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	return r.List(ctx)
}

func (r *AdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("admin with id %s: %w", id, service.ErrAdminNotFound)
	}
	return nil
}
