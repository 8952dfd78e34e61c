package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrAdminExists   = errors.New("admin with this email already exists")
)

// AdminRepository определяет контракт для работы с бд администраторов
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	List(ctx context.Context) ([]models.Admin, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminService управляет получателями уведомлений о новых событиях
type AdminService interface {
	CreateAdmin(ctx context.Context, in models.AdminCreate) (*models.Admin, error)
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	repo   AdminRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewAdminService(repo AdminRepository, logger *logrus.Logger) AdminService {
	return &adminService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *adminService) CreateAdmin(ctx context.Context, in models.AdminCreate) (*models.Admin, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	admin := &models.Admin{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("service: could not create admin: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"admin_id": admin.ID, "email": admin.Email}).Info("Admin created")
	return admin, nil
}

func (s *adminService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list admins: %w", err)
	}
	return admins, nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: could not delete admin: %w", err)
	}
	s.logger.WithField("admin_id", id).Info("Admin deleted")
	return nil
}
