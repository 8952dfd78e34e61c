package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAdminService(t *testing.T) (*adminService, *mocks.MockAdminRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAdminRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewAdminService(repo, logger).(*adminService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestCreateAdmin_Success(t *testing.T) {
	// Подготовка
	svc, repo := newTestAdminService(t)
	ctx := context.Background()
	in := models.AdminCreate{FirstName: "Ana", LastName: "Pop", Email: " Ana@Example.com", Phone: "0712345678"}

	// Ожидания
	repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Admin) error {
			assert.NotEqual(t, uuid.Nil, a.ID)
			assert.Equal(t, "ana@example.com", a.Email)
			assert.Equal(t, fixedNow, a.CreatedAt)
			return nil
		}).
		Times(1)

	// Действие
	admin, err := svc.CreateAdmin(ctx, in)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Ana Pop", admin.FullName())
}

func TestCreateAdmin_ValidationError(t *testing.T) {
	svc, repo := newTestAdminService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreateAdmin(context.Background(), models.AdminCreate{FirstName: "Ana", LastName: "Pop", Email: "nope"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateAdmin_DuplicateEmail(t *testing.T) {
	svc, repo := newTestAdminService(t)
	in := models.AdminCreate{FirstName: "Ana", LastName: "Pop", Email: "ana@example.com", Phone: "+40712345678"}

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("admin with email ana@example.com: %w", ErrAdminExists)).
		Times(1)

	_, err := svc.CreateAdmin(context.Background(), in)

	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestListAdmins(t *testing.T) {
	svc, repo := newTestAdminService(t)
	expected := []models.Admin{{ID: uuid.New(), FirstName: "Ana"}}

	repo.EXPECT().List(gomock.Any()).Return(expected, nil).Times(1)

	admins, err := svc.ListAdmins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, admins)
}

func TestListAdmins_RepositoryError(t *testing.T) {
	svc, repo := newTestAdminService(t)

	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down")).Times(1)

	_, err := svc.ListAdmins(context.Background())
	assert.ErrorContains(t, err, "could not list admins")
}

func TestDeleteAdmin_NotFound(t *testing.T) {
	svc, repo := newTestAdminService(t)
	id := uuid.New()

	repo.EXPECT().
		Delete(gomock.Any(), id).
		Return(fmt.Errorf("admin with id %s: %w", id, ErrAdminNotFound)).
		Times(1)

	err := svc.DeleteAdmin(context.Background(), id)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
