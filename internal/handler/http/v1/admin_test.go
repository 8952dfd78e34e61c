package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleAdmin() *models.Admin {
	return &models.Admin{
		ID:        uuid.New(),
		FirstName: "Ana",
		LastName:  "Pop",
		Email:     "ana@example.com",
		Phone:     "+40712345678",
		CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateAdmin_Success(t *testing.T) {
	_, _, mockAdmins, router := newTestHandlers(t)
	expected := sampleAdmin()
	reqBody := CreateAdminRequest{FirstName: "Ana", LastName: "Pop", Email: "ana@example.com", Phone: "+40712345678"}

	mockAdmins.EXPECT().
		CreateAdmin(gomock.Any(), models.AdminCreate{FirstName: "Ana", LastName: "Pop", Email: "ana@example.com", Phone: "+40712345678"}).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/admins", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp AdminResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, expected.ID, resp.ID)
	assert.Equal(t, "ana@example.com", resp.Email)
}

func TestCreateAdmin_Unauthorized(t *testing.T) {
	_, _, mockAdmins, router := newTestHandlers(t)

	mockAdmins.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/admins", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAdmin_InvalidEmail(t *testing.T) {
	_, _, mockAdmins, router := newTestHandlers(t)
	reqBody := CreateAdminRequest{FirstName: "Ana", LastName: "Pop", Email: "not-an-email", Phone: "+40712345678"}

	mockAdmins.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/admins", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Email' failed on the 'email' tag")
}

func TestCreateAdmin_DuplicateEmail(t *testing.T) {
	_, _, mockAdmins, router := newTestHandlers(t)
	reqBody := CreateAdminRequest{FirstName: "Ana", LastName: "Pop", Email: "ana@example.com", Phone: "+40712345678"}

	mockAdmins.EXPECT().
		CreateAdmin(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: could not create admin: %w", service.ErrAdminExists)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/admins", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestListAdmins_Success(t *testing.T) {
	_, _, mockAdmins, router := newTestHandlers(t)
	admin := sampleAdmin()

	mockAdmins.EXPECT().ListAdmins(gomock.Any()).Return([]models.Admin{*admin}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/admins", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []AdminResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, admin.ID, resp[0].ID)
}

func TestListAdmins_ServiceError(t *testing.T) {
	_, _, mockAdmins, router := newTestHandlers(t)

	mockAdmins.EXPECT().ListAdmins(gomock.Any()).Return(nil, errors.New("db down")).Times(1)

	w := makeRequest(router, "GET", "/api/v1/admins", nil, authHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestDeleteAdmin(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		serviceErr error
		callTimes  int
		wantStatus int
	}{
		{"deleted", uuid.NewString(), nil, 1, http.StatusNoContent},
		{"not found", uuid.NewString(), service.ErrAdminNotFound, 1, http.StatusNotFound},
		{"invalid id", "not-a-uuid", nil, 0, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, mockAdmins, router := newTestHandlers(t)

			mockAdmins.EXPECT().DeleteAdmin(gomock.Any(), gomock.Any()).Return(tt.serviceErr).Times(tt.callTimes)

			w := makeRequest(router, "DELETE", "/api/v1/admins/"+tt.id, nil, authHeader)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
