package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Add a notification recipient
// @Description Register an admin who receives email and SMS for every new event. Requires API key.
// @Tags Admins
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param admin body CreateAdminRequest true "Admin creation request"
// @Success 201 {object} AdminResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Admin with this email already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admins [post]
func (h *Handler) createAdmin(c *gin.Context) {
	var input CreateAdminRequest
	log := h.logger.WithField("method", "createAdmin")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), DTOToAdminCreate(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAdminResponse(admin))
}

// @Summary List notification recipients
// @Tags Admins
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AdminResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admins [get]
func (h *Handler) listAdmins(c *gin.Context) {
	log := h.logger.WithField("method", "listAdmins")

	admins, err := h.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAdminResponses(admins))
}

// @Summary Remove a notification recipient
// @Tags Admins
// @Security ApiKeyAuth
// @Param id path string true "Admin ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid admin ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Admin not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admins/{id} [delete]
func (h *Handler) deleteAdmin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid admin ID"})
		return
	}
	log := h.logger.WithField("method", "deleteAdmin").WithField("id", id)

	if err := h.adminService.DeleteAdmin(c.Request.Context(), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
