package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
	"github.com/vetlinkpe/vetlink-api/internal/timezone"
)

// AppointmentHandler takes appointment requests from the public site.
// They are leads for the front desk, not bookings: staff call back to
// confirm, so the create endpoint needs no session.
type AppointmentHandler struct {
	db *gorm.DB
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{db: db}
}

// --------- Requests ---------

type AppointmentRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	PetName string `json:"pet_name"`
	Service string `json:"service"`
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	Time    string `json:"time"`                    // HH:mm
	Notes   string `json:"notes"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	t := tenant.FromContext(c)

	var req AppointmentRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	loc := timezone.Location(t.Timezone)
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "La fecha indicada no es válida.")
		return
	}

	now := timezone.NowIn(t.Timezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if date.Before(today) {
		httperr.BadRequest(c, "date_in_past", "La fecha de la cita ya pasó.")
		return
	}

	appt := models.AppointmentRequest{
		TenantID: t.ID,
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.TrimSpace(req.Email),
		PetName:  strings.TrimSpace(req.PetName),
		Service:  req.Service,
		Date:     req.Date,
		Time:     req.Time,
		Notes:    req.Notes,
		Status:   "new",
	}

	if err := h.db.Create(&appt).Error; err != nil {
		httperr.Internal(c, "failed_to_create_appointment", "No se pudo registrar la solicitud de cita.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      appt.ID,
		"message": "Recibimos tu solicitud. Te llamaremos para confirmar la cita.",
	})
}

func (h *AppointmentHandler) AdminList(c *gin.Context) {
	t := tenant.FromContext(c)

	q := h.db.Where("tenant_id = ?", t.ID)

	if status := strings.TrimSpace(c.Query("status")); status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	var appointments []models.AppointmentRequest
	if err := q.Order("created_at DESC").Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "No se pudieron cargar las solicitudes de cita.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}
