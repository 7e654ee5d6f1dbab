package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	dbpkg "github.com/vetlinkpe/vetlink-api/internal/db"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
	"github.com/vetlinkpe/vetlink-api/internal/validators"
)

// StaffHandler lives under /tenants/:tenantRef with a numeric id,
// unlike the slug-addressed profile update. The mismatch predates this
// service and the admin console depends on it.
type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, audit *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleDoctor, models.RoleReceptionist:
		return true
	}
	return false
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	role := strings.TrimSpace(c.Query("role"))
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	q := h.db.Where("tenant_id = ?", t.ID)

	if role != "" && role != "all" {
		q = q.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var staff []models.StaffUser
	if err := q.Order("id ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "No se pudo cargar la lista de personal.")
		return
	}

	users := make([]gin.H, 0, len(staff))
	for _, u := range staff {
		users = append(users, gin.H{
			"id":        u.ID,
			"tenant_id": t.Slug,
			"email":     u.Email,
			"name":      u.Name,
			"role":      u.Role,
			"is_admin":  u.IsAdmin(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *StaffHandler) Create(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	if !validRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "El rol indicado no existe.")
		return
	}

	email := validators.Normalize(req.Email)
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del correo no parece ser válido.")
		return
	}

	var count int64
	h.db.Model(&models.StaffUser{}).
		Where("tenant_id = ? AND email = ?", t.ID, email).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "Ya existe personal con este correo.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error interno al crear el usuario.")
		return
	}

	user := models.StaffUser{
		TenantID:     t.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "Ya existe personal con este correo.")
			return
		}
		httperr.Internal(c, "failed_to_create_staff", "No se pudo crear el usuario.")
		return
	}

	h.dispatch(c, t, "staff_created", user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"id":        user.ID,
		"tenant_id": t.Slug,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"is_admin":  user.IsAdmin(),
	})
}

func (h *StaffHandler) Update(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	user, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = validators.Normalize(*req.Email)
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			httperr.BadRequest(c, "invalid_role", "El rol indicado no existe.")
			return
		}
		user.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Error interno al actualizar el usuario.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "No se pudo guardar el usuario.")
		return
	}

	h.dispatch(c, t, "staff_updated", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"tenant_id": t.Slug,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"is_admin":  user.IsAdmin(),
	})
}

// Delete is the one hard delete in the admin console, and an admin
// cannot remove their own account.
func (h *StaffHandler) Delete(c *gin.Context) {
	t, ok := h.pathTenant(c)
	if !ok {
		return
	}

	user, ok := h.find(c, t.ID)
	if !ok {
		return
	}

	if user.ID == staffID(c) {
		httperr.BadRequest(c, "cannot_delete_self", "No puedes eliminar tu propia cuenta.")
		return
	}

	if err := h.db.Delete(user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_staff", "No se pudo eliminar el usuario.")
		return
	}

	h.dispatch(c, t, "staff_deleted", user.ID)

	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

// pathTenant checks the numeric tenant id in the path against the
// tenant resolved from the host.
func (h *StaffHandler) pathTenant(c *gin.Context) (*models.Tenant, bool) {
	t := tenant.FromContext(c)

	id, err := strconv.ParseUint(c.Param("tenantRef"), 10, 32)
	if err != nil || uint(id) != t.ID {
		httperr.Forbidden(c, "tenant_mismatch", "No puedes administrar otra clínica.")
		return nil, false
	}
	return t, true
}

func (h *StaffHandler) find(c *gin.Context, tenantID uint) (*models.StaffUser, bool) {
	var user models.StaffUser
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "staff_not_found", "Usuario de personal no encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_staff", "No se pudo cargar el usuario.")
		return nil, false
	}
	return &user, true
}

func (h *StaffHandler) dispatch(c *gin.Context, t *models.Tenant, action string, entityID uint) {
	h.audit.Dispatch(audit.Event{
		TenantID: t.ID,
		StaffID:  staffIDPtr(c),
		Action:   action,
		Entity:   "staff",
		EntityID: &entityID,
	})
}
