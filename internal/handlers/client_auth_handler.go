package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/config"
	dbpkg "github.com/vetlinkpe/vetlink-api/internal/db"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/middleware"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
	"github.com/vetlinkpe/vetlink-api/internal/token"
	"github.com/vetlinkpe/vetlink-api/internal/validators"
)

type ClientAuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewClientAuthHandler(db *gorm.DB, cfg *config.Config) *ClientAuthHandler {
	return &ClientAuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type ClientRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ClientLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *ClientAuthHandler) Register(c *gin.Context) {
	t := tenant.FromContext(c)

	var req ClientRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en el registro.")
		return
	}

	email := validators.Normalize(req.Email)

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del correo no parece ser válido.")
		return
	}

	var count int64
	h.db.Model(&models.ClientUser{}).
		Where("tenant_id = ? AND email = ?", t.ID, email).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "Ya existe una cuenta con este correo.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error interno al registrar la cuenta.")
		return
	}

	user := models.ClientUser{
		TenantID:     t.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Address:      req.Address,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "Ya existe una cuenta con este correo.")
			return
		}
		httperr.Internal(c, "failed_to_create_client", "Error interno al registrar la cuenta.")
		return
	}

	// Registration does not log the user in; the storefront sends
	// them to the login form.
	c.JSON(http.StatusCreated, gin.H{"message": "¡Registro exitoso! Ahora puedes iniciar sesión."})
}

func (h *ClientAuthHandler) Login(c *gin.Context) {
	t := tenant.FromContext(c)

	var req ClientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	email := validators.Normalize(req.Email)

	var user models.ClientUser
	if err := h.db.
		Where("tenant_id = ? AND email = ?", t.ID, email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
			return
		}
		httperr.Internal(c, "internal_error", "Error interno al iniciar sesión.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
		return
	}

	signed, err := token.Issue(h.config.JWTSecret, token.AudienceClient, user.ID, t.ID, "client")
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "No se pudo generar la sesión.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  "client",
		},
		"token": signed,
	})
}

func (h *ClientAuthHandler) Me(c *gin.Context) {
	clientIDVal, exists := c.Get(middleware.ContextClientID)
	if !exists {
		httperr.Unauthorized(c, "user_not_in_context", "Sesión no válida.")
		return
	}
	clientID := clientIDVal.(uint)

	var user models.ClientUser
	if err := h.db.First(&user, clientID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "No se encontró el usuario de la sesión.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  "client",
		},
	})
}
