package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/config"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/middleware"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/tenant"
	"github.com/vetlinkpe/vetlink-api/internal/token"
	"github.com/vetlinkpe/vetlink-api/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	denylist *token.Denylist
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, denylist *token.Denylist) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, denylist: denylist}
}

// --------- Requests ---------

type StaffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	t := tenant.FromContext(c)

	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	email := validators.Normalize(req.Email)

	var user models.StaffUser
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

	signed, err := token.Issue(h.config.JWTSecret, token.AudienceStaff, user.ID, t.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "No se pudo generar la sesión.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"tenant_id": t.Slug,
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"is_admin":  user.IsAdmin(),
		},
		"token": signed,
		// Mirrored under the legacy field until every admin screen
		// reads the unified one; do not remove without an audit of
		// the consumers.
		"admin_token": signed,
	})
}

// Logout invalidates the presented token server-side, best-effort:
// whatever happens here, the client clears its local session anyway,
// so this never answers an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 {
		raw := authHeader[7:] // strip "Bearer "
		if claims, err := token.Parse(h.config.JWTSecret, raw, token.AudienceStaff); err == nil {
			if err := h.denylist.Revoke(c.Request.Context(), claims); err != nil {
				log.Warn().Err(err).Msg("token revocation failed")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	staffIDVal, exists := c.Get(middleware.ContextStaffID)
	if !exists {
		httperr.Unauthorized(c, "user_not_in_context", "Sesión no válida.")
		return
	}
	staffID := staffIDVal.(uint)

	t := tenant.FromContext(c)

	var user models.StaffUser
	if err := h.db.First(&user, staffID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "No se encontró el usuario de la sesión.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"tenant_id": t.Slug,
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"is_admin":  user.IsAdmin(),
		},
	})
}
