package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/config"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
	"github.com/healio-platform/healio-api/internal/session"
	"github.com/healio-platform/healio-api/internal/validators"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *session.Store
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions *session.Store) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, sessions: sessions}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=patient therapist"`

	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`

	// Therapist-only
	Specialization string `json:"specialization"`
	CertificateURL string `json:"certificate_url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	settings := loadSettings(h.db)
	if !settings.AllowSelfRegistration {
		httperr.Forbidden(c, "registration_disabled", "Self registration is disabled.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_in_use", "Email already in use.")
		return
	}

	if req.Role == models.RoleTherapist && req.CertificateURL == "" {
		httperr.BadRequest(c, "certificate_required", "Certificate is required for therapists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Age:          req.Age,
		Gender:       req.Gender,
	}

	if req.Role == models.RoleTherapist {
		user.Specialization = req.Specialization
		user.CertificateURL = req.CertificateURL
		user.TherapistStatus = models.TherapistPending
		if settings.AutoApproveTherapists {
			user.TherapistStatus = models.TherapistApproved
		}
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create account.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Registered successfully",
		"id":               user.ID,
		"email":            user.Email,
		"role":             user.Role,
		"name":             user.Name,
		"therapist_status": user.TherapistStatus,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, "")
}

// AdminLogin only accepts admin accounts; the admin console uses a
// separate login page.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, models.RoleAdmin)
}

func (h *AuthHandler) login(c *gin.Context, requiredRole string) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if requiredRole != "" && user.Role != requiredRole {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.SetCookie(middleware.CookieName, token, int(tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

// Logout revokes the current token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)
	exp := c.GetInt64(middleware.ContextTokenExp)

	if jti != "" && exp > 0 {
		ttl := time.Until(time.Unix(exp, 0))
		if err := h.sessions.Revoke(c.Request.Context(), jti, ttl); err != nil {
			httperr.Internal(c, "failed_to_logout", "Could not revoke session.")
			return
		}
	}

	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Unauthorized(c, "invalid_user", "Account no longer exists.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"role":             user.Role,
		"name":             user.Name,
		"age":              user.Age,
		"gender":           user.Gender,
		"specialization":   user.Specialization,
		"therapist_status": user.TherapistStatus,
		"certificate_url":  user.CertificateURL,
		"created_at":       user.CreatedAt,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
