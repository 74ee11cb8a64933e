package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/deal_management/configs"
	"github.com/deal_management/internal/auth"
	"github.com/deal_management/internal/services"
	"github.com/deal_management/pkg/utils"
)

// AuthHandler wraps registration, login and logout.
type AuthHandler struct {
	users services.UserService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(users services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Email           string `json:"email,omitempty"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a regular (non-admin) user. The contact email is optional and used for status notifications.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Registration fields"
// @Success 201 {object} utils.SuccessResponse{data=models.User} "The created user"
// @Failure 400 {object} utils.APIErrorResponse "Invalid fields or password mismatch"
// @Failure 409 {object} utils.APIErrorResponse "Username already taken"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, err := h.users.Register(req.Username, req.Password, req.ConfirmPassword, req.Email)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondValidationError(c, vErr.Error())
		case errors.Is(err, services.ErrPasswordMismatch), errors.Is(err, services.ErrInvalidEmail):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrUsernameTaken):
			utils.RespondConflictError(c, services.ErrUsernameTaken.Error())
		default:
			utils.RespondInternalServerError(c, "Failed to register user", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, user, "Registration successful")
}

// Login godoc
// @Summary Log in
// @Description Verifies the credentials and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse{data=LoginResponse} "Token and user info"
// @Failure 400 {object} utils.APIErrorResponse "Invalid request body"
// @Failure 401 {object} utils.APIErrorResponse "Invalid username or password"
// @Failure 500 {object} utils.APIErrorResponse "Could not generate token"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondUnauthorizedError(c, services.ErrInvalidCredentials.Error())
		} else {
			utils.RespondInternalServerError(c, "Login failed", err.Error())
		}
		return
	}

	contactEmail := ""
	if user.Email != nil {
		contactEmail = *user.Email
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		Email:    contactEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "deal_management",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(configs.AppConfig.JWTSecret))
	if err != nil {
		utils.RespondInternalServerError(c, "Could not generate token", err.Error())
		return
	}

	loginResp := LoginResponse{
		Token: tokenString,
		User: UserInfo{
			Username: user.Username,
			Role:     string(user.Role),
		},
	}
	utils.RespondSuccess(c, http.StatusOK, loginResp, "Login successful")
}

// Logout godoc
// @Summary Log out
// @Description Invalidates the current token by denylisting its JTI until it expires.
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Logged out"
// @Failure 400 {object} utils.APIErrorResponse "JTI or expiry missing from context"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jtiVal, jtiExists := c.Get("jti")
	expVal, expExists := c.Get("exp")

	if !jtiExists || !expExists {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: JTI or EXP not found in context", nil)
		return
	}

	jti, okJTI := jtiVal.(string)
	exp, okEXP := expVal.(time.Time)

	if !okJTI || jti == "" {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid JTI", nil)
		return
	}
	if !okEXP {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid EXP", nil)
		return
	}

	auth.AddToDenylist(jti, exp)
	utils.RespondSuccess(c, http.StatusOK, nil, "Logged out successfully")
}
