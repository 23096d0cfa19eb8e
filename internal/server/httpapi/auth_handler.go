package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/logging"
	"github.com/spendtrack/spendtrack/internal/server/services"
)

// AuthHandler serves the registration, login, and refresh endpoints.
type AuthHandler struct {
	users  *services.UserService
	logger logging.Logger
}

func NewAuthHandler(users *services.UserService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type registerResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles POST /api/users. The response never echoes the password
// hash or salt.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("invalid request payload"))
		return
	}

	if err := validateRegistration(req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	Expires      time.Time `json:"expires"`
}

// Login handles POST /api/authenticate.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("invalid request payload"))
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, common.NewValidationError("email and password are required"))
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		UserID:       result.UserID,
		Expires:      result.AccessExpires,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/authenticate/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("invalid request payload"))
		return
	}
	if req.RefreshToken == "" {
		respondError(c, common.NewValidationError("refresh token is required"))
		return
	}

	result, err := h.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, refreshResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// respondError maps workflow error codes to HTTP statuses. Only the code and
// its safe message reach the client.
func respondError(c *gin.Context, err error) {
	var wf *common.Error
	if !errors.As(err, &wf) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": common.CodePersistenceFailure, "message": "internal error"},
		})
		return
	}

	status := http.StatusBadRequest
	switch wf.Code {
	case common.CodeEmailAlreadyExists:
		status = http.StatusConflict
	case common.CodeNotFound:
		status = http.StatusNotFound
	case common.CodePersistenceFailure:
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{
		"error": gin.H{"code": wf.Code, "message": wf.Message},
	})
}
