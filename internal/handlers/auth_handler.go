package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shaysadin/wedding-seating-api/internal/middleware"
	"github.com/shaysadin/wedding-seating-api/internal/response"
	"github.com/shaysadin/wedding-seating-api/internal/services"
)

// AuthHandler exposes login and registration endpoints
type AuthHandler struct {
	userService *services.UserService
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthHandler(userService *services.UserService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		response.UnauthorizedError(c, "invalid credentials")
		return
	}

	token, err := middleware.IssueToken(u, h.jwtSecret, h.tokenTTL)
	if err != nil {
		response.InternalServerError(c, "failed to issue token")
		return
	}

	response.OK(c, "login successful", gin.H{
		"token": token,
		"user":  u,
	})
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := h.userService.CreateUser(req)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusCreated, "user created", u)
}
