package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trailmark/trailmark-backend/internal/pkg/middleware"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"github.com/trailmark/trailmark-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type authHandler struct {
	authService authService
}

type CredentialsRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Key string `json:"key"`
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := authHandler{
		authService: authService{db: db},
	}

	routes := rg.Group("/auth")
	routes.POST("/register", handler.register)
	routes.POST("/login", handler.login)
	routes.POST("/logout", middleware.VerifyAuthToken(db), handler.logout)
}

func (ah *authHandler) register(c *gin.Context) {
	body := CredentialsRequest{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.FieldErrorsFromBinding(err))
		return
	}

	tokenKey, fieldErrors, err := ah.authService.register(body.Username, body.Password)
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Key: tokenKey})
}

func (ah *authHandler) login(c *gin.Context) {
	body := CredentialsRequest{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.FieldErrorsFromBinding(err))
		return
	}

	tokenKey, fieldErrors, err := ah.authService.login(body.Username, body.Password)
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Key: tokenKey})
}

func (ah *authHandler) logout(c *gin.Context) {
	if err := ah.authService.logout(utils.GetTokenKey(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out."})
}
