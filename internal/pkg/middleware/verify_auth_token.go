package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"github.com/trailmark/trailmark-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

const (
	accessTokenRequired string = "error.token.required"
	accessTokenInvalid  string = "error.token.invalid"

	tokenScheme = "Token "
)

// VerifyAuthToken authenticates requests carrying "Authorization: Token <key>"
// against the auth_token table and stores the resolved user on the context.
func VerifyAuthToken(db *gorm.DB) gin.HandlerFunc {
	return func(context *gin.Context) {
		authHeader := context.Request.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, tokenScheme) {
			log.Warn().Msg("Token missing: 401")
			context.AbortWithStatusJSON(
				http.StatusUnauthorized,
				reject.NewProblem().
					WithTitle("Missing access token").
					WithStatus(http.StatusUnauthorized).
					WithCode(accessTokenRequired).
					Build())
			return
		}

		tokenKey := strings.TrimSpace(strings.TrimPrefix(authHeader, tokenScheme))
		if tokenKey == "" {
			log.Warn().Msg("Token missing: 401")
			context.AbortWithStatusJSON(
				http.StatusUnauthorized,
				reject.NewProblem().
					WithTitle("Missing access token").
					WithStatus(http.StatusUnauthorized).
					WithCode(accessTokenRequired).
					Build())
			return
		}

		var user model.User
		result := db.
			Model(&model.User{}).
			Where("id = (SELECT user_id FROM auth_token WHERE key = ?)", tokenKey).
			First(&user)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn().Msg("Unknown token: 401")
			context.AbortWithStatusJSON(
				http.StatusUnauthorized,
				reject.NewProblem().
					WithTitle("Cannot verify access token").
					WithStatus(http.StatusUnauthorized).
					WithCode(accessTokenInvalid).
					Build())
			return
		}
		if result.Error != nil {
			context.AbortWithStatusJSON(
				http.StatusInternalServerError,
				reject.UnexpectedProblem(result.Error))
			return
		}

		utils.SetCurrentUser(user, tokenKey, context)
	}
}
