package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
)

const (
	currentUserCtxKey string = "currentUser"
	tokenKeyCtxKey    string = "tokenKey"
)

func SetCurrentUser(user model.User, tokenKey string, ctx *gin.Context) {
	ctx.Set(currentUserCtxKey, user)
	ctx.Set(tokenKeyCtxKey, tokenKey)
}

func GetCurrentUser(ctx *gin.Context) model.User {
	return getCtxValue(currentUserCtxKey, ctx).(model.User)
}

func GetUserId(ctx *gin.Context) uint64 {
	return GetCurrentUser(ctx).Id
}

func GetUsername(ctx *gin.Context) string {
	return GetCurrentUser(ctx).Username
}

// GetTokenKey returns the raw token the request authenticated with.
func GetTokenKey(ctx *gin.Context) string {
	return getCtxValue(tokenKeyCtxKey, ctx).(string)
}

func getCtxValue(key string, ctx *gin.Context) any {
	value, exists := ctx.Get(key)
	if !exists {
		ctx.AbortWithStatus(http.StatusInternalServerError)
	}
	return value
}
