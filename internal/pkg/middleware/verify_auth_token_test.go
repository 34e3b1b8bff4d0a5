package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/trailmark/trailmark-backend/internal/pkg/testdb"
	"github.com/trailmark/trailmark-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

func authRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", VerifyAuthToken(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": utils.GetUsername(c)})
	})
	return router
}

func TestVerifyAuthTokenRejectsMissingHeader(t *testing.T) {
	router := authRouter(testdb.Open(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/whoami", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestVerifyAuthTokenRejectsWrongScheme(t *testing.T) {
	db := testdb.Open(t)
	_, tokenKey := testdb.SeedUser(t, db, "alice")
	router := authRouter(db)

	request := httptest.NewRequest("GET", "/whoami", nil)
	request.Header.Set("Authorization", "Bearer "+tokenKey)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestVerifyAuthTokenRejectsUnknownToken(t *testing.T) {
	db := testdb.Open(t)
	testdb.SeedUser(t, db, "alice")
	router := authRouter(db)

	request := httptest.NewRequest("GET", "/whoami", nil)
	request.Header.Set("Authorization", "Token not-a-real-key")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestVerifyAuthTokenStorageFailureIsNotUnauthorized(t *testing.T) {
	db := testdb.Open(t)
	_, tokenKey := testdb.SeedUser(t, db, "alice")
	router := authRouter(db)

	if f := db.Exec("DROP TABLE auth_token"); f.Error != nil {
		t.Fatalf("dropping token table: %v", f.Error)
	}

	request := httptest.NewRequest("GET", "/whoami", nil)
	request.Header.Set("Authorization", "Token "+tokenKey)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", recorder.Code)
	}
}

func TestVerifyAuthTokenResolvesUser(t *testing.T) {
	db := testdb.Open(t)
	_, tokenKey := testdb.SeedUser(t, db, "alice")
	router := authRouter(db)

	request := httptest.NewRequest("GET", "/whoami", nil)
	request.Header.Set("Authorization", "Token "+tokenKey)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}
	if body := recorder.Body.String(); body != `{"username":"alice"}` {
		t.Errorf("body = %s", body)
	}
}
