package gameboard

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/trailmark/trailmark-backend/internal/pkg/events"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"github.com/trailmark/trailmark-backend/internal/pkg/testdb"
	"gorm.io/gorm"
)

func boardRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	_, tokenKey := testdb.SeedUser(t, db, "alice")

	router := gin.New()
	RegisterRoutes(router.Group("/api"), db, events.NewRecorder(events.NewLog(), nil, false))
	return router, db, tokenKey
}

func TestListAllBoardsPaginationEnvelope(t *testing.T) {
	router, db, tokenKey := boardRouter(t)

	var user model.User
	db.Where("username = ?", "alice").First(&user)

	service := gameboardService{db: db, recorder: events.NewRecorder(events.NewLog(), nil, false)}
	for _, title := range []string{"One", "Two", "Three"} {
		if _, problem := service.saveBoard(gridRequest(title), user.Id, user.Username); problem != nil {
			t.Fatalf("saveBoard failed: %+v", problem.Problem)
		}
	}

	get := func(target string) string {
		request := httptest.NewRequest("GET", target, nil)
		request.Header.Set("Authorization", "Token "+tokenKey)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		if recorder.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, body %s", target, recorder.Code, recorder.Body.String())
		}
		return recorder.Body.String()
	}

	firstPage := get("/api/gameboards/all?page_size=2")
	if !strings.Contains(firstPage, `"nextPageToken":1`) || !strings.Contains(firstPage, `"itemCount":3`) {
		t.Errorf("first page envelope = %s", firstPage)
	}

	lastPage := get("/api/gameboards/all?page_size=2&page_token=1")
	if strings.Contains(lastPage, "nextPageToken") {
		t.Errorf("last page still advertises a next page: %s", lastPage)
	}
}

func TestSaveBoardMalformedJsonResponse(t *testing.T) {
	router, _, tokenKey := boardRouter(t)

	request := httptest.NewRequest("POST", "/api/gameboards/save", strings.NewReader("{not json"))
	request.Header.Set("Authorization", "Token "+tokenKey)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
	if body := recorder.Body.String(); body != `{"error":"Invalid JSON."}` {
		t.Errorf("body = %s", body)
	}
}

func TestSavePathMalformedJsonResponse(t *testing.T) {
	router, db, tokenKey := boardRouter(t)

	var user model.User
	db.Where("username = ?", "alice").First(&user)

	service := gameboardService{db: db, recorder: events.NewRecorder(events.NewLog(), nil, false)}
	board, problem := service.saveBoard(gridRequest("Grid"), user.Id, user.Username)
	if problem != nil {
		t.Fatalf("saveBoard failed: %+v", problem.Problem)
	}
	path, problem := service.getOrCreatePath(board.Id, user.Id, user.Username)
	if problem != nil {
		t.Fatalf("getOrCreatePath failed: %+v", problem.Problem)
	}

	request := httptest.NewRequest("PUT", "/api/paths/"+strconv.FormatUint(path.Id, 10)+"/save", strings.NewReader("[{not json"))
	request.Header.Set("Authorization", "Token "+tokenKey)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
	if body := recorder.Body.String(); body != `{"error":"Invalid JSON."}` {
		t.Errorf("body = %s", body)
	}
}
