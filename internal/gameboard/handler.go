package gameboard

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trailmark/trailmark-backend/internal/pkg/events"
	"github.com/trailmark/trailmark-backend/internal/pkg/middleware"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"github.com/trailmark/trailmark-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type gameboardHandler struct {
	gameboardService gameboardService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, recorder *events.Recorder) {
	handler := gameboardHandler{
		gameboardService: gameboardService{db: db, recorder: recorder},
	}

	boards := rg.Group("/gameboards", middleware.VerifyAuthToken(db))
	boards.GET("", handler.listBoards)
	boards.GET("/all", handler.listAllBoards)
	boards.POST("/save", handler.saveBoard)
	boards.GET("/:id", handler.boardDetail)
	boards.DELETE("/:id", handler.deleteBoard)
	boards.POST("/:id/path", handler.enterPath)

	paths := rg.Group("/paths", middleware.VerifyAuthToken(db))
	paths.GET("/:id", handler.pathDetail)
	paths.PUT("/:id/save", handler.savePath)
}

func (gh *gameboardHandler) listBoards(c *gin.Context) {
	boards, err := gh.gameboardService.getBoards(utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, boards)
}

func (gh *gameboardHandler) listAllBoards(c *gin.Context) {
	page := utils.NewPageRequest(c)

	boards, boardCount, err := gh.gameboardService.getAllBoards(page)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	response := utils.NewPageResponse[BoardResponse]().
		WithItems(boards).
		WithItemCount(*boardCount)

	if *boardCount > int64((page.Token+1)*page.Size) {
		response.WithNextPageToken(int64(page.Token + 1))
	}

	c.JSON(http.StatusOK, response)
}

func (gh *gameboardHandler) boardDetail(c *gin.Context) {
	boardId, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	board, err := gh.gameboardService.getBoard(boardId, utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, board)
}

func (gh *gameboardHandler) saveBoard(c *gin.Context) {
	var data map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	request, fieldErrors := ParseSaveBoardRequest(data)
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}

	board, err := gh.gameboardService.saveBoard(*request, utils.GetUserId(c), utils.GetUsername(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": board.Id})
}

func (gh *gameboardHandler) deleteBoard(c *gin.Context) {
	boardId, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := gh.gameboardService.deleteBoard(boardId, utils.GetUserId(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusNoContent)
}

func (gh *gameboardHandler) enterPath(c *gin.Context) {
	boardId, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	path, err := gh.gameboardService.getOrCreatePath(boardId, utils.GetUserId(c), utils.GetUsername(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, path)
}

func (gh *gameboardHandler) pathDetail(c *gin.Context) {
	pathId, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	path, err := gh.gameboardService.getPath(pathId, utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, path)
}

func (gh *gameboardHandler) savePath(c *gin.Context) {
	pathId, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	var raw any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	board, _, err := gh.gameboardService.boardOfPath(pathId, utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	cells, fieldErrors := ParseCells(raw, board.Rows, board.Cols)
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}

	path, err := gh.gameboardService.savePath(pathId, utils.GetUserId(c), cells)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": path.BoardId})
}
