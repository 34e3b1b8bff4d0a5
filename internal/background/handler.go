package background

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/trailmark/trailmark-backend/internal/pkg/middleware"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"gorm.io/gorm"
)

type backgroundHandler struct {
	backgroundService backgroundService
	mediaDir          string
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	mediaDir := viper.GetString("MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = "./media"
	}

	handler := backgroundHandler{
		backgroundService: backgroundService{db: db},
		mediaDir:          mediaDir,
	}

	routes := rg.Group("/backgrounds", middleware.VerifyAuthToken(db))
	routes.GET("", handler.listBackgrounds)
	routes.POST("", handler.uploadBackground)
}

func (bh *backgroundHandler) listBackgrounds(c *gin.Context) {
	backgrounds, err := bh.backgroundService.getBackgrounds()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, backgrounds)
}

func (bh *backgroundHandler) uploadBackground(c *gin.Context) {
	name := c.PostForm("name")
	file, fileErr := c.FormFile("image")

	fieldErrors := reject.FieldErrors{}
	if name == "" {
		fieldErrors.Add("name", "This field is required.")
	}
	if fileErr != nil {
		fieldErrors.Add("image", "This field is required.")
	}
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}

	relativePath := filepath.Join("backgrounds", uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(bh.mediaDir, relativePath)); err != nil {
		log.Warn().Err(err).Msg("error storing background image file")
		c.JSON(http.StatusInternalServerError, reject.UnexpectedProblem(err))
		return
	}

	background, err := bh.backgroundService.createBackground(name, relativePath)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, background)
}
