package background

import (
	"github.com/rs/zerolog/log"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"gorm.io/gorm"
)

type backgroundService struct {
	db *gorm.DB
}

func (bs *backgroundService) getBackgrounds() ([]model.BackgroundImage, *reject.ProblemWithTrace) {
	backgrounds := []model.BackgroundImage{}
	result := bs.db.Find(&backgrounds)

	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return backgrounds, nil
}

func (bs *backgroundService) createBackground(name, imagePath string) (*model.BackgroundImage, *reject.ProblemWithTrace) {
	background := model.BackgroundImage{Name: name, Image: imagePath}

	if f := bs.db.Create(&background); f.Error != nil {
		log.Warn().Err(f.Error).Msg("error persisting background image")
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(f.Error),
			Cause:   f.Error,
		}
	}
	return &background, nil
}
