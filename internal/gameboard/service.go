package gameboard

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/trailmark/trailmark-backend/internal/pkg/events"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"github.com/trailmark/trailmark-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type gameboardService struct {
	db       *gorm.DB
	recorder *events.Recorder
}

// BoardResponse carries the denormalized creator name for board browsing.
type BoardResponse struct {
	model.GameBoard
	CreatorUsername string `json:"creator_username"`
}

func (gs *gameboardService) getBoards(userId uint64) ([]model.GameBoard, *reject.ProblemWithTrace) {
	boards := []model.GameBoard{}
	result := gs.db.
		Model(&model.GameBoard{}).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&boards)

	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return boards, nil
}

// getAllBoards lists every user's boards so paths can be drawn on any of
// them, one page at a time.
func (gs *gameboardService) getAllBoards(page utils.PageRequest) ([]BoardResponse, *int64, *reject.ProblemWithTrace) {
	boards := []BoardResponse{}
	boardCount := int64(0)

	err := gs.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Table("game_board").Count(&boardCount)
		if res.Error != nil {
			return res.Error
		}

		res = tx.Table("game_board").
			Joins("JOIN trailmark_user AS creator ON game_board.user_id = creator.id").
			Select("game_board.*, creator.username AS creator_username").
			Order("game_board.created_at DESC").
			Limit(page.Size).
			Offset(page.Offset).
			Scan(&boards)
		return res.Error
	})

	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return boards, &boardCount, nil
}

func (gs *gameboardService) getBoard(boardId, userId uint64) (*model.GameBoard, *reject.ProblemWithTrace) {
	board, problem := gs.findBoard(gs.db, boardId)
	if problem != nil {
		return nil, problem
	}
	if board.UserId != userId {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NotOwnerProblem(),
			Cause:   errNotOwner,
		}
	}
	return board, nil
}

// saveBoard creates the board or, when a pk is present, replaces the named
// board's contents. Any save invalidates paths drawn on the old grid, so
// they are deleted. Creation appends a newBoard event.
func (gs *gameboardService) saveBoard(request SaveBoardRequest, userId uint64, username string) (*model.GameBoard, *reject.ProblemWithTrace) {
	var saved *model.GameBoard
	var problem *reject.ProblemWithTrace
	created := false

	err := gs.db.Transaction(func(tx *gorm.DB) error {
		var board *model.GameBoard

		if request.Pk != 0 {
			existing, findProblem := gs.findBoard(tx, request.Pk)
			if findProblem != nil {
				problem = findProblem
				return findProblem.Cause
			}
			if existing.UserId != userId {
				problem = &reject.ProblemWithTrace{
					Problem: reject.NotOwnerProblem(),
					Cause:   errNotOwner,
				}
				return errNotOwner
			}
			board = existing
		} else {
			board = &model.GameBoard{UserId: userId}
			created = true
		}

		board.Title = request.Title
		board.Rows = request.Rows
		board.Cols = request.Cols
		board.Dots = request.Dots

		if f := tx.Save(board); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting game board")
			return f.Error
		}

		if f := tx.Where("board_id = ?", board.Id).Delete(&model.Path{}); f.Error != nil {
			return f.Error
		}

		saved = board
		return nil
	})

	if problem != nil {
		return nil, problem
	}
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	if created {
		gs.recorder.Record(events.NewBoardEvent(saved.Id, saved.Title, username))
	}
	return saved, nil
}

// deleteBoard removes the board and cascades to its paths.
func (gs *gameboardService) deleteBoard(boardId, userId uint64) *reject.ProblemWithTrace {
	var problem *reject.ProblemWithTrace

	err := gs.db.Transaction(func(tx *gorm.DB) error {
		board, findProblem := gs.findBoard(tx, boardId)
		if findProblem != nil {
			problem = findProblem
			return findProblem.Cause
		}
		if board.UserId != userId {
			problem = &reject.ProblemWithTrace{
				Problem: reject.NotOwnerProblem(),
				Cause:   errNotOwner,
			}
			return errNotOwner
		}

		if f := tx.Where("board_id = ?", board.Id).Delete(&model.Path{}); f.Error != nil {
			return f.Error
		}
		return tx.Delete(&model.GameBoard{}, board.Id).Error
	})

	if problem != nil {
		return problem
	}
	if err != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return nil
}

// getOrCreatePath returns the caller's path on the board, creating an empty
// one on first entry. Creation appends a newPath event.
func (gs *gameboardService) getOrCreatePath(boardId, userId uint64, username string) (*model.Path, *reject.ProblemWithTrace) {
	var path *model.Path
	var boardTitle string
	var problem *reject.ProblemWithTrace
	created := false

	err := gs.db.Transaction(func(tx *gorm.DB) error {
		board, findProblem := gs.findBoard(tx, boardId)
		if findProblem != nil {
			problem = findProblem
			return findProblem.Cause
		}
		boardTitle = board.Title

		var existing model.Path
		f := tx.Where("board_id = ? AND user_id = ?", board.Id, userId).First(&existing)
		if f.Error == nil {
			path = &existing
			return nil
		}
		if !errors.Is(f.Error, gorm.ErrRecordNotFound) {
			return f.Error
		}

		fresh := model.Path{
			UserId:  userId,
			BoardId: board.Id,
			Cells:   model.GridCellList{},
		}
		if f := tx.Create(&fresh); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting path")
			return f.Error
		}

		path = &fresh
		created = true
		return nil
	})

	if problem != nil {
		return nil, problem
	}
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	if created {
		gs.recorder.Record(events.NewPathEvent(path.Id, path.BoardId, boardTitle, username))
	}
	return path, nil
}

func (gs *gameboardService) getPath(pathId, userId uint64) (*model.Path, *reject.ProblemWithTrace) {
	path, problem := gs.findPath(gs.db, pathId)
	if problem != nil {
		return nil, problem
	}
	if path.UserId != userId {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NotOwnerProblem(),
			Cause:   errNotOwner,
		}
	}
	return path, nil
}

// savePath replaces the path's cells. The board the path belongs to supplies
// the bounds; validation happened in the handler against those bounds.
func (gs *gameboardService) savePath(pathId, userId uint64, cells model.GridCellList) (*model.Path, *reject.ProblemWithTrace) {
	path, problem := gs.getPath(pathId, userId)
	if problem != nil {
		return nil, problem
	}

	path.Cells = cells
	if f := gs.db.Save(path); f.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(f.Error),
			Cause:   f.Error,
		}
	}
	return path, nil
}

// boardOfPath resolves the parent board for bounds validation.
func (gs *gameboardService) boardOfPath(pathId, userId uint64) (*model.GameBoard, *model.Path, *reject.ProblemWithTrace) {
	path, problem := gs.getPath(pathId, userId)
	if problem != nil {
		return nil, nil, problem
	}

	board, problem := gs.findBoard(gs.db, path.BoardId)
	if problem != nil {
		return nil, nil, problem
	}
	return board, path, nil
}

func (gs *gameboardService) findBoard(tx *gorm.DB, boardId uint64) (*model.GameBoard, *reject.ProblemWithTrace) {
	var board model.GameBoard
	result := tx.First(&board, boardId)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NotFoundProblem(),
			Cause:   result.Error,
		}
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return &board, nil
}

func (gs *gameboardService) findPath(tx *gorm.DB, pathId uint64) (*model.Path, *reject.ProblemWithTrace) {
	var path model.Path
	result := tx.First(&path, pathId)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NotFoundProblem(),
			Cause:   result.Error,
		}
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return &path, nil
}

var errNotOwner = errors.New("requester does not own the resource")
