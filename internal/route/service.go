package route

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"gorm.io/gorm"
)

type routeService struct {
	db *gorm.DB
}

// RouteResponse embeds the route's points ordered by their order key.
type RouteResponse struct {
	model.Route
	BackgroundImage string             `json:"background_image"`
	Points          []model.RoutePoint `json:"points"`
}

func (rs *routeService) getRoutes(userId uint64) ([]RouteResponse, *reject.ProblemWithTrace) {
	var routes []model.Route
	result := rs.db.
		Model(&model.Route{}).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&routes)

	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	responses := make([]RouteResponse, 0, len(routes))
	for _, route := range routes {
		response, err := rs.toResponse(rs.db, route)
		if err != nil {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.UnexpectedProblem(err),
				Cause:   err,
			}
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (rs *routeService) getRoute(routeId, userId uint64) (*RouteResponse, *reject.ProblemWithTrace) {
	route, problem := rs.findOwnedRoute(rs.db, routeId, userId)
	if problem != nil {
		return nil, problem
	}

	response, err := rs.toResponse(rs.db, *route)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return response, nil
}

func (rs *routeService) createRoute(name string, backgroundId, userId uint64) (*RouteResponse, reject.FieldErrors, *reject.ProblemWithTrace) {
	var created *RouteResponse

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		background, backgroundErr := rs.findBackground(tx, backgroundId)
		if backgroundErr != nil {
			return backgroundErr
		}

		route := model.Route{
			Name:         name,
			UserId:       userId,
			BackgroundId: background.Id,
		}
		if f := tx.Create(&route); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting route")
			return f.Error
		}

		created = &RouteResponse{
			Route:           route,
			BackgroundImage: background.Image,
			Points:          []model.RoutePoint{},
		}
		return nil
	})

	if errors.Is(err, errUnknownBackground) {
		fieldErrors := reject.FieldErrors{}
		fieldErrors.Add("background", "Invalid background image.")
		return nil, fieldErrors, nil
	}
	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return created, nil, nil
}

func (rs *routeService) updateRoute(routeId, userId uint64, name string, backgroundId uint64) (*RouteResponse, reject.FieldErrors, *reject.ProblemWithTrace) {
	var updated *RouteResponse
	var problem *reject.ProblemWithTrace

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		route, findProblem := rs.findOwnedRoute(tx, routeId, userId)
		if findProblem != nil {
			problem = findProblem
			return findProblem.Cause
		}

		background, backgroundErr := rs.findBackground(tx, backgroundId)
		if backgroundErr != nil {
			return backgroundErr
		}

		route.Name = name
		route.BackgroundId = background.Id
		if f := tx.Save(route); f.Error != nil {
			return f.Error
		}

		response, toErr := rs.toResponse(tx, *route)
		if toErr != nil {
			return toErr
		}
		response.BackgroundImage = background.Image
		updated = response
		return nil
	})

	if problem != nil {
		return nil, nil, problem
	}
	if errors.Is(err, errUnknownBackground) {
		fieldErrors := reject.FieldErrors{}
		fieldErrors.Add("background", "Invalid background image.")
		return nil, fieldErrors, nil
	}
	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return updated, nil, nil
}

// deleteRoute removes the route and cascades to its points.
func (rs *routeService) deleteRoute(routeId, userId uint64) *reject.ProblemWithTrace {
	var problem *reject.ProblemWithTrace

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		route, findProblem := rs.findOwnedRoute(tx, routeId, userId)
		if findProblem != nil {
			problem = findProblem
			return findProblem.Cause
		}

		if f := tx.Where("route_id = ?", route.Id).Delete(&model.RoutePoint{}); f.Error != nil {
			return f.Error
		}
		if f := tx.Delete(&model.Route{}, route.Id); f.Error != nil {
			return f.Error
		}
		return nil
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

func (rs *routeService) getPoints(routeId, userId uint64) ([]model.RoutePoint, *reject.ProblemWithTrace) {
	route, problem := rs.findOwnedRoute(rs.db, routeId, userId)
	if problem != nil {
		return nil, problem
	}

	points, err := rs.pointsOf(rs.db, route.Id)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return points, nil
}

// addPoint validates the coordinates, rejects duplicates and assigns the
// next order key: max of the existing orders plus one, zero on an empty
// route. Existing gaps are never filled.
func (rs *routeService) addPoint(routeId, userId uint64, x, y float64) (*model.RoutePoint, reject.FieldErrors, *reject.ProblemWithTrace) {
	if fieldErrors := validateCoordinates(x, y); !fieldErrors.Empty() {
		return nil, fieldErrors, nil
	}

	var created *model.RoutePoint
	var problem *reject.ProblemWithTrace
	fieldErrors := reject.FieldErrors{}

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		route, findProblem := rs.findOwnedRoute(tx, routeId, userId)
		if findProblem != nil {
			problem = findProblem
			return findProblem.Cause
		}

		var duplicates int64
		f := tx.Model(&model.RoutePoint{}).
			Where("route_id = ? AND x = ? AND y = ?", route.Id, x, y).
			Count(&duplicates)
		if f.Error != nil {
			return f.Error
		}
		if duplicates > 0 {
			fieldErrors.Add("non_field_errors", "Point with these coordinates already exists on this route.")
			return errDuplicateCoordinate
		}

		var nextOrder int
		f = tx.Raw(`SELECT COALESCE(MAX("order") + 1, 0) FROM route_point WHERE route_id = ?`, route.Id).
			Scan(&nextOrder)
		if f.Error != nil {
			return f.Error
		}

		point := model.RoutePoint{RouteId: route.Id, X: x, Y: y, Order: nextOrder}
		if f := tx.Create(&point); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting route point")
			return f.Error
		}

		created = &point
		return nil
	})

	if problem != nil {
		return nil, nil, problem
	}
	if errors.Is(err, errDuplicateCoordinate) {
		return nil, fieldErrors, nil
	}
	if isUniqueViolation(err) {
		fieldErrors.Add("order", "Point with this order already exists on this route.")
		return nil, fieldErrors, nil
	}
	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return created, nil, nil
}

func (rs *routeService) updatePoint(routeId, pointId, userId uint64, x, y float64, order int) (*model.RoutePoint, reject.FieldErrors, *reject.ProblemWithTrace) {
	if fieldErrors := validateCoordinates(x, y); !fieldErrors.Empty() {
		return nil, fieldErrors, nil
	}

	var updated *model.RoutePoint
	var problem *reject.ProblemWithTrace

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		route, findProblem := rs.findOwnedRoute(tx, routeId, userId)
		if findProblem != nil {
			problem = findProblem
			return findProblem.Cause
		}

		var point model.RoutePoint
		f := tx.Where("route_id = ?", route.Id).First(&point, pointId)
		if errors.Is(f.Error, gorm.ErrRecordNotFound) {
			problem = &reject.ProblemWithTrace{Problem: reject.NotFoundProblem(), Cause: f.Error}
			return f.Error
		}
		if f.Error != nil {
			return f.Error
		}

		point.X = x
		point.Y = y
		point.Order = order
		if f := tx.Save(&point); f.Error != nil {
			return f.Error
		}

		updated = &point
		return nil
	})

	if problem != nil {
		return nil, nil, problem
	}
	if isUniqueViolation(err) {
		fieldErrors := reject.FieldErrors{}
		fieldErrors.Add("order", "Point with this order already exists on this route.")
		return nil, fieldErrors, nil
	}
	if err != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return updated, nil, nil
}

// deletePoint removes the point without renumbering its siblings.
func (rs *routeService) deletePoint(routeId, pointId, userId uint64) *reject.ProblemWithTrace {
	var problem *reject.ProblemWithTrace

	err := rs.db.Transaction(func(tx *gorm.DB) error {
		route, findProblem := rs.findOwnedRoute(tx, routeId, userId)
		if findProblem != nil {
			problem = findProblem
			return findProblem.Cause
		}

		var point model.RoutePoint
		f := tx.Where("route_id = ?", route.Id).First(&point, pointId)
		if errors.Is(f.Error, gorm.ErrRecordNotFound) {
			problem = &reject.ProblemWithTrace{Problem: reject.NotFoundProblem(), Cause: f.Error}
			return f.Error
		}
		if f.Error != nil {
			return f.Error
		}

		return tx.Delete(&model.RoutePoint{}, point.Id).Error
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

// findOwnedRoute resolves the route or rejects with 404 for an unknown id
// and 403 when the requester is not the owner.
func (rs *routeService) findOwnedRoute(tx *gorm.DB, routeId, userId uint64) (*model.Route, *reject.ProblemWithTrace) {
	var route model.Route
	result := tx.First(&route, routeId)

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
	if route.UserId != userId {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NotOwnerProblem(),
			Cause:   errNotOwner,
		}
	}
	return &route, nil
}

func (rs *routeService) findBackground(tx *gorm.DB, backgroundId uint64) (*model.BackgroundImage, error) {
	var background model.BackgroundImage
	result := tx.First(&background, backgroundId)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errUnknownBackground
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &background, nil
}

func (rs *routeService) pointsOf(tx *gorm.DB, routeId uint64) ([]model.RoutePoint, error) {
	points := []model.RoutePoint{}
	result := tx.
		Model(&model.RoutePoint{}).
		Where("route_id = ?", routeId).
		Order(`"order"`).
		Find(&points)
	return points, result.Error
}

func (rs *routeService) toResponse(tx *gorm.DB, route model.Route) (*RouteResponse, error) {
	points, err := rs.pointsOf(tx, route.Id)
	if err != nil {
		return nil, err
	}

	var background model.BackgroundImage
	if f := tx.First(&background, route.BackgroundId); f.Error != nil {
		return nil, f.Error
	}

	return &RouteResponse{
		Route:           route,
		BackgroundImage: background.Image,
		Points:          points,
	}, nil
}

func validateCoordinates(x, y float64) reject.FieldErrors {
	fieldErrors := reject.FieldErrors{}
	if x < 0 || x > 100 {
		fieldErrors.Add("x", "X coordinate must be between 0 and 100.")
	}
	if y < 0 || y > 100 {
		fieldErrors.Add("y", "Y coordinate must be between 0 and 100.")
	}
	return fieldErrors
}

// isUniqueViolation matches the duplicate-key wording of both the postgres
// driver and sqlite so the (route, order) index failure maps to 400
// instead of leaking as a 500.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	return strings.Contains(message, "duplicate key value") ||
		strings.Contains(message, "UNIQUE constraint failed")
}

var (
	errNotOwner            = errors.New("requester does not own the route")
	errUnknownBackground   = errors.New("background image does not exist")
	errDuplicateCoordinate = errors.New("duplicate coordinates on route")
)
