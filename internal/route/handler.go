package route

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trailmark/trailmark-backend/internal/pkg/middleware"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"github.com/trailmark/trailmark-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type routeHandler struct {
	routeService routeService
}

type RouteRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Background uint64 `json:"background" binding:"required"`
}

type PointRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

type UpdatePointRequest struct {
	X     *float64 `json:"x" binding:"required"`
	Y     *float64 `json:"y" binding:"required"`
	Order *int     `json:"order" binding:"required,gte=0"`
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := routeHandler{
		routeService: routeService{db: db},
	}

	routes := rg.Group("/routes", middleware.VerifyAuthToken(db))
	routes.GET("", handler.listRoutes)
	routes.POST("", handler.createRoute)
	routes.GET("/:id", handler.routeDetail)
	routes.PUT("/:id", handler.updateRoute)
	routes.DELETE("/:id", handler.deleteRoute)

	routes.GET("/:id/points", handler.listPoints)
	routes.POST("/:id/points", handler.addPoint)
	routes.PUT("/:id/points/:pointId", handler.updatePoint)
	routes.DELETE("/:id/points/:pointId", handler.deletePoint)
}

func (rh *routeHandler) listRoutes(c *gin.Context) {
	routes, err := rh.routeService.getRoutes(utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, routes)
}

func (rh *routeHandler) createRoute(c *gin.Context) {
	body := RouteRequest{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.FieldErrorsFromBinding(err))
		return
	}

	route, fieldErrors, err := rh.routeService.createRoute(body.Name, body.Background, utils.GetUserId(c))
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, route)
}

func (rh *routeHandler) routeDetail(c *gin.Context) {
	routeId, parseErr := parseId(c, "id")
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	route, err := rh.routeService.getRoute(routeId, utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, route)
}

func (rh *routeHandler) updateRoute(c *gin.Context) {
	routeId, parseErr := parseId(c, "id")
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := RouteRequest{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.FieldErrorsFromBinding(err))
		return
	}

	route, fieldErrors, err := rh.routeService.updateRoute(routeId, utils.GetUserId(c), body.Name, body.Background)
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, route)
}

func (rh *routeHandler) deleteRoute(c *gin.Context) {
	routeId, parseErr := parseId(c, "id")
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := rh.routeService.deleteRoute(routeId, utils.GetUserId(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusNoContent)
}

func (rh *routeHandler) listPoints(c *gin.Context) {
	routeId, parseErr := parseId(c, "id")
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	points, err := rh.routeService.getPoints(routeId, utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, points)
}

func (rh *routeHandler) addPoint(c *gin.Context) {
	routeId, parseErr := parseId(c, "id")
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := PointRequest{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.FieldErrorsFromBinding(err))
		return
	}

	point, fieldErrors, err := rh.routeService.addPoint(routeId, utils.GetUserId(c), *body.X, *body.Y)
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, point)
}

func (rh *routeHandler) updatePoint(c *gin.Context) {
	routeId, routeErr := parseId(c, "id")
	pointId, pointErr := parseId(c, "pointId")
	if routeErr != nil || pointErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := UpdatePointRequest{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.FieldErrorsFromBinding(err))
		return
	}

	point, fieldErrors, err := rh.routeService.updatePoint(routeId, pointId, utils.GetUserId(c), *body.X, *body.Y, *body.Order)
	if !fieldErrors.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, point)
}

func (rh *routeHandler) deletePoint(c *gin.Context) {
	routeId, routeErr := parseId(c, "id")
	pointId, pointErr := parseId(c, "pointId")
	if routeErr != nil || pointErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := rh.routeService.deletePoint(routeId, pointId, utils.GetUserId(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseId(c *gin.Context, param string) (uint64, error) {
	return strconv.ParseUint(c.Param(param), 10, 64)
}
