package model

// RoutePoint is one vertex of a route. Order is unique within the parent
// route but gaps are allowed, deleting a point never renumbers the rest.
type RoutePoint struct {
	Id      uint64  `json:"id"`
	RouteId uint64  `json:"-" gorm:"uniqueIndex:ux_route_point_order"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Order   int     `json:"order" gorm:"column:order;uniqueIndex:ux_route_point_order"`
}

func (RoutePoint) TableName() string {
	return "route_point"
}
