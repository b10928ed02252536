package component

import "image/color"

type Shape int

const (
	ShapeDisc Shape = iota
	ShapeShip
	ShapePoint
	ShapePing
)

// DrawBody tells the renderer how to draw an entity.
type DrawBody struct {
	Shape  Shape
	Color  color.RGBA
	Radius float64
}

var DrawBodyComponent = NewComponent[DrawBody]()
