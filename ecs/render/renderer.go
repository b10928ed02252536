package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/protofarer/aion/common"
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
)

const (
	shipNoseFactor = 1.0
	shipWingAngle  = 2.5
	pointSize      = 2
)

var (
	colliderColor = color.RGBA{R: 255, G: 0, B: 255, A: 200}
	headingColor  = color.RGBA{R: 255, G: 255, B: 0, A: 200}
	backdrop      = color.RGBA{R: 0x0b, G: 0x0d, B: 0x17, A: 0xff}
)

// Renderer draws every entity that has a Transform and a DrawBody.
type Renderer struct {
	Debug     bool
	Colliders bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(backdrop)

	entities := ecs.NewQuery(w, component.TransformComponent.Kind(), component.DrawBodyComponent.Kind()).Entities()
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })

	for _, e := range entities {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.DrawBodyComponent.Kind())
		switch body.Shape {
		case component.ShapeDisc:
			drawDisc(screen, tr, body)
		case component.ShapeShip:
			drawShip(screen, tr, body)
		case component.ShapePoint:
			drawPoint(screen, tr, body)
		case component.ShapePing:
			anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
			drawPing(screen, tr, body, anim)
		}
	}

	if r.Colliders {
		drawColliders(w, screen)
	}
}

// DrawDebug prints frame rates, the entity count and any extra lines in the
// top-left corner.
func (r *Renderer) DrawDebug(w *ecs.World, screen *ebiten.Image, extra ...string) {
	if r == nil || !r.Debug || screen == nil {
		return
	}
	text := fmt.Sprintf("FPS: %.1f  TPS: %.1f  entities: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), ecs.Count(w))
	for _, line := range extra {
		text += "\n" + line
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func drawDisc(screen *ebiten.Image, tr *component.Transform, body *component.DrawBody) {
	radius := float32(body.Radius * scaleOf(tr))
	vector.FillCircle(screen, float32(tr.Position.X), float32(tr.Position.Y), radius, body.Color, true)
}

func drawShip(screen *ebiten.Image, tr *component.Transform, body *component.DrawBody) {
	pts := ShipOutline(tr.Position, tr.Heading, body.Radius*scaleOf(tr))
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, body.Color, true)
	}
}

func drawPoint(screen *ebiten.Image, tr *component.Transform, body *component.DrawBody) {
	vector.FillRect(screen, float32(tr.Position.X), float32(tr.Position.Y), pointSize, pointSize, body.Color, false)
}

func drawPing(screen *ebiten.Image, tr *component.Transform, body *component.DrawBody, anim *component.Animation) {
	radius := PingRadius(body.Radius, anim)
	if radius <= 0 {
		return
	}
	vector.StrokeCircle(screen, float32(tr.Position.X), float32(tr.Position.Y), float32(radius), 1, body.Color, true)
}

func drawColliders(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.CircleColliderComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cc *component.CircleCollider, tr *component.Transform) {
		x, y := float32(tr.Position.X), float32(tr.Position.Y)
		vector.StrokeCircle(screen, x, y, float32(cc.Radius), 1, colliderColor, true)
		nose := tr.Position.Add(cp.ForAngle(tr.Heading).Mult(cc.Radius))
		vector.StrokeLine(screen, x, y, float32(nose.X), float32(nose.Y), 1, headingColor, true)
	})
	ecs.ForEach2(w, component.ParticleColliderComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.ParticleCollider, tr *component.Transform) {
		vector.StrokeRect(screen, float32(tr.Position.X)-1, float32(tr.Position.Y)-1, pointSize+2, pointSize+2, 1, colliderColor, false)
	})
}

// ShipOutline returns the nose and two wing tips of a ship of the given
// radius pointing along heading.
func ShipOutline(pos cp.Vector, heading, radius float64) [3]cp.Vector {
	return [3]cp.Vector{
		pos.Add(cp.ForAngle(heading).Mult(radius * shipNoseFactor)),
		pos.Add(cp.ForAngle(heading + shipWingAngle).Mult(radius)),
		pos.Add(cp.ForAngle(heading - shipWingAngle).Mult(radius)),
	}
}

// PingRadius grows a ping ring from zero to max over its frames.
func PingRadius(full float64, anim *component.Animation) float64 {
	if anim == nil || anim.FrameCount <= 0 || anim.FrameDuration <= 0 {
		return full
	}
	progress := (float64(anim.Current) + anim.Elapsed/anim.FrameDuration) / float64(anim.FrameCount)
	return common.Lerp(0, full, math.Min(1, math.Max(0, progress)))
}

func scaleOf(tr *component.Transform) float64 {
	if tr.Scale == 0 {
		return 1
	}
	return tr.Scale
}
