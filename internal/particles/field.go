// Package particles renders a drifting particle band with braille dots.
package particles

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/olivier-w/folio/internal/util"
)

// FPS is the rate Update is expected to be called at.
const FPS = 15

// arrival is the distance in unit space at which a particle picks a new
// wander target.
const arrival = 0.02

// Braille dot positions (col, row) -> bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Spring tuning shared by every particle: a slow, slightly bouncy drift.
const (
	frequency = 1.2
	damping   = 0.6
)

type particle struct {
	x, y   float64
	vx, vy float64
	tx, ty float64
}

// Field is a set of particles wandering inside the unit square.
type Field struct {
	rng       *rand.Rand
	spring    harmonica.Spring
	particles []particle
	output    string
}

// NewField places count particles at random positions. The same seed always
// produces the same motion.
func NewField(count int, seed uint64) *Field {
	f := &Field{
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		spring:    harmonica.NewSpring(harmonica.FPS(FPS), frequency, damping),
		particles: make([]particle, max(0, count)),
	}
	for i := range f.particles {
		p := &f.particles[i]
		p.x, p.y = f.rng.Float64(), f.rng.Float64()
		p.tx, p.ty = f.rng.Float64(), f.rng.Float64()
	}
	return f
}

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.particles) }

// Position returns particle i's position in the unit square.
func (f *Field) Position(i int) (x, y float64) {
	return f.particles[i].x, f.particles[i].y
}

// Update advances every particle by one frame and redraws the band at the
// given size in cells.
func (f *Field) Update(width, height int) {
	for i := range f.particles {
		p := &f.particles[i]
		p.x, p.vx = f.spring.Update(p.x, p.vx, p.tx)
		p.y, p.vy = f.spring.Update(p.y, p.vy, p.ty)
		if math.Hypot(p.tx-p.x, p.ty-p.y) < arrival {
			p.tx, p.ty = f.rng.Float64(), f.rng.Float64()
		}
	}
	f.output = f.render(width, height)
}

// View returns the last rendered band.
func (f *Field) View() string {
	return f.output
}

func (f *Field) render(width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	dotCols := width * 2
	dotRows := height * 4
	grid := make([]uint, width*height)
	for _, p := range f.particles {
		dc := int(util.Clamp01(p.x) * float64(dotCols-1))
		dr := int(util.Clamp01(p.y) * float64(dotRows-1))
		grid[(dr/4)*width+dc/2] |= 1 << brailleBits[dc%2][dr%4]
	}

	rows := make([]string, height)
	for row := range height {
		var line strings.Builder
		for col := range width {
			pattern := grid[row*width+col]
			if pattern == 0 {
				line.WriteByte(' ')
				continue
			}
			line.WriteRune(rune(0x2800 + pattern))
		}
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}
