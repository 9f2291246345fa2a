package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bounce/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid with one ink color per cell. It implements
// Surface once Fit has mapped world units onto its dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]color.RGBA

	sx, sy float64
	styles map[color.RGBA]lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]color.RGBA, h),
		sx:     1,
		sy:     1,
		styles: make(map[color.RGBA]lipgloss.Style),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]color.RGBA, w)
	}
	c.Clear(color.RGBA{})
	return c
}

// Fit scales world coordinates in b onto the full dot grid.
func (c *Canvas) Fit(b dynamo.Bounds) {
	if b.W > 0 {
		c.sx = float64(c.Width*2) / b.W
	}
	if b.H > 0 {
		c.sy = float64(c.Height*4) / b.H
	}
}

// Paint sets a dot at (x, y) in sub-pixel coordinates and colors its cell.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Paint(x, y int, ink color.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = ink
}

// Clear resets every cell. The background is left to the terminal.
func (c *Canvas) Clear(bg color.RGBA) {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = bg
		}
	}
}

// FillCircle fills every dot whose center lies inside the circle.
func (c *Canvas) FillCircle(center dynamo.Vec2, r float64, ink color.RGBA) {
	cx, cy := center.X*c.sx, center.Y*c.sy
	rx, ry := r*c.sx, r*c.sy
	if rx <= 0 || ry <= 0 {
		return
	}

	painted := false
	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				c.Paint(x, y, ink)
				painted = true
			}
		}
	}
	if !painted {
		c.Paint(int(cx), int(cy), ink)
	}
}

// DashedLine draws alternating on/off runs of dash world units. Braille
// dots have no thickness, so width is ignored.
func (c *Canvas) DashedLine(from, to dynamo.Vec2, width, dash float64, ink color.RGBA) {
	run := int(math.Round(dash * (c.sx + c.sy) / 2))
	if run < 1 {
		run = 1
	}
	c.drawLine(int(from.X*c.sx), int(from.Y*c.sy), int(to.X*c.sx), int(to.Y*c.sy), run, ink)
}

// drawLine walks Bresenham's line, toggling the pen every dash dots.
func (c *Canvas) drawLine(x0, y0, x1, y1, dash int, ink color.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for step := 0; ; step++ {
		if (step/dash)%2 == 0 {
			c.Paint(x0, y0, ink)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid with each run of equally inked cells styled once.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[i][j] == c.Ink[i][start] {
				continue
			}
			b.WriteString(c.style(c.Ink[i][start]).Render(string(row[start:j])))
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Plain renders the grid without colors, for logs and pipes.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func (c *Canvas) style(ink color.RGBA) lipgloss.Style {
	if s, ok := c.styles[ink]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(ink)))
	c.styles[ink] = s
	return s
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
