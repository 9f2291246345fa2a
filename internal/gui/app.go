package gui

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
)

// HUD colors
var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
)

const maxTelemetry = 200

type App struct {
	World     *sim.World
	Theme     viz.Theme
	Preset    string
	ShowHUD   bool
	Energy    *metrics.Energy
	Telemetry []float64 // kinetic energy, oldest first
	Status    string

	surface surface
}

// initWindow opens a window the size of the world's bounds.
func initWindow(b dynamo.Bounds, fps int) {
	rl.InitWindow(int32(b.W), int32(b.H), "bounce")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(w *sim.World, preset, theme string) *App {
	return &App{
		World:     w,
		Theme:     viz.GetTheme(theme),
		Preset:    preset,
		ShowHUD:   true,
		Energy:    metrics.NewEnergy(),
		Telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Run opens the window for cfg and blocks until it is closed.
func Run(cfg *config.Config, preset string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := sim.New(cfg.SimConfig(), rand.New(rand.NewSource(seed)))

	initWindow(w.Bounds(), cfg.FPS)
	defer rl.CloseWindow()
	NewApp(w, preset, cfg.Theme).RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update feeds input to the world and steps it. It returns false when the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	mouse := rl.GetMousePosition()
	a.World.PointerMove(dynamo.V(float64(mouse.X), float64(mouse.Y)))

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.World.PrimaryDown()
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.World.PrimaryUp()
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		a.World.SecondaryDown()
	}
	if rl.IsMouseButtonReleased(rl.MouseRightButton) {
		a.World.SecondaryUp()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		if _, err := a.World.Spawn(); err != nil {
			a.Status = err.Error()
		}
	}
	if rl.IsKeyPressed(rl.KeyP) {
		if a.World.Paused() {
			a.World.Resume(time.Now())
		} else {
			a.World.Pause()
		}
	}
	if rl.IsKeyPressed(rl.KeyX) {
		a.World.RemoveAtPointer()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.World.Reset()
		a.Energy.Reset()
		a.Telemetry = a.Telemetry[:0]
		a.Status = ""
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Theme = viz.NextTheme(a.Theme.Name)
	}
	if rl.IsKeyPressed(rl.KeyM) {
		if a.World.Pairs() == sim.PairsOrdered {
			a.World.SetPairs(sim.PairsUnique)
		} else {
			a.World.SetPairs(sim.PairsOrdered)
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	if !a.World.Paused() {
		a.World.Frame(time.Now())
		a.Energy.Observe(a.World, a.World.LastDt())
		a.Telemetry = append(a.Telemetry, a.Energy.Value())
		if len(a.Telemetry) > maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
		if err := a.World.Validate(); err != nil {
			a.Status = err.Error()
		}
	}
	return true
}

// Draw renders one complete frame after the physics step.
func (a *App) Draw() {
	rl.BeginDrawing()
	viz.DrawScene(a.surface, a.World, a.Theme)
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	drawText("bounce", 30, 30, 24, ColSelect)
	drawText(fmt.Sprintf(":: %s  %s", a.Preset, a.World.Pairs()), 130, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if a.World.Paused() {
		status = "PAUSED"
		col = ColTextDim
	}
	right := rl.GetScreenWidth() - 110
	drawText(status, right, 30, 16, col)
	drawText(fmt.Sprintf("%d bodies", len(a.World.Bodies())), right, 50, 14, ColText)

	a.DrawTelemetry()

	bottom := rl.GetScreenHeight() - 30
	drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, bottom, 14, ColTextDim)
	drawText("[SPACE] SPAWN  [X] REMOVE  [P] PAUSE  [R] RESET  [T] THEME  [M] PAIRS  [H] HUD  [Q] QUIT", 120, bottom, 14, ColTextDim)
	if a.Status != "" {
		drawText(a.Status, 30, bottom-20, 14, rl.Red)
	}
}

func drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

// DrawTelemetry plots recent kinetic energy as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	rectX, rectY := 30, rl.GetScreenHeight()-120
	width, height := 300, 50

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	drawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
