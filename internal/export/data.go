package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
)

// BodyData is the final state of one body.
type BodyData struct {
	ID     uint64     `json:"id"`
	Pos    [2]float64 `json:"pos"`
	Vel    [2]float64 `json:"vel"`
	Radius float64    `json:"radius"`
	Mass   float64    `json:"mass"`
	Color  string     `json:"color"`
}

type ExportData struct {
	Seed    int64                `json:"seed"`
	Pairs   string               `json:"pairs"`
	Dt      float64              `json:"dt"`
	Frames  int                  `json:"frames"`
	Elapsed float64              `json:"elapsed_ms"`
	Metrics map[string]float64   `json:"metrics"`
	Series  map[string][]float64 `json:"series"`
	Bodies  []BodyData           `json:"bodies"`
}

// NewExportData captures a finished run and the world it ran on.
func NewExportData(w *sim.World, r *sim.Result, seed int64, dt float64) ExportData {
	data := ExportData{
		Seed:    seed,
		Pairs:   string(w.Pairs()),
		Dt:      dt,
		Frames:  r.Frames,
		Elapsed: r.Elapsed,
		Metrics: r.Metrics,
		Series:  r.Series,
		Bodies:  make([]BodyData, 0, len(w.Bodies())),
	}
	for _, b := range w.Bodies() {
		data.Bodies = append(data.Bodies, BodyData{
			ID:     uint64(b.ID),
			Pos:    [2]float64{b.Pos.X, b.Pos.Y},
			Vel:    [2]float64{b.Vel.X, b.Vel.Y},
			Radius: b.Radius,
			Mass:   b.Mass,
			Color:  viz.Hex(b.Color),
		})
	}
	return data
}

func WriteJSON(out io.Writer, data ExportData) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per frame: the frame number, the simulated time
// in ms and every metric series in name order.
func WriteCSV(out io.Writer, r *sim.Result, dt float64) error {
	names := make([]string, 0, len(r.Series))
	for name := range r.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(out)

	header := append([]string{"frame", "time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < r.Frames; i++ {
		row := []string{strconv.Itoa(i + 1), strconv.FormatFloat(float64(i+1)*dt, 'f', 3, 64)}
		for _, name := range names {
			val := ""
			if s := r.Series[name]; i < len(s) {
				val = strconv.FormatFloat(s[i], 'f', 6, 64)
			}
			row = append(row, val)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
