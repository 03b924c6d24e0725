package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/world"
)

type ExportFrame struct {
	Time  float64     `json:"time"`
	State world.State `json:"state"`
}

type ExportData struct {
	Name     string             `json:"name"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Frames   []ExportFrame      `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
	Errors   []string           `json:"errors,omitempty"`
}

func newExportData(name string, cfg sim.Config, result *sim.Result) ExportData {
	data := ExportData{
		Name:     name,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Steps:    result.StepsTaken,
		Frames:   make([]ExportFrame, len(result.Frames)),
		Metrics:  result.Metrics,
	}
	for i, f := range result.Frames {
		data.Frames[i] = ExportFrame{Time: f.Time, State: f.State}
	}
	for _, err := range result.Errors {
		data.Errors = append(data.Errors, err.Error())
	}
	return data
}

// WriteJSON encodes the full run to w.
func WriteJSON(w io.Writer, name string, cfg sim.Config, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(name, cfg, result))
}

func ExportJSON(path, name string, cfg sim.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, name, cfg, result)
}
