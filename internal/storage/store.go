package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/rigidsim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Contacts  int                `json:"contacts"`
	Bodies    []int              `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and trajectory.csv under a new run directory
// and returns the run id.
func (s *Store) Save(name string, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	ids := bodyIDs(result)
	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,
		Contacts:  result.Contacts,
		Bodies:    ids,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), ids, result); err != nil {
		return "", err
	}
	return runID, nil
}

func bodyIDs(result *sim.Result) []int {
	if len(result.Frames) == 0 {
		return []int{}
	}
	bodies := result.Frames[0].State.Bodies
	ids := make([]int, len(bodies))
	for i, b := range bodies {
		ids[i] = b.ID
	}
	return ids
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func writeTrajectory(path string, ids []int, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"time"}
	for _, id := range ids {
		header = append(header, fmt.Sprintf("%d_x", id), fmt.Sprintf("%d_y", id))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range result.Frames {
		row := []string{formatFloat(frame.Time)}
		for _, id := range ids {
			b, ok := frame.State.Body(id)
			if !ok {
				row = append(row, "", "")
				continue
			}
			row = append(row, formatFloat(b.Position[0]), formatFloat(b.Position[1]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Trajectory holds recorded body positions; Positions[frame][i] belongs to
// IDs[i].
type Trajectory struct {
	IDs       []int
	Times     []float64
	Positions [][][2]float64
}

// Axis returns the axis (0 for x, 1 for y) series for body id, or nil if
// the body was not recorded.
func (tr *Trajectory) Axis(id, axis int) []float64 {
	col := -1
	for i, v := range tr.IDs {
		if v == id {
			col = i
			break
		}
	}
	if col < 0 || axis < 0 || axis > 1 {
		return nil
	}
	out := make([]float64, len(tr.Positions))
	for i, row := range tr.Positions {
		out[i] = row[col][axis]
	}
	return out
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &Trajectory{IDs: []int{}, Times: []float64{}, Positions: [][][2]float64{}}
	if len(records) == 0 {
		return tr, nil
	}

	header := records[0]
	for j := 1; j+1 < len(header); j += 2 {
		id, err := strconv.Atoi(strings.TrimSuffix(header[j], "_x"))
		if err != nil {
			return nil, fmt.Errorf("bad trajectory column %q: %w", header[j], err)
		}
		tr.IDs = append(tr.IDs, id)
	}

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([][2]float64, len(tr.IDs))
		for i := range tr.IDs {
			for axis := 0; axis < 2; axis++ {
				j := 1 + 2*i + axis
				if j >= len(record) {
					continue
				}
				if v, err := strconv.ParseFloat(record[j], 64); err == nil {
					row[i][axis] = v
				}
			}
		}
		tr.Times = append(tr.Times, t)
		tr.Positions = append(tr.Positions, row)
	}

	return tr, nil
}
