// Package storage persists simulation runs under a data directory:
// one subdirectory per run holding metadata.json and trace.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tanklab/tanksim/internal/experiment"
	"github.com/tanklab/tanksim/internal/sim"
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

// RunMetadata describes one saved run.
type RunMetadata struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	K            float64            `json:"k"`
	Tau          float64            `json:"tau"`
	Kp           float64            `json:"kp"`
	Ki           float64            `json:"ki"`
	Kd           float64            `json:"kd"`
	SamplePeriod float64            `json:"sample_period"`
	Horizon      float64            `json:"horizon"`
	Reference    string             `json:"reference"`
	Warning      string             `json:"warning,omitempty"`
	Metrics      map[string]float64 `json:"metrics"`
}

// TraceData is the stored column view of a run's traces.
type TraceData struct {
	Time      []float64
	Reference []float64
	Output    []float64
	Error     []float64
	Effort    []float64
}

// Save writes a run's metadata and traces, returning the generated run id.
func (s *Store) Save(res *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_T%g_%d", res.Config.Reference, res.Config.SamplePeriod, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    time.Now(),
		K:            res.Config.Plant.K,
		Tau:          res.Config.Plant.Tau,
		Kp:           res.Config.Gains.Kp,
		Ki:           res.Config.Gains.Ki,
		Kd:           res.Config.Gains.Kd,
		SamplePeriod: res.Config.SamplePeriod,
		Horizon:      res.Config.Horizon,
		Reference:    string(res.Config.Reference),
		Warning:      res.Warning,
		Metrics:      res.Metrics(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeTrace(filepath.Join(runDir, "trace.csv"), res.Output, res.Effort); err != nil {
		return "", err
	}

	return runID, nil
}

func writeTrace(path string, output, effort sim.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "reference", "output", "error", "effort"}); err != nil {
		return err
	}

	errSeq := output.Error()
	for i := 0; i < output.Len(); i++ {
		row := []string{
			formatFloat(output.Time[i]),
			formatFloat(output.Input[i]),
			formatFloat(output.Output[i]),
			formatFloat(errSeq[i]),
			formatFloat(effort.Output[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns metadata for every saved run.
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
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads one run's trace columns.
func (s *Store) LoadTrace(runID string) (*TraceData, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &TraceData{}, nil
	}

	td := &TraceData{}
	for _, rec := range records[1:] {
		if len(rec) < 5 {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		td.Time = append(td.Time, vals[0])
		td.Reference = append(td.Reference, vals[1])
		td.Output = append(td.Output, vals[2])
		td.Error = append(td.Error, vals[3])
		td.Effort = append(td.Effort, vals[4])
	}
	return td, nil
}
