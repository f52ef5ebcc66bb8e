// Package storage persists optimization runs under a data directory: one
// subdirectory per run with a JSON record and the convergence history as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

// RunRecord is the saved outcome of one optimization run.
type RunRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Encoding    string    `json:"encoding"`
	Particles   int       `json:"particles"`
	Iterations  int       `json:"iterations"`
	Inertia     float64   `json:"inertia"`
	Accel       float64   `json:"accel"`
	Seed        int64     `json:"seed"`
	BestScore   float64   `json:"best_score"`
	Best        []float64 `json:"best"`
	Evaluations int       `json:"evaluations"`
}

// Save writes the record and the per-iteration best-score history, and
// returns the generated run id.
func (s *Store) Save(rec RunRecord, history []float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", rec.Encoding, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	rec.ID = runID
	rec.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "record.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "best_score"}); err != nil {
		return "", err
	}
	for i, score := range history {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(score, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunRecord{}, nil
		}
		return nil, err
	}

	runs := make([]RunRecord, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "record.json"))
		if err != nil {
			continue
		}

		var rec RunRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		runs = append(runs, rec)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "record.json"))
	if err != nil {
		return nil, err
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// LoadHistory reads the per-iteration best-score series of a saved run.
func (s *Store) LoadHistory(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	history := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		score, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		history = append(history, score)
	}

	return history, nil
}
