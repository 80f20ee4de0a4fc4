// Package store persists gridded stress runs under a data directory, one
// subdirectory per run with a small JSON metadata file alongside the data.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/tidestress/internal/grid"
)

type Store struct {
	dir string
}

type Meta struct {
	RunID     string    `json:"run_id"`
	Satellite string    `json:"satellite"`
	GridName  string    `json:"grid_name"`
	Stresses  []string  `json:"stresses"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Save writes a run directory containing meta.json, result.json and
// data.csv, and returns the generated run id.
func (s *Store) Save(satellite string, stresses []string, res *grid.Result) (string, error) {
	runID := fmt.Sprintf("%s-%d", res.Grid.Name, time.Now().UnixNano())
	runDir := filepath.Join(s.dir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := Meta{
		RunID:     runID,
		Satellite: satellite,
		GridName:  res.Grid.Name,
		Stresses:  stresses,
		Points:    len(res.Points),
		CreatedAt: time.Now().UTC(),
	}
	if err := writeJSON(filepath.Join(runDir, "meta.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "result.json"), res); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "data.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteCSV(f, res); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) Load(runID string) (Meta, error) {
	var meta Meta
	data, err := os.ReadFile(filepath.Join(s.dir, runID, "meta.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

func (s *Store) LoadResult(runID string) (*grid.Result, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, runID, "result.json"))
	if err != nil {
		return nil, err
	}
	res := &grid.Result{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, err
	}
	return res, nil
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metas []Meta
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // not a run directory
		}
		metas = append(metas, meta)
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})
	return metas, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
