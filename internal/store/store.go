// Package store persists scan results on disk. Each result is one JSON
// document keyed by scan ID, plus an append-only history log of summaries.
// Stored findings only ever contain masked evidence, so the store holds no
// raw secret material.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glasscan/glasscan/internal/types"
)

// Store reads and writes scan results under a single base directory.
type Store struct {
	dir string
}

// DefaultDir resolves the data directory: $GLASSCAN_DATA_DIR wins, then
// $XDG_DATA_HOME/glasscan, then ~/.local/share/glasscan.
func DefaultDir() (string, error) {
	if d := os.Getenv("GLASSCAN_DATA_DIR"); d != "" {
		return d, nil
	}
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "glasscan"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "glasscan"), nil
}

func New(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "scans"), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) scanPath(id string) string {
	return filepath.Join(s.dir, "scans", id+".json")
}

// Save writes one scan result and appends its summary to the history log.
func (s *Store) Save(res types.ScanResult) error {
	if res.ID == "" {
		return errors.New("scan result has no id")
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.scanPath(res.ID), b, 0600); err != nil {
		return fmt.Errorf("failed to write scan result: %w", err)
	}
	return s.appendHistory(res)
}

// Load reads one scan result by ID.
func (s *Store) Load(id string) (types.ScanResult, error) {
	var res types.ScanResult
	b, err := os.ReadFile(s.scanPath(id))
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return res, fmt.Errorf("corrupt scan result %s: %w", id, err)
	}
	return res, nil
}

// List returns all stored results, most recent first.
func (s *Store) List() ([]types.ScanResult, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "scans"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []types.ScanResult
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		res, err := s.Load(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

// Latest returns the most recent result for a target, or the most recent
// overall when target is empty.
func (s *Store) Latest(target string) (types.ScanResult, error) {
	all, err := s.List()
	if err != nil {
		return types.ScanResult{}, err
	}
	for _, res := range all {
		if target == "" || res.Target == target {
			return res, nil
		}
	}
	return types.ScanResult{}, os.ErrNotExist
}

// Prune deletes everything beyond the keep most recent results. History is
// left untouched.
func (s *Store) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	all, err := s.List()
	if err != nil {
		return err
	}
	for _, res := range all[min(keep, len(all)):] {
		if err := os.Remove(s.scanPath(res.ID)); err != nil {
			return err
		}
	}
	return nil
}
