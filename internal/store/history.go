package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glasscan/glasscan/internal/types"
)

// HistoryRecord is one line of the history log: enough to render a trend
// table without loading full results.
type HistoryRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	ScanID         string         `json:"scan_id"`
	Target         string         `json:"target"`
	Status         string         `json:"status"`
	TotalFindings  int            `json:"total_findings"`
	SeverityCounts map[string]int `json:"severity_counts"`
	RiskScore      float64        `json:"risk_score"`
	Grade          string         `json:"grade"`
	Duration       string         `json:"duration"`
}

func (s *Store) historyPath() string {
	return filepath.Join(s.dir, "history.jsonl")
}

func (s *Store) appendHistory(res types.ScanResult) error {
	record := HistoryRecord{
		Timestamp:     res.StartedAt,
		ScanID:        res.ID,
		Target:        res.Target,
		Status:        string(res.Status),
		TotalFindings: res.Summary.Total,
		RiskScore:     res.Summary.RiskScore,
		Grade:         res.Summary.Grade,
		Duration:      res.CompletedAt.Sub(res.StartedAt).String(),
	}
	record.SeverityCounts = make(map[string]int, len(res.Summary.BySeverity))
	for sev, n := range res.Summary.BySeverity {
		record.SeverityCounts[string(sev)] = n
	}

	f, err := os.OpenFile(s.historyPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}
	return nil
}

// History returns logged records, most recent first. Malformed lines are
// skipped rather than failing the whole read.
func (s *Store) History() ([]HistoryRecord, error) {
	f, err := os.Open(s.historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history log: %w", err)
	}
	defer f.Close()

	var records []HistoryRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record HistoryRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
