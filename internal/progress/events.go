package progress

import "time"

type EventType string

const (
	EventScanStarted      EventType = "scan_started"
	EventDetectorStarted  EventType = "detector_started"
	EventDetectorFinished EventType = "detector_finished"
	EventScanFinished     EventType = "scan_finished"
)

type Event struct {
	Type         EventType `json:"type"`
	At           time.Time `json:"at"`
	ScanID       string    `json:"scan_id,omitempty"`
	Detector     string    `json:"detector,omitempty"`
	Status       string    `json:"status,omitempty"`
	Error        string    `json:"error,omitempty"`
	Percent      float64   `json:"percent,omitempty"`
	FindingCount int       `json:"finding_count,omitempty"`
	DurationMS   int64     `json:"duration_ms,omitempty"`
}
