package signals

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ScriptBlock is one unit of script text observed on the page, either inline
// or fetched from SourceURL.
type ScriptBlock struct {
	Inline    bool   `json:"inline"`
	SourceURL string `json:"source_url,omitempty"`
	Content   string `json:"content"`
}

// StorageItem is a key/value pair from localStorage or sessionStorage.
type StorageItem struct {
	Kind  string `json:"kind"` // "local" or "session"
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CookieRecord mirrors the attributes the collector can observe on a cookie.
type CookieRecord struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain,omitempty"`
	Path     string    `json:"path,omitempty"`
	Secure   bool      `json:"secure"`
	HTTPOnly bool      `json:"http_only"`
	SameSite string    `json:"same_site,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
}

// NetworkRecord is one observed request/response pair. Header keys are
// stored lowercased by the collector; Lookup tolerates either casing.
type NetworkRecord struct {
	URL             string            `json:"url"`
	Method          string            `json:"method"`
	Status          int               `json:"status,omitempty"`
	RequestHeaders  map[string]string `json:"request_headers,omitempty"`
	ResponseHeaders map[string]string `json:"response_headers,omitempty"`
	RequestBody     string            `json:"request_body,omitempty"`
	ResponseBody    string            `json:"response_body,omitempty"`
	IsDocument      bool              `json:"is_document,omitempty"`
}

// PageCapture is the collector-exported bundle of page signals for one
// target. Any category may be empty; that means "nothing to scan", never
// an error.
type PageCapture struct {
	TargetURL  string          `json:"target_url"`
	CapturedAt time.Time       `json:"captured_at,omitempty"`
	Scripts    []ScriptBlock   `json:"scripts,omitempty"`
	Storage    []StorageItem   `json:"storage,omitempty"`
	Cookies    []CookieRecord  `json:"cookies,omitempty"`
	Network    []NetworkRecord `json:"network,omitempty"`
}

// LoadCapture reads a collector export from disk.
func LoadCapture(path string) (PageCapture, error) {
	var pc PageCapture
	b, err := os.ReadFile(path)
	if err != nil {
		return pc, fmt.Errorf("read capture: %w", err)
	}
	if err := json.Unmarshal(b, &pc); err != nil {
		return pc, fmt.Errorf("parse capture %s: %w", path, err)
	}
	return pc, nil
}
