package types

import "time"

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMedium   Severity = "medium"
	SevLow      Severity = "low"
	SevInfo     Severity = "info"
)

// Rank orders severities for sorting; higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 4
	case SevHigh:
		return 3
	case SevMedium:
		return 2
	case SevLow:
		return 1
	default:
		return 0
	}
}

// FindingType is the closed vocabulary of issues the engine can report.
type FindingType string

const (
	TypeSecretExposure    FindingType = "secret_exposure"
	TypeHighEntropySecret FindingType = "high_entropy_secret"
	TypeJWTNoneAlgorithm  FindingType = "jwt_none_algorithm"
	TypeJWTNoExpiry       FindingType = "jwt_no_expiry"
	TypeJWTSensitiveClaim FindingType = "jwt_sensitive_claims"
	TypeJWTPrivilegedRole FindingType = "jwt_privileged_role"
	TypeJWTExpired        FindingType = "jwt_expired"
	TypeInsecureCookie    FindingType = "insecure_cookie"
	TypeMissingHeader     FindingType = "missing_security_header"
	TypePIIExposure       FindingType = "pii_exposure"
)

// Environment tags where the scanned page appears to be deployed. The same
// exposure is materially worse in production than on a developer box.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
	EnvUnknown     Environment = "unknown"
)

// LocationKind says which page surface a finding was observed on.
type LocationKind string

const (
	LocScript  LocationKind = "script"
	LocStorage LocationKind = "storage"
	LocCookie  LocationKind = "cookie"
	LocHeader  LocationKind = "header"
	LocNetwork LocationKind = "network"
)

// Location pins a finding to one of the page surfaces. Exactly the fields
// relevant to Kind are set.
type Location struct {
	Kind       LocationKind `json:"kind"`
	ScriptURL  string       `json:"script_url,omitempty"`
	Offset     int          `json:"offset,omitempty"`
	StorageKey string       `json:"storage_key,omitempty"`
	CookieName string       `json:"cookie_name,omitempty"`
	HeaderName string       `json:"header_name,omitempty"`
	NetworkURL string       `json:"network_url,omitempty"`
}

// String renders a short human-readable reference for tables and SARIF URIs.
func (l Location) String() string {
	switch l.Kind {
	case LocScript:
		if l.ScriptURL == "" {
			return "inline script"
		}
		return l.ScriptURL
	case LocStorage:
		return "storage:" + l.StorageKey
	case LocCookie:
		return "cookie:" + l.CookieName
	case LocHeader:
		return "header:" + l.HeaderName
	case LocNetwork:
		return l.NetworkURL
	default:
		return ""
	}
}

// Finding describes one confirmed or suspected client-side exposure.
// Evidence is always masked; raw matched values never leave the detector
// that saw them.
type Finding struct {
	ID            string      `json:"id"`
	Type          FindingType `json:"type"`
	Severity      Severity    `json:"severity"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Location      Location    `json:"location"`
	Evidence      string      `json:"evidence,omitempty"`
	Impact        string      `json:"impact,omitempty"`
	AtRiskData    []string    `json:"at_risk_data,omitempty"`
	Remediation   []string    `json:"remediation,omitempty"`
	Confidence    float64     `json:"confidence"`
	Environment   Environment `json:"environment"`
	Timestamp     time.Time   `json:"timestamp"`
	Tags          []string    `json:"tags,omitempty"`
	FalsePositive bool        `json:"false_positive,omitempty"`
}

// HasTag reports whether the finding carries the given free-form tag.
func (f Finding) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DetectorResult is the per-detector output of a scan. It is retained even
// when the detector failed, so partial-failure scans stay diagnosable.
type DetectorResult struct {
	Detector string        `json:"detector"`
	Findings []Finding     `json:"findings,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// ScanStatus is the orchestrator state machine value.
type ScanStatus string

const (
	StatusIdle      ScanStatus = "idle"
	StatusRunning   ScanStatus = "running"
	StatusCompleted ScanStatus = "completed"
	StatusFailed    ScanStatus = "failed"
	StatusCancelled ScanStatus = "cancelled"
)

// Summary is derived from a finding list and is never stored independently
// of it; callers recompute it rather than trusting a cached copy.
type Summary struct {
	Total      int              `json:"total"`
	BySeverity map[Severity]int `json:"by_severity"`
	RiskScore  float64          `json:"risk_score"`
	Grade      string           `json:"grade"`
}

// ScanResult is the aggregate output of one scan invocation. A later scan
// of the same target supersedes it; results are never mutated in place.
type ScanResult struct {
	ID          string           `json:"id"`
	Target      string           `json:"target"`
	Status      ScanStatus       `json:"status"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at,omitempty"`
	Findings    []Finding        `json:"findings"`
	Detectors   []DetectorResult `json:"detectors,omitempty"`
	Summary     Summary          `json:"summary"`
}
