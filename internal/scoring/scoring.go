// Package scoring turns findings into per-finding risk scores and a
// page-level summary. Scores are a pure function of the finding set, so
// re-aggregating after edits (marking false positives, rescanning) always
// yields the same answer for the same inputs.
package scoring

import (
	"math"
	"sort"

	"github.com/glasscan/glasscan/internal/types"
)

// baseScores anchors each finding type on a 0-10 scale before environment
// weighting. Exposed credentials and forgeable or over-privileged tokens
// sit at the top; hygiene gaps in the middle; stale-token noise at the
// bottom.
var baseScores = map[types.FindingType]float64{
	types.TypeSecretExposure:    9.0,
	types.TypeHighEntropySecret: 7.0,
	types.TypeJWTPrivilegedRole: 9.5,
	types.TypeJWTNoneAlgorithm:  9.0,
	types.TypeJWTSensitiveClaim: 7.5,
	types.TypeJWTNoExpiry:       6.5,
	types.TypeJWTExpired:        2.0,
	types.TypeInsecureCookie:    5.5,
	types.TypeMissingHeader:     5.0,
	types.TypePIIExposure:       7.0,
}

// envMultipliers discounts findings on non-production hosts. An unknown
// environment is treated as closer to production than to development.
var envMultipliers = map[types.Environment]float64{
	types.EnvProduction:  1.0,
	types.EnvStaging:     0.8,
	types.EnvDevelopment: 0.6,
	types.EnvUnknown:     0.7,
}

// Score computes the risk score of a single finding on a 0-10 scale.
func Score(f types.Finding) float64 {
	base, ok := baseScores[f.Type]
	if !ok {
		base = 5.0
	}
	mult, ok := envMultipliers[f.Environment]
	if !ok {
		mult = envMultipliers[types.EnvUnknown]
	}
	score := base * mult
	if f.HasTag("network") || f.HasTag("storage") {
		score += 0.5
	}
	return math.Min(10, math.Max(0, score))
}

// Aggregate builds the page-level summary. False positives are excluded
// from every figure. The risk score is the confidence-weighted mean of the
// per-finding scores stretched to a 0-100 scale; a page with no live
// findings scores zero and grades A.
func Aggregate(findings []types.Finding) types.Summary {
	sum := types.Summary{BySeverity: make(map[types.Severity]int)}
	var total float64
	for _, f := range findings {
		if f.FalsePositive {
			continue
		}
		sum.Total++
		sum.BySeverity[f.Severity]++
		total += Score(f) * f.Confidence
	}
	if sum.Total > 0 {
		sum.RiskScore = math.Min(100, total/float64(sum.Total)*10)
	}
	sum.Grade = grade(sum.RiskScore)
	return sum
}

func grade(score float64) string {
	switch {
	case score <= 10:
		return "A"
	case score <= 30:
		return "B"
	case score <= 50:
		return "C"
	case score <= 70:
		return "D"
	default:
		return "F"
	}
}

// SortFindings orders findings for presentation: severity first, then
// descending per-finding score, then ID for a stable tie-break.
func SortFindings(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		sa, sb := Score(a), Score(b)
		if sa != sb {
			return sa > sb
		}
		return a.ID < b.ID
	})
}
