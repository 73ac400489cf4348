package calculator

import (
	"sort"
	"strings"

	"github.com/mmynk/duoreg/internal/models"
)

// UniformSource is the uniform data carried by one entry. Historical entries
// come in different shapes; each shape has its own reader and they all feed
// the same counting path in UniformTotals.
type UniformSource interface {
	// Labels returns the raw, un-normalized kit labels of the entry.
	Labels() []string
}

// StructuredKits is the current shape: one kit field per athlete.
type StructuredKits struct {
	Athlete1Kit string
	Athlete2Kit string
}

func (k StructuredKits) Labels() []string {
	return []string{k.Athlete1Kit, k.Athlete2Kit}
}

// LegacyCombined is the pre-migration shape: a single "size1 / size2" string.
// Very old rows hold a single size with no separator, which reads the same way.
type LegacyCombined struct {
	Raw string
}

func (l LegacyCombined) Labels() []string {
	parts := strings.Split(l.Raw, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// UniformSourceOf picks the reader for an entry. Structured kit fields win
// over the legacy string, since new entries carry both and must count once.
// Returns nil when the entry holds no uniform data at all.
func UniformSourceOf(entry *models.Entry) UniformSource {
	if strings.TrimSpace(entry.Athlete1.Kit) != "" || strings.TrimSpace(entry.Athlete2.Kit) != "" {
		return StructuredKits{Athlete1Kit: entry.Athlete1.Kit, Athlete2Kit: entry.Athlete2.Kit}
	}
	if strings.TrimSpace(entry.Uniforms) != "" {
		return LegacyCombined{Raw: entry.Uniforms}
	}
	return nil
}

// UniformTotals counts canonical kit labels across entries. Raw labels that
// normalize to the same canonical label are counted together.
func UniformTotals(entries []*models.Entry) map[string]int {
	totals := make(map[string]int)
	for _, entry := range entries {
		source := UniformSourceOf(entry)
		if source == nil {
			continue
		}
		for _, raw := range source.Labels() {
			if label := NormalizeKit(raw); label != "" {
				totals[label]++
			}
		}
	}
	return totals
}

// LabelCount is one row of a sorted uniform summary.
type LabelCount struct {
	Label string
	Count int
}

// SortedTotals returns totals ordered alphabetically by label.
func SortedTotals(totals map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(totals))
	for label, count := range totals {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
