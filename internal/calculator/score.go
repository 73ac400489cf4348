package calculator

import (
	"strings"
)

// ScoreWeights is the completeness scoring policy. Kept as data so policy
// changes can be reviewed apart from the intake pipeline.
type ScoreWeights struct {
	Base              int
	AcceptedExtension int
	BothEmails        int
	BothKits          int
	DuoName           int
	DuoCategory       int
	Instagram         int
	// MissingConsent is subtracted when the terms were not accepted.
	MissingConsent int
}

// DefaultScoreWeights is the policy used in production.
var DefaultScoreWeights = ScoreWeights{
	Base:              50,
	AcceptedExtension: 10,
	BothEmails:        10,
	BothKits:          10,
	DuoName:           10,
	DuoCategory:       10,
	Instagram:         5,
	MissingConsent:    20,
}

// AcceptedExtensions are the proof file extensions that earn the extension bonus.
var AcceptedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ScoreInput is the subset of a submission the scorer looks at.
type ScoreInput struct {
	Athlete1Email string
	Athlete2Email string
	Athlete1Kit   string
	Athlete2Kit   string
	DuoName       string
	DuoCategory   string
	Instagram     string
	Consent       bool
}

// Score computes the completeness score of a submission, clamped to [0, 100].
//
// The score only says how much of the form was filled in. It does not look at
// the proof contents and is not a validation result.
func Score(in ScoreInput, ext string, w ScoreWeights) int {
	score := w.Base

	if AcceptedExtensions[strings.ToLower(ext)] {
		score += w.AcceptedExtension
	}
	if present(in.Athlete1Email) && present(in.Athlete2Email) {
		score += w.BothEmails
	}
	if present(in.Athlete1Kit) && present(in.Athlete2Kit) {
		score += w.BothKits
	}
	if present(in.DuoName) {
		score += w.DuoName
	}
	if present(in.DuoCategory) {
		score += w.DuoCategory
	}
	if present(in.Instagram) {
		score += w.Instagram
	}

	// Bonuses cap at 100 before the consent penalty applies.
	score = min(score, 100)
	if !in.Consent {
		score -= w.MissingConsent
	}

	return clamp(score, 0, 100)
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
