package service

import (
	"fmt"

	"github.com/mmynk/duoreg/internal/calculator"
	"github.com/mmynk/duoreg/internal/models"
	"github.com/mmynk/duoreg/internal/storage"
	adminv1 "github.com/mmynk/duoreg/pkg/adminv1"
)

func toEntryMessage(e *models.Entry) *adminv1.Entry {
	return &adminv1.Entry{
		ID:          e.ID,
		SubmittedAt: e.SubmittedAt,
		Athlete1:    toAthleteMessage(e.Athlete1),
		Athlete2:    toAthleteMessage(e.Athlete2),
		DuoName:     e.Duo.Name,
		Category:    e.Duo.Category,
		Instagram:   e.Duo.Instagram,
		Consent:     e.Consent,
		Uniforms:    e.Uniforms,
		ProofURL:    e.Proof.URL,
		MimeType:    e.Proof.MimeType,
		Status:      string(e.Status),
		Score:       e.Validation.Score,
	}
}

func toAthleteMessage(a models.Athlete) adminv1.Athlete {
	return adminv1.Athlete{
		Name:  a.Name,
		Phone: a.Phone,
		Email: a.Email,
		City:  a.City,
		Kit:   a.Kit,
	}
}

func toUniformMessages(totals map[string]int) []adminv1.UniformCount {
	sorted := calculator.SortedTotals(totals)
	out := make([]adminv1.UniformCount, len(sorted))
	for i, lc := range sorted {
		out[i] = adminv1.UniformCount{Label: lc.Label, Count: lc.Count}
	}
	return out
}

// ParseFilter builds a listing filter from raw query values. An empty status
// matches every status.
func ParseFilter(category, status string) (storage.Filter, error) {
	filter := storage.Filter{Category: category}
	if status == "" {
		return filter, nil
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return storage.Filter{}, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	filter.Status = st
	return filter, nil
}
