// Package adminv1 holds the messages and Connect glue of the
// duoreg.v1.AdminService RPC surface. Messages are plain structs carried
// with a JSON codec.
package adminv1

import "time"

type Athlete struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	City  string `json:"city,omitempty"`
	Kit   string `json:"kit,omitempty"`
}

type Entry struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	Athlete1    Athlete   `json:"athlete1"`
	Athlete2    Athlete   `json:"athlete2"`
	DuoName     string    `json:"duoName,omitempty"`
	Category    string    `json:"category"`
	Instagram   string    `json:"instagram,omitempty"`
	Consent     bool      `json:"consent"`
	Uniforms    string    `json:"uniforms,omitempty"`
	ProofURL    string    `json:"proofUrl"`
	MimeType    string    `json:"mimeType"`
	Status      string    `json:"status"`
	Score       int       `json:"score"`
}

// UniformCount is one canonical kit label and how many were ordered.
type UniformCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ListEntriesRequest struct {
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
}

type ListEntriesResponse struct {
	Entries    []*Entry       `json:"entries"`
	Uniforms   []UniformCount `json:"uniforms"`
	Categories []string       `json:"categories"`
}

type GetEntryRequest struct {
	ID string `json:"id"`
}

type GetEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type TransitionEntryRequest struct {
	ID string `json:"id"`
	// Status is "accepted" or "rejected".
	Status string `json:"status"`
}

type TransitionEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type PublishExportRequest struct {
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
}

type PublishExportResponse struct {
	SpreadsheetID string `json:"spreadsheetId"`
	Entries       int    `json:"entries"`
}
