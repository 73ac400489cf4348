// Package export projects filtered entries and uniform totals into tabular
// sheets and writes them out as an XLSX file or to Google Sheets.
package export

import (
	"fmt"
	"time"

	"github.com/mmynk/duoreg/internal/calculator"
	"github.com/mmynk/duoreg/internal/models"
)

const (
	EntriesSheet  = "Inscrições"
	UniformsSheet = "Uniformes"

	// DateLayout is the pt-BR display form used in the entries sheet.
	DateLayout = "02/01/2006 15:04"
)

// EntryHeader is the fixed column set of the entries sheet.
var EntryHeader = []string{
	"Data", "Dupla", "Categoria",
	"Atleta 1", "Telefone 1", "E-mail 1", "Cidade 1", "Kit 1",
	"Atleta 2", "Telefone 2", "E-mail 2", "Cidade 2", "Kit 2",
	"Status", "Score", "Comprovante", "Instagram",
}

// UniformHeader is the column set of the uniforms sheet.
var UniformHeader = []string{"Kit", "Quantidade"}

var statusLabels = map[models.Status]string{
	models.StatusPendingReview: "Em análise",
	models.StatusAccepted:      "Aprovada",
	models.StatusRejected:      "Recusada",
	models.StatusDuplicate:     "Duplicada",
}

// Table is one sheet: a header row and data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Workbook is the full export: the entries sheet then the uniforms sheet.
type Workbook struct {
	Sheets []Table
}

// Project maps already filtered and ordered entries plus computed uniform
// totals into a workbook. It does no filtering or aggregation of its own.
func Project(entries []*models.Entry, totals map[string]int, loc *time.Location) Workbook {
	if loc == nil {
		loc = time.UTC
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		kit1, kit2 := kitColumns(e)
		rows = append(rows, []any{
			e.SubmittedAt.In(loc).Format(DateLayout),
			e.Duo.Name,
			e.Duo.Category,
			e.Athlete1.Name, e.Athlete1.Phone, e.Athlete1.Email, e.Athlete1.City, kit1,
			e.Athlete2.Name, e.Athlete2.Phone, e.Athlete2.Email, e.Athlete2.City, kit2,
			StatusLabel(e.Status),
			e.Validation.Score,
			e.Proof.URL,
			e.Duo.Instagram,
		})
	}

	sorted := calculator.SortedTotals(totals)
	uniformRows := make([][]any, 0, len(sorted))
	for _, lc := range sorted {
		uniformRows = append(uniformRows, []any{lc.Label, lc.Count})
	}

	return Workbook{Sheets: []Table{
		{Name: EntriesSheet, Header: EntryHeader, Rows: rows},
		{Name: UniformsSheet, Header: UniformHeader, Rows: uniformRows},
	}}
}

// StatusLabel is the display label of a status.
func StatusLabel(s models.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// FileName is the download name of an export taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("inscricoes-%s.xlsx", now.Format("20060102-150405"))
}

// kitColumns returns the canonical kit label of each athlete, reading legacy
// combined strings the same way the uniform totals do.
func kitColumns(e *models.Entry) (string, string) {
	source := calculator.UniformSourceOf(e)
	if source == nil {
		return "", ""
	}
	labels := source.Labels()
	var kits [2]string
	for i := 0; i < len(labels) && i < 2; i++ {
		kits[i] = calculator.NormalizeKit(labels[i])
	}
	return kits[0], kits[1]
}
