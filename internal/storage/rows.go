package storage

import (
	"database/sql"
	"time"

	"github.com/mmynk/duoreg/internal/models"
)

// EntryColumns is the column order shared by the SQL backends. EntryValues
// and ScanEntry follow the same order.
const EntryColumns = `id, submitted_at,
	athlete1_name, athlete1_phone, athlete1_email, athlete1_city, athlete1_kit,
	athlete2_name, athlete2_phone, athlete2_email, athlete2_city, athlete2_kit,
	duo_name, duo_category, duo_instagram,
	consent, uniforms,
	proof_filename, proof_url, proof_fingerprint, proof_mime,
	status,
	validation_correct, validation_score, validation_mime, validation_text_sample`

// EntryColumnCount is the number of columns in EntryColumns.
const EntryColumnCount = 26

// EntryValues returns the insert arguments for an entry in EntryColumns order.
// SubmittedAt is stored as Unix nanoseconds.
func EntryValues(e *models.Entry) []any {
	return []any{
		e.ID, e.SubmittedAt.UnixNano(),
		e.Athlete1.Name, e.Athlete1.Phone, e.Athlete1.Email, e.Athlete1.City, e.Athlete1.Kit,
		e.Athlete2.Name, e.Athlete2.Phone, e.Athlete2.Email, e.Athlete2.City, e.Athlete2.Kit,
		e.Duo.Name, e.Duo.Category, e.Duo.Instagram,
		e.Consent, e.Uniforms,
		e.Proof.Filename, e.Proof.URL, e.Proof.Fingerprint, e.Proof.MimeType,
		string(e.Status),
		e.Validation.Correct, e.Validation.Score, e.Validation.MimeType, e.Validation.TextSample,
	}
}

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanEntry reads one row selected with EntryColumns.
func ScanEntry(row RowScanner) (*models.Entry, error) {
	var (
		e           models.Entry
		submittedAt int64
		status      string
		correct     sql.NullBool
	)
	err := row.Scan(
		&e.ID, &submittedAt,
		&e.Athlete1.Name, &e.Athlete1.Phone, &e.Athlete1.Email, &e.Athlete1.City, &e.Athlete1.Kit,
		&e.Athlete2.Name, &e.Athlete2.Phone, &e.Athlete2.Email, &e.Athlete2.City, &e.Athlete2.Kit,
		&e.Duo.Name, &e.Duo.Category, &e.Duo.Instagram,
		&e.Consent, &e.Uniforms,
		&e.Proof.Filename, &e.Proof.URL, &e.Proof.Fingerprint, &e.Proof.MimeType,
		&status,
		&correct, &e.Validation.Score, &e.Validation.MimeType, &e.Validation.TextSample,
	)
	if err != nil {
		return nil, err
	}

	e.SubmittedAt = time.Unix(0, submittedAt)
	e.Status = models.Status(status)
	if correct.Valid {
		v := correct.Bool
		e.Validation.Correct = &v
	}
	return &e, nil
}
