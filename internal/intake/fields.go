// Package intake maps the registration form's external field identifiers
// onto entry fields.
//
// The form posts opaque, numbered keys. Which key carries which value is
// data: a form revision adds a new FieldMap version instead of code.
package intake

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mmynk/duoreg/internal/models"
)

// Field is a semantic entry field a form key can map to.
type Field string

const (
	Athlete1Name  Field = "athlete1.name"
	Athlete1Phone Field = "athlete1.phone"
	Athlete1Email Field = "athlete1.email"
	Athlete1City  Field = "athlete1.city"
	Athlete1Kit   Field = "athlete1.kit"
	Athlete2Name  Field = "athlete2.name"
	Athlete2Phone Field = "athlete2.phone"
	Athlete2Email Field = "athlete2.email"
	Athlete2City  Field = "athlete2.city"
	Athlete2Kit   Field = "athlete2.kit"
	DuoName       Field = "duo.name"
	DuoCategory   Field = "duo.category"
	DuoInstagram  Field = "duo.instagram"
	Consent       Field = "consent"
)

// FieldMap maps external form keys to semantic fields.
type FieldMap map[string]Field

// DefaultVersion is the field map used when none is configured.
const DefaultVersion = "v2"

// Versions holds every form revision the service accepts.
var Versions = map[string]FieldMap{
	// First form: one numbered key per question, in form order.
	"v1": {
		"campo1":  Athlete1Name,
		"campo2":  Athlete1Phone,
		"campo3":  Athlete1Email,
		"campo4":  Athlete1City,
		"campo5":  Athlete2Name,
		"campo6":  Athlete2Phone,
		"campo7":  Athlete2Email,
		"campo8":  Athlete2City,
		"campo9":  DuoName,
		"campo10": DuoCategory,
		"campo11": DuoInstagram,
		"campo12": Consent,
	},
	// Second form: adds per-athlete kit questions after each athlete block.
	"v2": {
		"campo1":  Athlete1Name,
		"campo2":  Athlete1Phone,
		"campo3":  Athlete1Email,
		"campo4":  Athlete1City,
		"campo5":  Athlete1Kit,
		"campo6":  Athlete2Name,
		"campo7":  Athlete2Phone,
		"campo8":  Athlete2Email,
		"campo9":  Athlete2City,
		"campo10": Athlete2Kit,
		"campo11": DuoName,
		"campo12": DuoCategory,
		"campo13": DuoInstagram,
		"campo14": Consent,
	},
}

// Lookup returns the field map for a version.
func Lookup(version string) (FieldMap, error) {
	if version == "" {
		version = DefaultVersion
	}
	m, ok := Versions[version]
	if !ok {
		known := make([]string, 0, len(Versions))
		for v := range Versions {
			known = append(known, v)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown field map version %q (known: %s)", version, strings.Join(known, ", "))
	}
	return m, nil
}

// Apply maps posted form values onto a new entry. Unknown keys are ignored.
// Values are trimmed; the first value wins for repeated keys.
func (m FieldMap) Apply(values url.Values) models.Entry {
	var e models.Entry
	for key, field := range m {
		v := strings.TrimSpace(values.Get(key))
		if v == "" {
			continue
		}
		switch field {
		case Athlete1Name:
			e.Athlete1.Name = v
		case Athlete1Phone:
			e.Athlete1.Phone = v
		case Athlete1Email:
			e.Athlete1.Email = v
		case Athlete1City:
			e.Athlete1.City = v
		case Athlete1Kit:
			e.Athlete1.Kit = v
		case Athlete2Name:
			e.Athlete2.Name = v
		case Athlete2Phone:
			e.Athlete2.Phone = v
		case Athlete2Email:
			e.Athlete2.Email = v
		case Athlete2City:
			e.Athlete2.City = v
		case Athlete2Kit:
			e.Athlete2.Kit = v
		case DuoName:
			e.Duo.Name = v
		case DuoCategory:
			e.Duo.Category = v
		case DuoInstagram:
			e.Duo.Instagram = v
		case Consent:
			e.Consent = truthy(v)
		}
	}
	return e
}

// Key returns the form key for a field, or "" if the map does not carry it.
func (m FieldMap) Key(field Field) string {
	for k, f := range m {
		if f == field {
			return k
		}
	}
	return ""
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "on", "true", "1", "sim", "yes", "aceito":
		return true
	default:
		return false
	}
}
