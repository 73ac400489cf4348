package proof

import (
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxSize is the upload cap (5 MiB).
const DefaultMaxSize int64 = 5 << 20

// allowedMediaTypes maps accepted declared media types to the extension used
// when the uploaded file name carries none.
var allowedMediaTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
}

// Upload is a proof file as received from the form.
type Upload struct {
	// Filename is the client-supplied name; only its extension is kept.
	Filename string

	// MediaType is the declared Content-Type of the part.
	MediaType string

	// Size is the declared size in bytes; -1 when unknown.
	Size int64

	Body io.Reader
}

// NormalizeMediaType strips parameters and lower-cases a declared media type.
// Unparseable input is returned trimmed and lower-cased so it fails the
// allow-list instead of erroring.
func NormalizeMediaType(declared string) string {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(declared))
	}
	return mt
}

// Allowed reports whether a declared media type is accepted.
func Allowed(mediaType string) bool {
	_, ok := allowedMediaTypes[NormalizeMediaType(mediaType)]
	return ok
}

// extensionsByMediaType lists the client extensions kept as-is for each
// accepted media type.
var extensionsByMediaType = map[string][]string{
	"application/pdf": {".pdf"},
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
	"image/webp":      {".webp"},
}

// Extension returns the lower-cased extension of the uploaded file name when
// it agrees with the declared media type, and the canonical extension of the
// media type otherwise. The result is "" for media types that are not
// accepted.
func (u *Upload) Extension() string {
	mediaType := NormalizeMediaType(u.MediaType)
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if slices.Contains(extensionsByMediaType[mediaType], ext) {
		return ext
	}
	return allowedMediaTypes[mediaType]
}
