// Package proof handles payment proof files: media type checks, durable
// storage on disk and content fingerprints used for deduplication.
package proof

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Fingerprint returns the hex SHA-256 digest of everything read from r.
// Identical bytes always give the same fingerprint, whatever the file name.
// It is a dedup key, not a security check.
func Fingerprint(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to hash proof: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FingerprintStored hashes a file already persisted in the sink.
func FingerprintStored(sink Sink, name string) (string, error) {
	f, err := sink.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open stored proof: %w", err)
	}
	defer f.Close()

	return Fingerprint(f)
}
