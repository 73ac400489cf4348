// Package models defines the core domain models for duo registrations.
//
// # Models
//
//   - Entry: one duo's registration (two athletes, proof of payment, metadata)
//   - Athlete: contact and uniform details for one athlete of the duo
//   - Duo: team metadata; Category is the partition key used by filters and
//     uniform accounting
//   - Proof: the stored payment proof file and its content fingerprint
//
// # Historical shapes
//
// Entries created before per-athlete kit fields existed only carry the
// combined Uniforms string ("M / G"). New entries carry both. Readers that
// count uniforms must accept either shape; see calculator.UniformSourceOf.
package models
