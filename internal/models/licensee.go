// internal/models/licensee.go
package models

// Licensee is a party that requests licenses on songs. Licenses holds the
// ids of the licenses currently approved for this licensee, in approval
// order; requested and revoked licenses are not listed.
type Licensee struct {
	ID       uint64   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Licenses []uint64 `json:"licenses"`
}
