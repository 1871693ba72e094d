// internal/models/license.go
package models

// License is a request by a Licensee to use a Song. OwnerID is copied from
// the song when the request is created and is never re-derived afterwards.
// A license starts unapproved with a zero price; approval sets the agreed
// price and lists the license under both the owner and the licensee.
// Revocation clears the approval and delists it, but keeps the last agreed
// price on record. License records are never deleted.
type License struct {
	ID         uint64 `json:"id"`
	SongID     uint64 `json:"song_id"`
	OwnerID    uint64 `json:"owner_id"`
	LicenseeID uint64 `json:"licensee_id"`
	Approved   bool   `json:"approved"`
	Price      uint32 `json:"price"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}
