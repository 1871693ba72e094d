// internal/models/song.go
package models

// Song is a licensable track registered by an Owner. The owner binding is
// fixed at creation; the descriptive fields and the price can be replaced by
// the owner afterwards.
type Song struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	OwnerID uint64 `json:"owner_id"`
	Year    uint32 `json:"year"`
	Genre   string `json:"genre"`
	Price   uint32 `json:"price"`
}
