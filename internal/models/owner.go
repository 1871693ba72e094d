// internal/models/owner.go
package models

// Owner is a rights holder. AuthKey is the opaque credential bound to the
// creating caller; every gated mutation on the owner's songs and licenses
// compares against it verbatim. SongIDs and LicenseIDs are maintained by the
// integrity service and list exactly the songs registered under this owner
// and the licenses currently approved by them, in attachment order.
type Owner struct {
	ID         uint64   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	AuthKey    string   `json:"auth_key"`
	SongIDs    []uint64 `json:"song_ids"`
	LicenseIDs []uint64 `json:"license_ids"`
}

// OwnerProfile is the public projection of an Owner, without the credential
// or reference lists.
type OwnerProfile struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (o *Owner) Profile() OwnerProfile {
	return OwnerProfile{
		ID:    o.ID,
		Name:  o.Name,
		Email: o.Email,
	}
}
