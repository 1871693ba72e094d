// internal/services/integrity_service.go
package services

import (
	"github.com/tunegrid/licensing-backend/internal/models"
	"github.com/tunegrid/licensing-backend/internal/store"
)

// IntegrityService keeps the reference lists on owners and licensees
// consistent with the song and license tables. Attach appends an id if it is
// not already listed; detach locates the id by linear scan and fails with
// NotFound when it is absent, which is how a desync between a license and
// its owner's or licensee's list is detected. Every list mutation
// re-persists the whole owning record; there is no partial-field update in
// the store.
type IntegrityService struct {
	store store.Store
}

func NewIntegrityService(st store.Store) *IntegrityService {
	return &IntegrityService{store: st}
}

func (s *IntegrityService) AttachSongToOwner(ownerID, songID uint64) error {
	owner, found, err := s.store.Owners().Get(ownerID)
	if err != nil {
		return models.InvalidPayloadf("owner id:%d could not be loaded: %v", ownerID, err)
	}
	if !found {
		return models.NotFoundf("owner id:%d could not be found", ownerID)
	}
	if containsID(owner.SongIDs, songID) {
		return nil
	}
	owner.SongIDs = append(owner.SongIDs, songID)
	if err := s.store.Owners().Insert(ownerID, owner); err != nil {
		return models.InvalidPayloadf("song id:%d could not be added to owner id:%d: %v", songID, ownerID, err)
	}
	return nil
}

func (s *IntegrityService) AttachLicenseToOwner(ownerID, licenseID uint64) error {
	owner, found, err := s.store.Owners().Get(ownerID)
	if err != nil {
		return models.InvalidPayloadf("owner id:%d could not be loaded: %v", ownerID, err)
	}
	if !found {
		return models.NotFoundf("owner id:%d could not be found", ownerID)
	}
	if containsID(owner.LicenseIDs, licenseID) {
		return nil
	}
	owner.LicenseIDs = append(owner.LicenseIDs, licenseID)
	if err := s.store.Owners().Insert(ownerID, owner); err != nil {
		return models.InvalidPayloadf("license id:%d could not be added to owner id:%d: %v", licenseID, ownerID, err)
	}
	return nil
}

func (s *IntegrityService) AttachLicenseToLicensee(licenseeID, licenseID uint64) error {
	licensee, found, err := s.store.Licensees().Get(licenseeID)
	if err != nil {
		return models.InvalidPayloadf("licensee id:%d could not be loaded: %v", licenseeID, err)
	}
	if !found {
		return models.NotFoundf("licensee id:%d could not be found", licenseeID)
	}
	if containsID(licensee.Licenses, licenseID) {
		return nil
	}
	licensee.Licenses = append(licensee.Licenses, licenseID)
	if err := s.store.Licensees().Insert(licenseeID, licensee); err != nil {
		return models.InvalidPayloadf("license id:%d could not be added to licensee id:%d: %v", licenseID, licenseeID, err)
	}
	return nil
}

func (s *IntegrityService) DetachLicenseFromOwner(ownerID, licenseID uint64) error {
	owner, found, err := s.store.Owners().Get(ownerID)
	if err != nil {
		return models.InvalidPayloadf("owner id:%d could not be loaded: %v", ownerID, err)
	}
	if !found {
		return models.NotFoundf("owner id:%d could not be found", ownerID)
	}
	ids, removed := removeID(owner.LicenseIDs, licenseID)
	if !removed {
		return models.NotFoundf("license id:%d could not be found in owner id:%d", licenseID, ownerID)
	}
	owner.LicenseIDs = ids
	if err := s.store.Owners().Insert(ownerID, owner); err != nil {
		return models.InvalidPayloadf("license id:%d could not be removed from owner id:%d: %v", licenseID, ownerID, err)
	}
	return nil
}

func (s *IntegrityService) DetachLicenseFromLicensee(licenseeID, licenseID uint64) error {
	licensee, found, err := s.store.Licensees().Get(licenseeID)
	if err != nil {
		return models.InvalidPayloadf("licensee id:%d could not be loaded: %v", licenseeID, err)
	}
	if !found {
		return models.NotFoundf("licensee id:%d could not be found", licenseeID)
	}
	ids, removed := removeID(licensee.Licenses, licenseID)
	if !removed {
		return models.NotFoundf("license id:%d could not be found in licensee id:%d", licenseID, licenseeID)
	}
	licensee.Licenses = ids
	if err := s.store.Licensees().Insert(licenseeID, licensee); err != nil {
		return models.InvalidPayloadf("license id:%d could not be removed from licensee id:%d: %v", licenseID, licenseeID, err)
	}
	return nil
}

// DetachSongFromOwner resolves the song, then its owner, and removes the
// song id from the owner's list.
func (s *IntegrityService) DetachSongFromOwner(songID uint64) error {
	song, found, err := s.store.Songs().Get(songID)
	if err != nil {
		return models.InvalidPayloadf("song id:%d could not be loaded: %v", songID, err)
	}
	if !found {
		return models.NotFoundf("song id:%d could not be found", songID)
	}
	owner, found, err := s.store.Owners().Get(song.OwnerID)
	if err != nil {
		return models.InvalidPayloadf("owner id:%d could not be loaded: %v", song.OwnerID, err)
	}
	if !found {
		return models.NotFoundf("owner id:%d could not be found", song.OwnerID)
	}
	ids, removed := removeID(owner.SongIDs, songID)
	if !removed {
		return models.NotFoundf("song id:%d could not be found in owner id:%d", songID, song.OwnerID)
	}
	owner.SongIDs = ids
	if err := s.store.Owners().Insert(owner.ID, owner); err != nil {
		return models.InvalidPayloadf("song id:%d could not be removed from owner id:%d: %v", songID, owner.ID, err)
	}
	return nil
}

// CascadeDeleteSong delists every approved license of the song from its
// licensee. Requested and revoked licenses are not listed anywhere, so they
// need no delisting; the license records themselves are kept either way.
// The first failure aborts the cascade and the caller must not remove the
// song record.
func (s *IntegrityService) CascadeDeleteSong(songID uint64) error {
	licenses, err := s.store.Licenses().Scan()
	if err != nil {
		return models.InvalidPayloadf("licenses for song id:%d could not be loaded: %v", songID, err)
	}
	for _, entry := range licenses {
		license := entry.Record
		if license.SongID != songID || !license.Approved {
			continue
		}
		if err := s.DetachLicenseFromLicensee(license.LicenseeID, license.ID); err != nil {
			return err
		}
	}
	return nil
}

func containsID(ids []uint64, id uint64) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func removeID(ids []uint64, id uint64) ([]uint64, bool) {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
