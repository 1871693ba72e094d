// internal/services/license_service.go
package services

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tunegrid/licensing-backend/internal/models"
	"github.com/tunegrid/licensing-backend/internal/store"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

// LicenseService drives the license state machine: a request starts
// unapproved, approval lists it under the owner and the licensee and sets
// the agreed price, revocation delists it again. Approval and revocation
// are gated on the owner credential; anyone may file a request.
type LicenseService struct {
	store     store.Store
	integrity *IntegrityService
	auth      *AuthService
	mu        *sync.Mutex
}

type CreateLicenseRequest struct {
	SongID     uint64 `json:"song_id"`
	LicenseeID uint64 `json:"licensee_id"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
}

func NewLicenseService(st store.Store, integrity *IntegrityService, auth *AuthService, mu *sync.Mutex) *LicenseService {
	return &LicenseService{
		store:     st,
		integrity: integrity,
		auth:      auth,
		mu:        mu,
	}
}

// CreateLicenseRequest files a request against an existing song for an
// existing licensee. The owner id is copied from the song here and never
// re-derived afterwards.
func (s *LicenseService) CreateLicenseRequest(req *CreateLicenseRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.InvalidPayloadf("validation failed: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	song, found, err := s.store.Songs().Get(req.SongID)
	if err != nil {
		return nil, models.InvalidPayloadf("song id:%d could not be loaded: %v", req.SongID, err)
	}
	if !found {
		return nil, models.NotFoundf("song id:%d could not be found", req.SongID)
	}
	_, found, err = s.store.Licensees().Get(req.LicenseeID)
	if err != nil {
		return nil, models.InvalidPayloadf("licensee id:%d could not be loaded: %v", req.LicenseeID, err)
	}
	if !found {
		return nil, models.NotFoundf("licensee id:%d could not be found", req.LicenseeID)
	}

	id, err := s.store.NextID()
	if err != nil {
		return nil, models.InvalidPayloadf("license could not be created: %v", err)
	}

	license := models.License{
		ID:         id,
		SongID:     req.SongID,
		OwnerID:    song.OwnerID,
		LicenseeID: req.LicenseeID,
		Approved:   false,
		Price:      0,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := s.store.Licenses().Insert(id, license); err != nil {
		return nil, models.InvalidPayloadf("license id:%d could not be created: %v", id, err)
	}

	logrus.WithFields(logrus.Fields{
		"license_id":  id,
		"song_id":     req.SongID,
		"licensee_id": req.LicenseeID,
	}).Info("License requested")
	return &license, nil
}

// ApproveLicense moves a requested or revoked license to approved, listing
// it under owner and licensee before the license record is persisted. If
// either attach fails the license stays unapproved.
func (s *LicenseService) ApproveLicense(id uint64, cost uint32, credential string) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	license, found, err := s.store.Licenses().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("license id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("license id:%d could not be found", id)
	}
	if err := s.auth.RequireOwner(license.OwnerID, credential); err != nil {
		return nil, err
	}
	if license.Approved {
		return nil, models.AlreadyApprovedf("license id:%d has already been approved", id)
	}

	if err := s.integrity.AttachLicenseToOwner(license.OwnerID, license.ID); err != nil {
		return nil, err
	}
	if err := s.integrity.AttachLicenseToLicensee(license.LicenseeID, license.ID); err != nil {
		return nil, err
	}

	license.Approved = true
	license.Price = cost
	if err := s.store.Licenses().Insert(id, license); err != nil {
		return nil, models.InvalidPayloadf("license id:%d could not be approved: %v", id, err)
	}

	logrus.WithFields(logrus.Fields{"license_id": id, "price": cost}).Info("License approved")
	return &license, nil
}

// RevokeLicense moves an approved license back to unapproved, delisting it
// from the owner and the licensee first. A NotFound from either detach
// signals a desync and is surfaced to the caller; the price keeps its last
// approved value.
func (s *LicenseService) RevokeLicense(id uint64, credential string) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	license, found, err := s.store.Licenses().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("license id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("license id:%d could not be found", id)
	}
	if err := s.auth.RequireOwner(license.OwnerID, credential); err != nil {
		return nil, err
	}

	if err := s.integrity.DetachLicenseFromOwner(license.OwnerID, license.ID); err != nil {
		return nil, err
	}
	if err := s.integrity.DetachLicenseFromLicensee(license.LicenseeID, license.ID); err != nil {
		return nil, err
	}

	license.Approved = false
	if err := s.store.Licenses().Insert(id, license); err != nil {
		return nil, models.InvalidPayloadf("license id:%d could not be revoked: %v", id, err)
	}

	logrus.WithField("license_id", id).Info("License revoked")
	return &license, nil
}

func (s *LicenseService) GetLicense(id uint64) (*models.License, error) {
	license, found, err := s.store.Licenses().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("license id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("license id:%d could not be found", id)
	}
	return &license, nil
}

// GetOwnerLicenseRequests lists every license whose owner id matches,
// approved or not, by full scan and linear filter.
func (s *LicenseService) GetOwnerLicenseRequests(ownerID uint64) ([]models.License, error) {
	entries, err := s.store.Licenses().Scan()
	if err != nil {
		return nil, models.InvalidPayloadf("licenses could not be loaded: %v", err)
	}
	var licenses []models.License
	for _, entry := range entries {
		if entry.Record.OwnerID == ownerID {
			licenses = append(licenses, entry.Record)
		}
	}
	if len(licenses) == 0 {
		return nil, models.NotFoundf("no licenses could be found for owner id:%d", ownerID)
	}
	return licenses, nil
}

// GetLicenseeLicenses lists every license whose licensee id matches.
func (s *LicenseService) GetLicenseeLicenses(licenseeID uint64) ([]models.License, error) {
	entries, err := s.store.Licenses().Scan()
	if err != nil {
		return nil, models.InvalidPayloadf("licenses could not be loaded: %v", err)
	}
	var licenses []models.License
	for _, entry := range entries {
		if entry.Record.LicenseeID == licenseeID {
			licenses = append(licenses, entry.Record)
		}
	}
	if len(licenses) == 0 {
		return nil, models.NotFoundf("no licenses could be found for licensee id:%d", licenseeID)
	}
	return licenses, nil
}
