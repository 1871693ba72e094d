// internal/services/catalog_service.go
package services

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tunegrid/licensing-backend/internal/models"
	"github.com/tunegrid/licensing-backend/internal/store"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

// CatalogService owns the song, owner, and licensee operations. Mutations
// take the shared mutation lock so that at most one mutating operation is in
// flight at a time; reads therefore always observe a consistent snapshot.
// Multi-step mutations are best-effort: a failing later step does not roll
// back the steps already committed.
type CatalogService struct {
	store     store.Store
	integrity *IntegrityService
	auth      *AuthService
	mu        *sync.Mutex
}

type CreateOwnerRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type CreateSongRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Artist  string `json:"artist" validate:"required,max=100"`
	OwnerID uint64 `json:"owner_id"`
	Year    uint32 `json:"year" validate:"required"`
	Genre   string `json:"genre" validate:"required,max=50"`
	Price   uint32 `json:"price"`
}

type UpdateSongRequest struct {
	Title  string `json:"title" validate:"required,max=200"`
	Artist string `json:"artist" validate:"required,max=100"`
	Year   uint32 `json:"year" validate:"required"`
	Genre  string `json:"genre" validate:"required,max=50"`
	Price  uint32 `json:"price"`
}

type CreateLicenseeRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

func NewCatalogService(st store.Store, integrity *IntegrityService, auth *AuthService, mu *sync.Mutex) *CatalogService {
	return &CatalogService{
		store:     st,
		integrity: integrity,
		auth:      auth,
		mu:        mu,
	}
}

// CreateOwner registers a rights holder and binds the caller's credential to
// the new record. The credential is returned exactly once, in the created
// owner.
func (s *CatalogService) CreateOwner(req *CreateOwnerRequest, callerKey string) (*models.Owner, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.InvalidPayloadf("validation failed: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.auth.BindCredential(callerKey, req.Name)
	if err != nil {
		return nil, err
	}

	id, err := s.store.NextID()
	if err != nil {
		return nil, models.InvalidPayloadf("owner name:%s could not be created: %v", req.Name, err)
	}

	owner := models.Owner{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		AuthKey:    key,
		SongIDs:    []uint64{},
		LicenseIDs: []uint64{},
	}
	if err := s.store.Owners().Insert(id, owner); err != nil {
		return nil, models.InvalidPayloadf("owner name:%s could not be created: %v", req.Name, err)
	}

	logrus.WithFields(logrus.Fields{"owner_id": id, "name": req.Name}).Info("Owner created")
	return &owner, nil
}

// CreateSong registers a song under an existing owner and appends its id to
// the owner's song list.
func (s *CatalogService) CreateSong(req *CreateSongRequest) (*models.Song, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.InvalidPayloadf("validation failed: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.NextID()
	if err != nil {
		return nil, models.InvalidPayloadf("song title:%s could not be created: %v", req.Title, err)
	}

	song := models.Song{
		ID:      id,
		Title:   req.Title,
		Artist:  req.Artist,
		OwnerID: req.OwnerID,
		Year:    req.Year,
		Genre:   req.Genre,
		Price:   req.Price,
	}

	if err := s.integrity.AttachSongToOwner(song.OwnerID, song.ID); err != nil {
		return nil, err
	}
	if err := s.store.Songs().Insert(id, song); err != nil {
		return nil, models.InvalidPayloadf("song title:%s could not be created: %v", req.Title, err)
	}

	logrus.WithFields(logrus.Fields{"song_id": id, "owner_id": req.OwnerID}).Info("Song created")
	return &song, nil
}

// UpdateSong replaces the mutable song fields. Only the registered owner may
// update a song.
func (s *CatalogService) UpdateSong(id uint64, req *UpdateSongRequest, credential string) (*models.Song, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.InvalidPayloadf("validation failed: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	song, found, err := s.store.Songs().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("song id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("song id:%d could not be found", id)
	}
	if err := s.auth.RequireOwner(song.OwnerID, credential); err != nil {
		return nil, err
	}

	song.Title = req.Title
	song.Artist = req.Artist
	song.Year = req.Year
	song.Genre = req.Genre
	song.Price = req.Price

	if err := s.store.Songs().Insert(id, song); err != nil {
		return nil, models.InvalidPayloadf("song id:%d could not be updated: %v", id, err)
	}
	return &song, nil
}

// DeleteSong removes a song after delisting it everywhere. The cascade and
// the owner-list detach must both succeed before the song record itself is
// removed; if either fails, the record stays addressable and the error
// reports that the song was not removed.
func (s *CatalogService) DeleteSong(id uint64, credential string) (*models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, found, err := s.store.Songs().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("song id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("song id:%d could not be found", id)
	}
	if err := s.auth.RequireOwner(song.OwnerID, credential); err != nil {
		return nil, err
	}

	if err := s.integrity.CascadeDeleteSong(id); err != nil {
		return nil, wrapDeleteAborted(id, err)
	}
	if err := s.integrity.DetachSongFromOwner(id); err != nil {
		return nil, wrapDeleteAborted(id, err)
	}

	removed, found, err := s.store.Songs().Remove(id)
	if err != nil {
		return nil, models.InvalidPayloadf("song id:%d could not be removed: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("song id:%d could not be found", id)
	}

	logrus.WithFields(logrus.Fields{"song_id": id, "owner_id": song.OwnerID}).Info("Song deleted")
	return &removed, nil
}

func (s *CatalogService) GetSong(id uint64) (*models.Song, error) {
	song, found, err := s.store.Songs().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("song id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("song id:%d could not be found", id)
	}
	return &song, nil
}

// GetAllSongs lists every song in ascending id order. An empty catalog is
// reported as NotFound.
func (s *CatalogService) GetAllSongs() ([]models.Song, error) {
	entries, err := s.store.Songs().Scan()
	if err != nil {
		return nil, models.InvalidPayloadf("songs could not be loaded: %v", err)
	}
	if len(entries) == 0 {
		return nil, models.NotFoundf("no licensable songs could be found")
	}
	songs := make([]models.Song, 0, len(entries))
	for _, entry := range entries {
		songs = append(songs, entry.Record)
	}
	return songs, nil
}

// GetSongOwner resolves a song's owner and returns the public profile,
// without the credential or reference lists.
func (s *CatalogService) GetSongOwner(id uint64) (*models.OwnerProfile, error) {
	song, found, err := s.store.Songs().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("song id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("song id:%d could not be found", id)
	}
	owner, found, err := s.store.Owners().Get(song.OwnerID)
	if err != nil {
		return nil, models.InvalidPayloadf("owner id:%d could not be loaded: %v", song.OwnerID, err)
	}
	if !found {
		return nil, models.NotFoundf("owner id:%d could not be found", song.OwnerID)
	}
	profile := owner.Profile()
	return &profile, nil
}

func (s *CatalogService) CreateLicensee(req *CreateLicenseeRequest) (*models.Licensee, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.InvalidPayloadf("validation failed: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.NextID()
	if err != nil {
		return nil, models.InvalidPayloadf("licensee name:%s could not be created: %v", req.Name, err)
	}

	licensee := models.Licensee{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Licenses: []uint64{},
	}
	if err := s.store.Licensees().Insert(id, licensee); err != nil {
		return nil, models.InvalidPayloadf("licensee name:%s could not be created: %v", req.Name, err)
	}

	logrus.WithFields(logrus.Fields{"licensee_id": id, "name": req.Name}).Info("Licensee created")
	return &licensee, nil
}

func (s *CatalogService) GetLicensee(id uint64) (*models.Licensee, error) {
	licensee, found, err := s.store.Licensees().Get(id)
	if err != nil {
		return nil, models.InvalidPayloadf("licensee id:%d could not be loaded: %v", id, err)
	}
	if !found {
		return nil, models.NotFoundf("licensee id:%d could not be found", id)
	}
	return &licensee, nil
}

// wrapDeleteAborted keeps the failing step's error code but makes clear the
// song record itself was not removed.
func wrapDeleteAborted(songID uint64, err error) error {
	if apiErr, ok := err.(*models.Error); ok {
		return &models.Error{
			Code:    apiErr.Code,
			Message: fmt.Sprintf("song id:%d was not removed: %s", songID, apiErr.Message),
		}
	}
	return models.InvalidPayloadf("song id:%d was not removed: %v", songID, err)
}
