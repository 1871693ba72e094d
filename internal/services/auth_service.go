// internal/services/auth_service.go
package services

import (
	"github.com/tunegrid/licensing-backend/internal/models"
	"github.com/tunegrid/licensing-backend/internal/store"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

// AuthService gates mutations on an owner's songs and licenses. An owner's
// credential is bound once, when the owner record is created, and is never
// reassigned; authorization is a verbatim comparison of the presented
// credential against the stored one.
type AuthService struct {
	store store.Store
}

func NewAuthService(st store.Store) *AuthService {
	return &AuthService{store: st}
}

// RequireOwner fails with NotFound when the owner does not exist and with
// Unauthorized when the credential does not match.
func (s *AuthService) RequireOwner(ownerID uint64, credential string) error {
	owner, found, err := s.store.Owners().Get(ownerID)
	if err != nil {
		return models.InvalidPayloadf("owner id:%d could not be loaded: %v", ownerID, err)
	}
	if !found {
		return models.NotFoundf("owner id:%d could not be found", ownerID)
	}
	if owner.AuthKey != credential {
		return models.Unauthorizedf("auth key is invalid, only the song owner may perform this action")
	}
	return nil
}

// BindCredential picks the credential to store on a new owner: the key the
// creating caller presented, or a freshly minted one when the caller came
// without a key.
func (s *AuthService) BindCredential(callerKey, ownerName string) (string, error) {
	if callerKey != "" {
		return callerKey, nil
	}
	key, err := utils.MintCredential(ownerName)
	if err != nil {
		return "", models.InvalidPayloadf("credential for owner %s could not be minted: %v", ownerName, err)
	}
	return key, nil
}
