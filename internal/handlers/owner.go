// internal/handlers/owner.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tunegrid/licensing-backend/internal/services"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

type OwnerHandler struct {
	catalogService *services.CatalogService
	licenseService *services.LicenseService
}

func NewOwnerHandler(catalogService *services.CatalogService, licenseService *services.LicenseService) *OwnerHandler {
	return &OwnerHandler{
		catalogService: catalogService,
		licenseService: licenseService,
	}
}

// POST /v1/owners
func (h *OwnerHandler) CreateOwner(c *gin.Context) {
	var req services.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	callerKey, _ := utils.GetCredentialFromContext(c)
	owner, err := h.catalogService.CreateOwner(&req, callerKey)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, owner)
}

// GET /v1/owners/:id/licenses
func (h *OwnerHandler) GetOwnerLicenseRequests(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	licenses, err := h.licenseService.GetOwnerLicenseRequests(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, licenses)
}
