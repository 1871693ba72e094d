// internal/handlers/license.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tunegrid/licensing-backend/internal/services"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
}

type ApproveLicenseRequest struct {
	Cost uint32 `json:"cost"`
}

func NewLicenseHandler(licenseService *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
	}
}

// POST /v1/licenses
func (h *LicenseHandler) CreateLicenseRequest(c *gin.Context) {
	var req services.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	license, err := h.licenseService.CreateLicenseRequest(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, license)
}

// GET /v1/licenses/:id
func (h *LicenseHandler) GetLicense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	license, err := h.licenseService.GetLicense(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}

// POST /v1/licenses/:id/approve
func (h *LicenseHandler) ApproveLicense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	credential, exists := utils.GetCredentialFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req ApproveLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	license, err := h.licenseService.ApproveLicense(id, req.Cost, credential)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}

// POST /v1/licenses/:id/revoke
func (h *LicenseHandler) RevokeLicense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	credential, exists := utils.GetCredentialFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	license, err := h.licenseService.RevokeLicense(id, credential)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}
