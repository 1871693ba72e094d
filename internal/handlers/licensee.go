// internal/handlers/licensee.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tunegrid/licensing-backend/internal/services"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

type LicenseeHandler struct {
	catalogService *services.CatalogService
	licenseService *services.LicenseService
}

func NewLicenseeHandler(catalogService *services.CatalogService, licenseService *services.LicenseService) *LicenseeHandler {
	return &LicenseeHandler{
		catalogService: catalogService,
		licenseService: licenseService,
	}
}

// POST /v1/licensees
func (h *LicenseeHandler) CreateLicensee(c *gin.Context) {
	var req services.CreateLicenseeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	licensee, err := h.catalogService.CreateLicensee(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, licensee)
}

// GET /v1/licensees/:id
func (h *LicenseeHandler) GetLicensee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	licensee, err := h.catalogService.GetLicensee(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, licensee)
}

// GET /v1/licensees/:id/licenses
func (h *LicenseeHandler) GetLicenseeLicenses(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	licenses, err := h.licenseService.GetLicenseeLicenses(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, licenses)
}
