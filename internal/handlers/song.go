// internal/handlers/song.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tunegrid/licensing-backend/internal/services"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

type SongHandler struct {
	catalogService *services.CatalogService
}

func NewSongHandler(catalogService *services.CatalogService) *SongHandler {
	return &SongHandler{
		catalogService: catalogService,
	}
}

// POST /v1/songs
func (h *SongHandler) CreateSong(c *gin.Context) {
	var req services.CreateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	song, err := h.catalogService.CreateSong(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, song)
}

// GET /v1/songs
func (h *SongHandler) GetAllSongs(c *gin.Context) {
	songs, err := h.catalogService.GetAllSongs()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, songs)
}

// GET /v1/songs/:id
func (h *SongHandler) GetSong(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	song, err := h.catalogService.GetSong(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, song)
}

// GET /v1/songs/:id/owner
func (h *SongHandler) GetSongOwner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	profile, err := h.catalogService.GetSongOwner(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// PUT /v1/songs/:id
func (h *SongHandler) UpdateSong(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	credential, exists := utils.GetCredentialFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	song, err := h.catalogService.UpdateSong(id, &req, credential)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, song)
}

// DELETE /v1/songs/:id
func (h *SongHandler) DeleteSong(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	credential, exists := utils.GetCredentialFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	song, err := h.catalogService.DeleteSong(id, credential)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, song)
}
