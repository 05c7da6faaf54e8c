package medicine

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"medsaver/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

type AdminHandler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

type searchRequest struct {
	SearchQuery string `json:"searchQuery"`
}

type favoriteRequest struct {
	MedicineName    string          `json:"medicine_name"`
	MedicineDetails json.RawMessage `json:"medicine_details"`
}

// POST /medicines/search
func (h *Handler) Search(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), userID, req.SearchQuery)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /medicines/suggestions
func (h *Handler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": h.service.Suggestions()})
}

// POST /favorites
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fav, err := h.service.AddFavorite(c.Request.Context(), userID, req.MedicineName, req.MedicineDetails)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// GET /favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	favs, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

// DELETE /favorites/:id
func (h *Handler) DeleteFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /admin/medicines/import
// Takes multipart "file" or a raw CSV body of any other content type.
func (a *AdminHandler) Import(c *gin.Context) {
	var body io.Reader = c.Request.Body

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		defer file.Close()
		body = file
	}

	n, err := a.service.ImportCSV(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
