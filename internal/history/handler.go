package history

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"medsaver/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /history?type=all|scan|search|reminder&q=term
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, summary, err := h.service.Page(c.Request.Context(), userID, filterFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"summary": summary,
	})
}

// GET /history/export
func (h *Handler) Export(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID, filterFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("medsaver-history-%s.csv", time.Now().Format(time.DateOnly))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := WriteCSV(c.Writer, entries); err != nil {
		_ = c.Error(err)
	}
}

func filterFrom(c *gin.Context) Filter {
	return Filter{
		Type:  c.DefaultQuery("type", TypeAll),
		Query: c.Query("q"),
	}
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
