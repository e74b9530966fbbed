package handler

import (
	"log"

	"lekturai/dto"
	"lekturai/repository"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	HistoryRepo *repository.HistoryRepo
}

func NewHistoryHandler(repo *repository.HistoryRepo) *HistoryHandler {
	return &HistoryHandler{HistoryRepo: repo}
}

// GetRange pages through the caller's history, newest first, by 1-based
// positions.
func (h *HistoryHandler) GetRange(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var query dto.HistoryRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "Invalid history query")
		return
	}

	entries, err := h.HistoryRepo.GetEntriesByRange(c.Request.Context(), userID.(string), query.Type, query.FromPos, query.ToPos)
	if err != nil {
		log.Printf("Error reading history for %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to read history")
		return
	}

	utils.Success(c, entries)
}

func (h *HistoryHandler) DeleteEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	deleted, err := h.HistoryRepo.DeleteEntry(c.Request.Context(), userID.(string), c.Param("entry_id"))
	if err != nil {
		log.Printf("Error deleting history entry for %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to delete history entry")
		return
	}
	if deleted == 0 {
		utils.NotFound(c, "History entry not found")
		return
	}

	utils.Success(c, gin.H{"message": "History entry deleted"})
}
