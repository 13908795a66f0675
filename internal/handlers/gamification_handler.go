package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gradevision/internal/models"
	"gradevision/internal/services"
)

type GamificationHandler struct {
	students     services.StudentService
	gamification services.GamificationService
}

func NewGamificationHandler(students services.StudentService, gamification services.GamificationService) *GamificationHandler {
	return &GamificationHandler{students: students, gamification: gamification}
}

func (h *GamificationHandler) Badges(c *gin.Context) {
	ok(c, gin.H{"data": h.gamification.AllBadges()})
}

func (h *GamificationHandler) Profile(c *gin.Context) {
	student, err := h.students.GetByID(c.Param("id"))
	if err != nil {
		log.Printf("[gamification][profile] failed id=%s: %v", c.Param("id"), err)
		fail(c, http.StatusInternalServerError, "Failed to load student")
		return
	}
	if student == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ok(c, gin.H{"data": h.gamification.Profile(student)})
}

func (h *GamificationHandler) Eligible(c *gin.Context) {
	student, err := h.students.GetByID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load student")
		return
	}
	if student == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ok(c, gin.H{"data": h.gamification.EligibleBadges(student)})
}

func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	sortBy := c.DefaultQuery("sortBy", "points")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	students, err := h.students.List(models.StudentFilter{})
	if err != nil {
		log.Printf("[gamification][leaderboard] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to load students")
		return
	}
	ok(c, gin.H{"data": h.gamification.Leaderboard(students, sortBy, limit)})
}

// ClaimReward acknowledges a claim; reward fulfillment is handled outside
// this service.
func (h *GamificationHandler) ClaimReward(c *gin.Context) {
	var req struct {
		RewardID string `json:"rewardId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "rewardId is required")
		return
	}
	ok(c, gin.H{"message": "Reward claimed", "data": gin.H{"rewardId": req.RewardID}})
}
