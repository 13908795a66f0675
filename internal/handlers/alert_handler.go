package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradevision/internal/models"
	"gradevision/internal/services"
)

type AlertHandler struct {
	service services.AlertService
}

func NewAlertHandler(service services.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) List(c *gin.Context) {
	filter := models.AlertFilter{
		StudentID:  c.Query("studentId"),
		Type:       c.Query("type"),
		Severity:   c.Query("severity"),
		UnreadOnly: c.Query("unreadOnly") == "true",
	}
	alerts, err := h.service.List(filter)
	if err != nil {
		log.Printf("[alerts][list] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to load alerts")
		return
	}
	ok(c, gin.H{"data": alerts, "count": len(alerts)})
}

func (h *AlertHandler) Get(c *gin.Context) {
	alert, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load alert")
		return
	}
	if alert == nil {
		fail(c, http.StatusNotFound, "Alert not found")
		return
	}
	ok(c, gin.H{"data": alert})
}

func (h *AlertHandler) Create(c *gin.Context) {
	var alert models.Alert
	if err := c.ShouldBindJSON(&alert); err != nil {
		fail(c, http.StatusBadRequest, "Invalid alert payload")
		return
	}
	if alert.StudentID == "" || alert.Title == "" {
		fail(c, http.StatusBadRequest, "studentId and title are required")
		return
	}
	if err := h.service.Create(&alert); err != nil {
		log.Printf("[alerts][create] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to create alert")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": alert})
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	alert, err := h.service.MarkRead(c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update alert")
		return
	}
	if alert == nil {
		fail(c, http.StatusNotFound, "Alert not found")
		return
	}
	ok(c, gin.H{"data": alert})
}

func (h *AlertHandler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Query("studentId")); err != nil {
		log.Printf("[alerts][mark-all-read] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to update alerts")
		return
	}
	ok(c, gin.H{"message": "All alerts marked as read"})
}

func (h *AlertHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete alert")
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Alert not found")
		return
	}
	ok(c, gin.H{"message": "Alert deleted"})
}

func (h *AlertHandler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Query("studentId"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to count alerts")
		return
	}
	ok(c, gin.H{"data": gin.H{"unread": count}})
}
