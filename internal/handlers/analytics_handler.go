package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradevision/internal/services"
)

type AnalyticsHandler struct {
	service services.AnalyticsService
}

func NewAnalyticsHandler(service services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) respond(c *gin.Context, op string, data any, err error) {
	if err != nil {
		log.Printf("[analytics][%s] failed: %v", op, err)
		fail(c, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}
	ok(c, gin.H{"data": data})
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	data, err := h.service.Overview()
	h.respond(c, "overview", data, err)
}

func (h *AnalyticsHandler) Attendance(c *gin.Context) {
	data, err := h.service.Attendance()
	h.respond(c, "attendance", data, err)
}

func (h *AnalyticsHandler) Performance(c *gin.Context) {
	data, err := h.service.Performance()
	h.respond(c, "performance", data, err)
}

func (h *AnalyticsHandler) Engagement(c *gin.Context) {
	data, err := h.service.Engagement()
	h.respond(c, "engagement", data, err)
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
	data, err := h.service.Trends()
	h.respond(c, "trends", data, err)
}

func (h *AnalyticsHandler) RiskDistribution(c *gin.Context) {
	data, err := h.service.RiskDistribution()
	h.respond(c, "risk", data, err)
}

func (h *AnalyticsHandler) SubjectPerformance(c *gin.Context) {
	ok(c, gin.H{"data": h.service.SubjectPerformance()})
}

func (h *AnalyticsHandler) ClassComparison(c *gin.Context) {
	data, err := h.service.ClassComparison()
	h.respond(c, "classes", data, err)
}

func (h *AnalyticsHandler) Student(c *gin.Context) {
	data, err := h.service.StudentAnalytics(c.Param("id"))
	if err != nil {
		log.Printf("[analytics][student] failed id=%s: %v", c.Param("id"), err)
		fail(c, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}
	if data == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ok(c, gin.H{"data": data})
}
