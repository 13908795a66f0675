package handlers

import (
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"gradevision/internal/models"
	"gradevision/internal/pdf"
	"gradevision/internal/services"
)

type ReportHandler struct {
	students  services.StudentService
	analytics services.AnalyticsService
	generator pdf.Generator
}

func NewReportHandler(students services.StudentService, analytics services.AnalyticsService, generator pdf.Generator) *ReportHandler {
	return &ReportHandler{students: students, analytics: analytics, generator: generator}
}

func (h *ReportHandler) SummaryPDF(c *gin.Context) {
	stats, err := h.students.Stats()
	if err != nil {
		log.Printf("[reports][summary] stats failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to build report")
		return
	}
	trends, err := h.analytics.Trends()
	if err != nil {
		log.Printf("[reports][summary] trends failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to build report")
		return
	}
	students, err := h.students.List(models.StudentFilter{})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	sort.Slice(students, func(i, j int) bool {
		return students[i].CurrentGPA > students[j].CurrentGPA
	})
	top := students
	if len(top) > 5 {
		top = top[:5]
	}

	data := pdf.SummaryData{
		GeneratedAt:       time.Now(),
		TotalStudents:     stats.TotalStudents,
		AverageGPA:        stats.AverageGPA,
		AverageAttendance: stats.AverageAttendance,
		AtRiskCount:       stats.AtRiskCount,
		RiskDistribution:  stats.RiskDistribution,
	}
	for _, t := range trends {
		data.TrendRows = append(data.TrendRows, pdf.TrendRow{
			Month:             t.Month,
			AverageGPA:        t.AverageGPA,
			AverageAttendance: t.AverageAttendance,
		})
	}
	for _, s := range top {
		data.TopPerformers = append(data.TopPerformers, pdf.PerformerRow{
			Name:  s.FirstName + " " + s.LastName,
			Grade: s.Grade,
			GPA:   s.CurrentGPA,
		})
	}

	body, err := h.generator.GenerateSummary(data)
	if err != nil {
		log.Printf("[reports][summary] pdf render failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to render report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="summary-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
