package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradevision/internal/models"
	"gradevision/internal/services"
)

type PredictionHandler struct {
	students    services.StudentService
	predictions services.PredictionService
}

func NewPredictionHandler(students services.StudentService, predictions services.PredictionService) *PredictionHandler {
	return &PredictionHandler{students: students, predictions: predictions}
}

func (h *PredictionHandler) loadStudent(c *gin.Context) *models.Student {
	student, err := h.students.GetByID(c.Param("id"))
	if err != nil {
		log.Printf("[predict][load] failed id=%s: %v", c.Param("id"), err)
		fail(c, http.StatusInternalServerError, "Failed to load student")
		return nil
	}
	if student == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return nil
	}
	return student
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	student := h.loadStudent(c)
	if student == nil {
		return
	}
	prediction := h.predictions.Predict(student)
	ok(c, gin.H{"data": gin.H{
		"studentId":   student.ID,
		"studentName": student.FirstName + " " + student.LastName,
		"prediction":  prediction,
	}})
}

func (h *PredictionHandler) PredictAll(c *gin.Context) {
	students, err := h.students.List(models.StudentFilter{})
	if err != nil {
		log.Printf("[predict][batch] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to load students")
		return
	}
	results := make([]gin.H, 0, len(students))
	for _, s := range students {
		results = append(results, gin.H{
			"studentId":   s.ID,
			"studentName": s.FirstName + " " + s.LastName,
			"prediction":  h.predictions.Predict(s),
		})
	}
	ok(c, gin.H{"data": results, "count": len(results)})
}

func (h *PredictionHandler) Recommendations(c *gin.Context) {
	student := h.loadStudent(c)
	if student == nil {
		return
	}
	prediction := h.predictions.Predict(student)
	ok(c, gin.H{"data": gin.H{
		"studentId":       student.ID,
		"riskLevel":       prediction.RiskLevel,
		"recommendations": h.predictions.Recommendations(student, prediction),
	}})
}

func (h *PredictionHandler) Insights(c *gin.Context) {
	student := h.loadStudent(c)
	if student == nil {
		return
	}
	prediction := h.predictions.Predict(student)
	ok(c, gin.H{"data": gin.H{
		"studentId": student.ID,
		"insights":  h.predictions.Insights(student, prediction),
	}})
}

func (h *PredictionHandler) FeatureImportance(c *gin.Context) {
	student := h.loadStudent(c)
	if student == nil {
		return
	}
	prediction := h.predictions.Predict(student)
	ok(c, gin.H{"data": gin.H{
		"studentId":         student.ID,
		"featureImportance": prediction.FeatureImportance,
	}})
}
