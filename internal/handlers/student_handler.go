package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradevision/internal/models"
	"gradevision/internal/services"
)

type StudentHandler struct {
	service services.StudentService
}

func NewStudentHandler(service services.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Grade:     c.Query("grade"),
		Section:   c.Query("section"),
		RiskLevel: c.Query("riskLevel"),
	}
	students, err := h.service.List(filter)
	if err != nil {
		log.Printf("[students][list] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to load students")
		return
	}
	ok(c, gin.H{"data": students, "count": len(students)})
}

func (h *StudentHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		log.Printf("[students][stats] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	ok(c, gin.H{"data": stats})
}

func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load student")
		return
	}
	if student == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ok(c, gin.H{"data": student})
}

func (h *StudentHandler) Performance(c *gin.Context) {
	student, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load student")
		return
	}
	if student == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ok(c, gin.H{"data": gin.H{
		"studentId":          student.ID,
		"currentGPA":         student.CurrentGPA,
		"attendance":         student.Attendance,
		"performanceHistory": student.PerformanceHistory,
	}})
}

func (h *StudentHandler) Create(c *gin.Context) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		fail(c, http.StatusBadRequest, "Invalid student payload")
		return
	}
	if err := h.service.Create(&student); err != nil {
		if errors.Is(err, services.ErrStudentIDTaken) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[students][create] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to create student")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": student})
}

func (h *StudentHandler) Update(c *gin.Context) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		fail(c, http.StatusBadRequest, "Invalid student payload")
		return
	}
	updated, err := h.service.Update(c.Param("id"), &student)
	if err != nil {
		log.Printf("[students][update] failed id=%s: %v", c.Param("id"), err)
		fail(c, http.StatusInternalServerError, "Failed to update student")
		return
	}
	if updated == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ok(c, gin.H{"data": updated})
}

func (h *StudentHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Param("id"))
	if err != nil {
		log.Printf("[students][delete] failed id=%s: %v", c.Param("id"), err)
		fail(c, http.StatusInternalServerError, "Failed to delete student")
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ok(c, gin.H{"message": "Student deleted"})
}
