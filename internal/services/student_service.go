package services

import (
	"math"

	"github.com/google/uuid"

	"gradevision/internal/models"
	"gradevision/internal/repositories"
)

type StudentService interface {
	Create(student *models.Student) error
	GetByID(id string) (*models.Student, error)
	Update(id string, updated *models.Student) (*models.Student, error)
	Delete(id string) (bool, error)
	List(filter models.StudentFilter) ([]*models.Student, error)
	Stats() (*models.StudentStats, error)
}

type studentService struct {
	repo repositories.StudentRepository
}

func NewStudentService(repo repositories.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) Create(student *models.Student) error {
	if student.StudentID != "" {
		existing, err := s.repo.GetByStudentID(student.StudentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrStudentIDTaken
		}
	}
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.RiskLevel == "" {
		student.RiskLevel = models.RiskMedium
	}
	if student.Subjects == nil {
		student.Subjects = []string{}
	}
	if student.Badges == nil {
		student.Badges = []string{}
	}
	return s.repo.Create(student)
}

func (s *studentService) GetByID(id string) (*models.Student, error) {
	return s.repo.GetByID(id)
}

func (s *studentService) Update(id string, updated *models.Student) (*models.Student, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	updated.ID = existing.ID
	updated.StudentID = existing.StudentID
	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

func (s *studentService) Delete(id string) (bool, error) {
	return s.repo.Delete(id)
}

func (s *studentService) List(filter models.StudentFilter) ([]*models.Student, error) {
	return s.repo.List(filter)
}

func (s *studentService) Stats() (*models.StudentStats, error) {
	students, err := s.repo.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}
	stats := &models.StudentStats{
		TotalStudents:    len(students),
		RiskDistribution: map[string]int{"low": 0, "medium": 0, "high": 0},
	}
	if len(students) == 0 {
		return stats, nil
	}

	var gpaSum, attSum float64
	for _, st := range students {
		stats.RiskDistribution[string(st.RiskLevel)]++
		gpaSum += st.CurrentGPA
		attSum += st.Attendance
	}
	n := float64(len(students))
	stats.AverageGPA = round2(gpaSum / n)
	stats.AverageAttendance = math.Round(attSum/n*10) / 10
	stats.AtRiskCount = stats.RiskDistribution["high"] + stats.RiskDistribution["medium"]
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
