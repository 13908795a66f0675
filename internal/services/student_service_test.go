package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradevision/internal/models"
	"gradevision/internal/repositories"
)

func newStudentFixture(t *testing.T) StudentService {
	t.Helper()
	return NewStudentService(repositories.NewMemoryStudentRepository())
}

func TestStudentCreateFillsDefaults(t *testing.T) {
	svc := newStudentFixture(t)
	s := &models.Student{StudentID: "STU100", FirstName: "New", LastName: "Kid", Email: "k@s.edu"}
	require.NoError(t, svc.Create(s))

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, models.RiskMedium, s.RiskLevel)
	assert.NotNil(t, s.Subjects)
	assert.NotNil(t, s.Badges)
}

func TestStudentCreateRejectsDuplicateStudentID(t *testing.T) {
	svc := newStudentFixture(t)
	require.NoError(t, svc.Create(&models.Student{StudentID: "STU100", FirstName: "First", LastName: "Kid", Email: "k@s.edu"}))

	err := svc.Create(&models.Student{StudentID: "STU100", FirstName: "Second", LastName: "Kid", Email: "k2@s.edu"})
	require.ErrorIs(t, err, ErrStudentIDTaken)

	// only the first record exists
	all, err := svc.List(models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "First", all[0].FirstName)
}

func TestStudentUpdatePreservesIdentity(t *testing.T) {
	svc := newStudentFixture(t)
	s := &models.Student{StudentID: "STU100", FirstName: "New", LastName: "Kid", Email: "k@s.edu"}
	require.NoError(t, svc.Create(s))

	updated, err := svc.Update(s.ID, &models.Student{
		StudentID: "HACKED", FirstName: "Renamed", LastName: "Kid",
		Email: "k@s.edu", CurrentGPA: 3.2, RiskLevel: models.RiskLow,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, s.ID, updated.ID)
	assert.Equal(t, "STU100", updated.StudentID, "studentId is immutable")
	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, 3.2, updated.CurrentGPA)
}

func TestStudentUpdateMissing(t *testing.T) {
	svc := newStudentFixture(t)
	updated, err := svc.Update("nope", &models.Student{FirstName: "X"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestStudentListFilters(t *testing.T) {
	svc := newStudentFixture(t)
	require.NoError(t, svc.Create(&models.Student{StudentID: "A1", Grade: "10", Section: "A", RiskLevel: models.RiskLow}))
	require.NoError(t, svc.Create(&models.Student{StudentID: "A2", Grade: "10", Section: "B", RiskLevel: models.RiskHigh}))
	require.NoError(t, svc.Create(&models.Student{StudentID: "A3", Grade: "11", Section: "A", RiskLevel: models.RiskHigh}))

	grade10, err := svc.List(models.StudentFilter{Grade: "10"})
	require.NoError(t, err)
	assert.Len(t, grade10, 2)

	highRisk, err := svc.List(models.StudentFilter{RiskLevel: "high"})
	require.NoError(t, err)
	assert.Len(t, highRisk, 2)

	narrow, err := svc.List(models.StudentFilter{Grade: "10", Section: "A"})
	require.NoError(t, err)
	require.Len(t, narrow, 1)
	assert.Equal(t, "A1", narrow[0].StudentID)
}

func TestStudentDelete(t *testing.T) {
	svc := newStudentFixture(t)
	s := &models.Student{StudentID: "STU100"}
	require.NoError(t, svc.Create(s))

	deleted, err := svc.Delete(s.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(s.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	loaded, err := svc.GetByID(s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStudentStatsEmptyStore(t *testing.T) {
	svc := newStudentFixture(t)
	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalStudents)
	assert.Zero(t, stats.AverageGPA)
}
