package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradevision/internal/models"
	"gradevision/internal/repositories"
)

func seededAnalytics(t *testing.T) (AnalyticsService, StudentService) {
	t.Helper()
	studentRepo := repositories.NewMemoryStudentRepository()
	alertRepo := repositories.NewMemoryAlertRepository()
	require.NoError(t, repositories.SeedSampleData(studentRepo, alertRepo))
	students := NewStudentService(studentRepo)
	return NewAnalyticsService(students), students
}

func TestStudentStats(t *testing.T) {
	_, students := seededAnalytics(t)
	stats, err := students.Stats()
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalStudents)
	assert.Equal(t, map[string]int{"low": 3, "medium": 1, "high": 1}, stats.RiskDistribution)
	assert.InDelta(t, 3.22, stats.AverageGPA, 0.001)
	assert.InDelta(t, 83.8, stats.AverageAttendance, 0.001)
	assert.Equal(t, 2, stats.AtRiskCount)
}

func TestAnalyticsOverview(t *testing.T) {
	analytics, _ := seededAnalytics(t)
	overview, err := analytics.Overview()
	require.NoError(t, err)

	assert.Equal(t, 5, overview["totalStudents"])
	grades := overview["gradeDistribution"].(map[string]int)
	assert.Equal(t, 2, grades["10"])
	assert.Equal(t, 1, grades["9"])

	top := overview["topSubjects"].([]NamedCount)
	require.Len(t, top, 5)
	assert.Equal(t, 3, top[0].Count)
}

func TestAnalyticsAttendance(t *testing.T) {
	analytics, _ := seededAnalytics(t)
	data, err := analytics.Attendance()
	require.NoError(t, err)

	dist := data["distribution"].(map[string]int)
	assert.Equal(t, 2, dist["excellent"])
	assert.Equal(t, 2, dist["good"])
	assert.Equal(t, 1, dist["average"])
	assert.Equal(t, 0, dist["poor"])
	assert.Equal(t, 84.0, data["averageAttendance"])
}

func TestAnalyticsTrends(t *testing.T) {
	analytics, _ := seededAnalytics(t)
	trends, err := analytics.Trends()
	require.NoError(t, err)
	require.Len(t, trends, 5)

	sep := trends[0]
	assert.Equal(t, "Sep", sep.Month)
	// (3.5+3.2+3.8+2.8+3.3)/5
	assert.InDelta(t, 3.32, sep.AverageGPA, 0.001)

	// January has no history yet
	jan := trends[4]
	assert.Equal(t, "Jan", jan.Month)
	assert.Zero(t, jan.AverageGPA)
}

func TestAnalyticsRiskDistribution(t *testing.T) {
	analytics, _ := seededAnalytics(t)
	data, err := analytics.RiskDistribution()
	require.NoError(t, err)

	pct := data["percentages"].(map[string]float64)
	assert.Equal(t, 60.0, pct["low"])
	assert.Equal(t, 20.0, pct["medium"])
	assert.Equal(t, 20.0, pct["high"])

	high := data["highRiskStudents"].([]RankedStudent)
	require.Len(t, high, 1)
	assert.Equal(t, "Emily Davis", high[0].Name)
}

func TestAnalyticsClassComparison(t *testing.T) {
	analytics, _ := seededAnalytics(t)
	classes, err := analytics.ClassComparison()
	require.NoError(t, err)
	require.Len(t, classes, 4)

	// sorted by grade string
	assert.Equal(t, "10", classes[0].Grade)
	assert.Equal(t, 2, classes[0].StudentCount)
	assert.InDelta(t, 3.25, classes[0].AverageGPA, 0.001)
}

func TestAnalyticsPerformance(t *testing.T) {
	analytics, _ := seededAnalytics(t)
	data, err := analytics.Performance()
	require.NoError(t, err)

	ranges := data["gpaDistribution"].(map[string]int)
	assert.Equal(t, 2, ranges["A (3.7-4.0)"])
	assert.Equal(t, 1, ranges["B (3.0-3.6)"])
	assert.Equal(t, 2, ranges["C (2.0-2.9)"])

	top := data["topPerformers"].([]RankedStudent)
	require.NotEmpty(t, top)
	assert.Equal(t, "Michael Chen", top[0].Name)

	atRisk := data["atRiskStudents"].([]RankedStudent)
	assert.Len(t, atRisk, 2)
}

func TestStudentAnalytics(t *testing.T) {
	analytics, students := seededAnalytics(t)

	missing, err := analytics.StudentAnalytics("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := students.List(models.StudentFilter{})
	require.NoError(t, err)
	var michael *models.Student
	for _, s := range all {
		if s.StudentID == "STU003" {
			michael = s
		}
	}
	require.NotNil(t, michael)

	data, err := analytics.StudentAnalytics(michael.ID)
	require.NoError(t, err)
	metrics := data["metrics"].(map[string]any)
	assert.Equal(t, 3.9, metrics["gpa"])
	assert.Equal(t, 100, metrics["assignmentCompletion"])

	comparison := data["comparison"].(map[string]any)
	// 3.9 against a 3.22 class average
	assert.InDelta(t, 0.68, comparison["gpaVsClass"].(float64), 0.001)
}
