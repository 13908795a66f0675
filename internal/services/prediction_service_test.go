package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradevision/internal/models"
)

func strongStudent() *models.Student {
	return &models.Student{
		ID: "s1", FirstName: "Michael", LastName: "Chen",
		Attendance: 96, CurrentGPA: 3.9, Streak: 30, StudyHours: 35,
		AssignmentsCompleted: 50, TotalAssignments: 50,
		PerformanceHistory: []models.PerformanceEntry{
			{Month: "Sep", GPA: 3.8}, {Month: "Oct", GPA: 3.85},
			{Month: "Nov", GPA: 3.9}, {Month: "Dec", GPA: 3.9},
		},
	}
}

func strugglingStudent() *models.Student {
	return &models.Student{
		ID: "s2", FirstName: "Emily", LastName: "Davis",
		Attendance: 65, CurrentGPA: 2.3, Streak: 2, StudyHours: 12,
		AssignmentsCompleted: 30, TotalAssignments: 48,
		PerformanceHistory: []models.PerformanceEntry{
			{Month: "Sep", GPA: 2.8}, {Month: "Oct", GPA: 2.6},
			{Month: "Nov", GPA: 2.4}, {Month: "Dec", GPA: 2.3},
		},
	}
}

func TestPredictBounds(t *testing.T) {
	svc := NewPredictionService()
	for _, s := range []*models.Student{strongStudent(), strugglingStudent(), {ID: "empty"}} {
		p := svc.Predict(s)
		assert.GreaterOrEqual(t, p.PerformanceScore, 0)
		assert.LessOrEqual(t, p.PerformanceScore, 100)
		assert.GreaterOrEqual(t, p.PredictedGPA, 0.0)
		assert.LessOrEqual(t, p.PredictedGPA, 4.0)
		assert.GreaterOrEqual(t, p.Confidence, 75)
		assert.LessOrEqual(t, p.Confidence, 95)
		assert.Contains(t, []string{"low", "medium", "high"}, p.RiskLevel)
	}
}

func TestPredictSeparatesRiskLevels(t *testing.T) {
	svc := NewPredictionService()

	// weighted sum ~0.94 for the strong student; even with the worst-case
	// variance it stays above the low-risk threshold
	strong := svc.Predict(strongStudent())
	assert.Equal(t, "low", strong.RiskLevel)
	assert.Greater(t, strong.PerformanceScore, 80)

	weak := svc.Predict(strugglingStudent())
	assert.NotEqual(t, "low", weak.RiskLevel)
	assert.Less(t, weak.PerformanceScore, strong.PerformanceScore)
}

func TestPredictFeatureImportance(t *testing.T) {
	svc := NewPredictionService()
	p := svc.Predict(strongStudent())

	require.Len(t, p.FeatureImportance, 5)
	for i := 1; i < len(p.FeatureImportance); i++ {
		assert.GreaterOrEqual(t, p.FeatureImportance[i-1].Contribution, p.FeatureImportance[i].Contribution,
			"importance must be sorted by contribution")
	}
	// GPA carries the largest weight and the strong student maxes it out
	assert.Equal(t, "Current GPA", p.FeatureImportance[0].Feature)
	assert.Equal(t, "high", p.FeatureImportance[0].Impact)
}

func TestCalculateTrend(t *testing.T) {
	assert.Equal(t, "stable", calculateTrend(nil))
	assert.Equal(t, "stable", calculateTrend([]models.PerformanceEntry{{GPA: 3.0}}))

	improving := []models.PerformanceEntry{{GPA: 2.5}, {GPA: 2.8}, {GPA: 3.1}}
	assert.Equal(t, "improving", calculateTrend(improving))

	declining := []models.PerformanceEntry{{GPA: 3.5}, {GPA: 3.2}, {GPA: 3.0}}
	assert.Equal(t, "declining", calculateTrend(declining))

	// only the last three points count
	longHistory := []models.PerformanceEntry{{GPA: 1.0}, {GPA: 3.4}, {GPA: 3.4}, {GPA: 3.45}}
	assert.Equal(t, "stable", calculateTrend(longHistory))
}

func TestRecommendationsForStrugglingStudent(t *testing.T) {
	svc := NewPredictionService()
	s := strugglingStudent()
	p := svc.Predict(s)

	recs := svc.Recommendations(s, p)
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 5)

	if p.RiskLevel == "high" {
		assert.Equal(t, "Urgent", recs[0].Category)
		assert.Equal(t, "critical", recs[0].Priority)
	}
	for _, r := range recs {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.ActionItems)
	}
}

func TestRecommendationsForStrongStudent(t *testing.T) {
	svc := NewPredictionService()
	s := strongStudent()
	p := svc.Predict(s)

	// nothing below 70%, nothing to recommend
	recs := svc.Recommendations(s, p)
	assert.Empty(t, recs)
}

func TestInsights(t *testing.T) {
	svc := NewPredictionService()

	s := strongStudent()
	p := svc.Predict(s)
	insights := svc.Insights(s, p)
	require.NotEmpty(t, insights)
	assert.Equal(t, "Excellent Performance", insights[0].Title)

	weak := strugglingStudent()
	wp := svc.Predict(weak)
	weakInsights := svc.Insights(weak, wp)
	require.NotEmpty(t, weakInsights)

	var titles []string
	for _, in := range weakInsights {
		titles = append(titles, in.Title)
	}
	assert.Contains(t, titles, "Declining Trend")
	assert.Contains(t, titles, "Area for Improvement")
}
