package services

import (
	"math"
	"math/rand"
	"sort"
	"strings"

	"gradevision/internal/models"
)

// Feature weights for the heuristic performance model.
var featureWeights = map[string]float64{
	"attendance":           0.25,
	"currentGPA":           0.30,
	"studyHours":           0.15,
	"assignmentCompletion": 0.20,
	"streak":               0.10,
}

var featureNames = map[string]string{
	"attendance":           "Attendance Rate",
	"currentGPA":           "Current GPA",
	"studyHours":           "Weekly Study Hours",
	"assignmentCompletion": "Assignment Completion",
	"streak":               "Learning Streak",
}

const (
	riskThresholdLow    = 0.7
	riskThresholdMedium = 0.5
)

type FeatureImportance struct {
	Feature      string  `json:"feature"`
	Value        int     `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution int     `json:"contribution"`
	Impact       string  `json:"impact"`
}

type Prediction struct {
	PerformanceScore  int                 `json:"performanceScore"`
	PredictedGPA      float64             `json:"predictedGPA"`
	RiskLevel         string              `json:"riskLevel"`
	Confidence        int                 `json:"confidence"`
	FeatureImportance []FeatureImportance `json:"featureImportance"`
	Trend             string              `json:"trend"`
}

type Recommendation struct {
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"actionItems"`
}

type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PredictionService is a hand-tuned weighted sum with injected noise.
// It stands in for a real model behind the same contract.
type PredictionService interface {
	Predict(student *models.Student) *Prediction
	Recommendations(student *models.Student, prediction *Prediction) []Recommendation
	Insights(student *models.Student, prediction *Prediction) []Insight
}

type predictionService struct{}

func NewPredictionService() PredictionService {
	return &predictionService{}
}

func normalizedFeatures(s *models.Student) map[string]float64 {
	completion := 1.0
	if s.TotalAssignments > 0 {
		completion = float64(s.AssignmentsCompleted) / float64(s.TotalAssignments)
	}
	return map[string]float64{
		"attendance":           s.Attendance / 100,
		"currentGPA":           s.CurrentGPA / 4.0,
		"studyHours":           math.Min(s.StudyHours/40, 1),
		"assignmentCompletion": completion,
		"streak":               math.Min(float64(s.Streak)/30, 1),
	}
}

func (p *predictionService) Predict(s *models.Student) *Prediction {
	features := normalizedFeatures(s)

	var score float64
	for feature, weight := range featureWeights {
		score += features[feature] * weight
	}

	// small variance keeps repeated predictions from looking canned
	variance := (rand.Float64() - 0.5) * 0.05
	score = math.Max(0, math.Min(1, score+variance))

	riskLevel := "high"
	if score >= riskThresholdLow {
		riskLevel = "low"
	} else if score >= riskThresholdMedium {
		riskLevel = "medium"
	}

	return &Prediction{
		PerformanceScore:  int(math.Round(score * 100)),
		PredictedGPA:      round2(score * 4),
		RiskLevel:         riskLevel,
		Confidence:        int(math.Round((0.75 + rand.Float64()*0.2) * 100)),
		FeatureImportance: featureImportance(features),
		Trend:             calculateTrend(s.PerformanceHistory),
	}
}

func featureImportance(features map[string]float64) []FeatureImportance {
	importance := make([]FeatureImportance, 0, len(features))
	for feature, value := range features {
		contribution := value * featureWeights[feature]
		impact := "low"
		if contribution > 0.15 {
			impact = "high"
		} else if contribution > 0.08 {
			impact = "medium"
		}
		importance = append(importance, FeatureImportance{
			Feature:      featureNames[feature],
			Value:        int(math.Round(value * 100)),
			Weight:       featureWeights[feature],
			Contribution: int(math.Round(contribution * 100)),
			Impact:       impact,
		})
	}
	sort.Slice(importance, func(i, j int) bool {
		if importance[i].Contribution != importance[j].Contribution {
			return importance[i].Contribution > importance[j].Contribution
		}
		return importance[i].Feature < importance[j].Feature
	})
	return importance
}

func calculateTrend(history []models.PerformanceEntry) string {
	if len(history) < 2 {
		return "stable"
	}
	recent := history
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	diff := recent[len(recent)-1].GPA - recent[0].GPA
	if diff > 0.1 {
		return "improving"
	}
	if diff < -0.1 {
		return "declining"
	}
	return "stable"
}

func (p *predictionService) Recommendations(s *models.Student, prediction *Prediction) []Recommendation {
	var recs []Recommendation

	for _, area := range prediction.FeatureImportance {
		if area.Value >= 70 {
			continue
		}
		switch area.Feature {
		case "Attendance Rate":
			recs = append(recs, Recommendation{
				Category: "Attendance", Priority: "high", Title: "Improve Attendance",
				Description: "Your attendance is below optimal. Try to attend all classes to improve understanding and grades.",
				ActionItems: []string{
					"Set daily reminders for classes",
					"Identify and address barriers to attendance",
					"Connect with classmates for notes when absent",
				},
			})
		case "Weekly Study Hours":
			recs = append(recs, Recommendation{
				Category: "Study Habits", Priority: "medium", Title: "Increase Study Time",
				Description: "Consider dedicating more time to studying. Aim for at least 25 hours per week.",
				ActionItems: []string{
					"Create a structured study schedule",
					"Use the Pomodoro technique",
					"Find a quiet study environment",
				},
			})
		case "Assignment Completion":
			recs = append(recs, Recommendation{
				Category: "Assignments", Priority: "high", Title: "Complete All Assignments",
				Description: "Completing assignments is crucial for understanding and grades.",
				ActionItems: []string{
					"Use a task manager to track deadlines",
					"Break large assignments into smaller tasks",
					"Start assignments early",
				},
			})
		case "Learning Streak":
			recs = append(recs, Recommendation{
				Category: "Consistency", Priority: "low", Title: "Build Learning Habits",
				Description: "Consistent daily learning helps retention and understanding.",
				ActionItems: []string{
					"Study a little bit every day",
					"Review notes within 24 hours of class",
					"Practice spaced repetition",
				},
			})
		}
	}

	if prediction.RiskLevel == "high" {
		recs = append([]Recommendation{{
			Category: "Urgent", Priority: "critical", Title: "Seek Academic Support",
			Description: "Your performance indicators suggest you may benefit from additional support.",
			ActionItems: []string{
				"Schedule a meeting with your academic advisor",
				"Consider tutoring services",
				"Form a study group with peers",
			},
		}}, recs...)
	}

	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}

func (p *predictionService) Insights(s *models.Student, prediction *Prediction) []Insight {
	var insights []Insight

	switch {
	case prediction.PerformanceScore >= 80:
		insights = append(insights, Insight{
			Type: "positive", Title: "Excellent Performance",
			Message: "You're performing in the top tier! Your predicted GPA reflects your hard work.",
		})
	case prediction.PerformanceScore >= 60:
		insights = append(insights, Insight{
			Type: "neutral", Title: "Good Progress",
			Message: "You're on a solid track. Small improvements can push you to the next level.",
		})
	default:
		insights = append(insights, Insight{
			Type: "warning", Title: "Attention Needed",
			Message: "Your current performance score indicates you may need additional support to succeed.",
		})
	}

	if prediction.Trend == "improving" {
		insights = append(insights, Insight{
			Type: "positive", Title: "Upward Trend",
			Message: "Your grades have been improving over the past few months. Keep up the great work!",
		})
	} else if prediction.Trend == "declining" {
		insights = append(insights, Insight{
			Type: "warning", Title: "Declining Trend",
			Message: "Your performance has been declining recently. Let's identify what's causing this and address it.",
		})
	}

	if len(prediction.FeatureImportance) > 0 {
		top := prediction.FeatureImportance[0]
		insights = append(insights, Insight{
			Type: "info", Title: "Key Factor",
			Message: top.Feature + " is the biggest contributor to your current performance.",
		})
		weakest := prediction.FeatureImportance[len(prediction.FeatureImportance)-1]
		if weakest.Value < 70 {
			insights = append(insights, Insight{
				Type: "suggestion", Title: "Area for Improvement",
				Message: "Focusing on improving your " + strings.ToLower(weakest.Feature) + " could significantly boost your overall performance.",
			})
		}
	}

	return insights
}
