package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradevision/internal/models"
)

func TestBadgeCatalog(t *testing.T) {
	svc := NewGamificationService()
	badges := svc.AllBadges()
	require.Len(t, badges, 15)

	seen := map[string]bool{}
	for _, b := range badges {
		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.Name)
		assert.Positive(t, b.Points)
		assert.Contains(t, []string{"attendance", "academic", "streak", "engagement", "social"}, b.Category)
		assert.False(t, seen[b.Name], "badge names must be unique")
		seen[b.Name] = true
	}
}

func TestPointsSumEarnedBadges(t *testing.T) {
	svc := NewGamificationService()
	// Perfect Attendance 100 + Math Wizard 100 + Quick Learner 75
	assert.Equal(t, 275, svc.Points([]string{"Perfect Attendance", "Math Wizard", "Quick Learner"}))
	assert.Equal(t, 0, svc.Points(nil))
	// unknown names contribute nothing
	assert.Equal(t, 100, svc.Points([]string{"Perfect Attendance", "Not A Badge"}))
}

func TestLevelProgression(t *testing.T) {
	svc := NewGamificationService()

	beginner := svc.LevelFor(0)
	assert.Equal(t, 1, beginner.Level.Level)
	assert.Equal(t, "Beginner", beginner.Name)
	require.NotNil(t, beginner.NextLevel)
	assert.Equal(t, 0, beginner.Progress)

	mid := svc.LevelFor(300)
	assert.Equal(t, "Achiever", mid.Name)
	assert.Greater(t, mid.Progress, 0)
	assert.Less(t, mid.Progress, 100)

	top := svc.LevelFor(5000)
	assert.Equal(t, "Grandmaster", top.Name)
	assert.Nil(t, top.NextLevel)
	assert.Equal(t, 100, top.Progress)
}

func TestNextStreakMilestone(t *testing.T) {
	svc := NewGamificationService()

	m := svc.NextStreakMilestone(0)
	assert.Equal(t, 7, m.Target)
	assert.Equal(t, 7, m.Remaining)

	m = svc.NextStreakMilestone(15)
	assert.Equal(t, 21, m.Target)
	assert.Equal(t, 6, m.Remaining)

	m = svc.NextStreakMilestone(400)
	assert.Equal(t, 365, m.Target)
	assert.Zero(t, m.Remaining)
}

func TestEligibleBadgesSkipEarned(t *testing.T) {
	svc := NewGamificationService()
	s := &models.Student{
		Attendance: 95, CurrentGPA: 3.8, Streak: 10,
		Badges: []string{"Consistent Attendee"},
	}
	fresh := svc.EligibleBadges(s)

	var names []string
	for _, b := range fresh {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "Honor Roll")
	assert.Contains(t, names, "Week Warrior")
	assert.NotContains(t, names, "Consistent Attendee", "already earned")
	assert.NotContains(t, names, "Monthly Master", "streak too short")
}

func TestLeaderboardOrderingAndRanks(t *testing.T) {
	svc := NewGamificationService()
	students := []*models.Student{
		{ID: "a", FirstName: "A", LastName: "One", Badges: []string{"Honor Roll"}, Streak: 3, CurrentGPA: 3.9},
		{ID: "b", FirstName: "B", LastName: "Two", Badges: []string{"Week Warrior"}, Streak: 25, CurrentGPA: 2.5},
		{ID: "c", FirstName: "C", LastName: "Three", Badges: []string{"Honor Roll", "Mentor"}, Streak: 10, CurrentGPA: 3.1},
	}

	byPoints := svc.Leaderboard(students, "points", 10)
	require.Len(t, byPoints, 3)
	assert.Equal(t, "c", byPoints[0].ID)
	assert.Equal(t, 1, byPoints[0].Rank)
	assert.Equal(t, 3, byPoints[2].Rank)

	byStreak := svc.Leaderboard(students, "streak", 10)
	assert.Equal(t, "b", byStreak[0].ID)

	byGPA := svc.Leaderboard(students, "gpa", 10)
	assert.Equal(t, "a", byGPA[0].ID)

	limited := svc.Leaderboard(students, "points", 2)
	assert.Len(t, limited, 2)
}

func TestProfileShape(t *testing.T) {
	svc := NewGamificationService()
	s := &models.Student{
		FirstName: "Alex", LastName: "Johnson", Streak: 15,
		Badges: []string{"Perfect Attendance", "Math Wizard", "Quick Learner"},
	}
	profile := svc.Profile(s)

	assert.Equal(t, 275, profile["totalPoints"])
	level := profile["level"].(LevelProgress)
	assert.Equal(t, "Achiever", level.Name)

	achievements := profile["achievements"].(map[string]any)
	assert.Equal(t, 3, achievements["total"])
	assert.Equal(t, 15, achievements["available"])
}
