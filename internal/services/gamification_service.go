package services

import (
	"sort"

	"gradevision/internal/models"
)

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
}

type Level struct {
	Level     int    `json:"level"`
	Name      string `json:"name"`
	MinPoints int    `json:"minPoints"`
	MaxPoints int    `json:"maxPoints"` // 0 means uncapped
}

type LevelProgress struct {
	Level
	NextLevel *Level `json:"nextLevel"`
	Progress  int    `json:"progress"`
}

type StreakMilestone struct {
	Target    int `json:"target"`
	Remaining int `json:"remaining"`
}

type LeaderboardEntry struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Points int           `json:"points"`
	Level  LevelProgress `json:"level"`
	Streak int           `json:"streak"`
	GPA    float64       `json:"gpa"`
	Rank   int           `json:"rank"`
}

var badgeCatalog = []Badge{
	{ID: "perfect_attendance", Name: "Perfect Attendance", Description: "Maintained 100% attendance for a month", Icon: "🎯", Category: "attendance", Points: 100},
	{ID: "consistent_attendee", Name: "Consistent Attendee", Description: "Maintained 90%+ attendance for 3 months", Icon: "📅", Category: "attendance", Points: 150},
	{ID: "honor_roll", Name: "Honor Roll", Description: "Achieved GPA of 3.5 or higher", Icon: "🏆", Category: "academic", Points: 200},
	{ID: "math_wizard", Name: "Math Wizard", Description: "Scored 90%+ in Mathematics", Icon: "🧮", Category: "academic", Points: 100},
	{ID: "science_star", Name: "Science Star", Description: "Excelled in Science subjects", Icon: "🔬", Category: "academic", Points: 100},
	{ID: "week_warrior", Name: "Week Warrior", Description: "7-day learning streak", Icon: "🔥", Category: "streak", Points: 50},
	{ID: "monthly_master", Name: "Monthly Master", Description: "30-day learning streak", Icon: "⚡", Category: "streak", Points: 200},
	{ID: "quick_learner", Name: "Quick Learner", Description: "Completed 10 assignments ahead of deadline", Icon: "🚀", Category: "engagement", Points: 75},
	{ID: "team_player", Name: "Team Player", Description: "Participated in 5+ group activities", Icon: "🤝", Category: "engagement", Points: 75},
	{ID: "coding_champion", Name: "Coding Champion", Description: "Completed all coding assignments with excellence", Icon: "💻", Category: "academic", Points: 150},
	{ID: "creative_thinker", Name: "Creative Thinker", Description: "Submitted outstanding creative projects", Icon: "🎨", Category: "engagement", Points: 100},
	{ID: "mentor", Name: "Mentor", Description: "Helped fellow students succeed", Icon: "🌟", Category: "social", Points: 150},
	{ID: "senior_leader", Name: "Senior Leader", Description: "Demonstrated leadership as a senior student", Icon: "👑", Category: "social", Points: 200},
	{ID: "art_enthusiast", Name: "Art Enthusiast", Description: "Showed exceptional creativity in Art", Icon: "🖼️", Category: "academic", Points: 75},
	{ID: "consistent_performer", Name: "Consistent Performer", Description: "Maintained steady performance over time", Icon: "📊", Category: "academic", Points: 100},
}

var levels = []Level{
	{Level: 1, Name: "Beginner", MinPoints: 0, MaxPoints: 100},
	{Level: 2, Name: "Learner", MinPoints: 101, MaxPoints: 250},
	{Level: 3, Name: "Achiever", MinPoints: 251, MaxPoints: 500},
	{Level: 4, Name: "Scholar", MinPoints: 501, MaxPoints: 1000},
	{Level: 5, Name: "Master", MinPoints: 1001, MaxPoints: 2000},
	{Level: 6, Name: "Grandmaster", MinPoints: 2001, MaxPoints: 0},
}

var streakMilestones = []int{7, 14, 21, 30, 60, 90, 180, 365}

type GamificationService interface {
	AllBadges() []Badge
	BadgeByName(name string) *Badge
	Points(badgeNames []string) int
	LevelFor(points int) LevelProgress
	Profile(student *models.Student) map[string]any
	NextStreakMilestone(streak int) StreakMilestone
	EligibleBadges(student *models.Student) []Badge
	Leaderboard(students []*models.Student, sortBy string, limit int) []LeaderboardEntry
}

type gamificationService struct{}

func NewGamificationService() GamificationService {
	return &gamificationService{}
}

func (g *gamificationService) AllBadges() []Badge {
	return append([]Badge(nil), badgeCatalog...)
}

func (g *gamificationService) BadgeByName(name string) *Badge {
	for i := range badgeCatalog {
		if badgeCatalog[i].Name == name {
			b := badgeCatalog[i]
			return &b
		}
	}
	return nil
}

func (g *gamificationService) Points(badgeNames []string) int {
	total := 0
	for _, name := range badgeNames {
		if b := g.BadgeByName(name); b != nil {
			total += b.Points
		}
	}
	return total
}

func (g *gamificationService) LevelFor(points int) LevelProgress {
	for i := len(levels) - 1; i >= 0; i-- {
		if points >= levels[i].MinPoints {
			lp := LevelProgress{Level: levels[i], Progress: 100}
			if i+1 < len(levels) {
				next := levels[i+1]
				lp.NextLevel = &next
				span := next.MinPoints - levels[i].MinPoints
				lp.Progress = (points - levels[i].MinPoints) * 100 / span
			}
			return lp
		}
	}
	return LevelProgress{Level: levels[0]}
}

func (g *gamificationService) NextStreakMilestone(streak int) StreakMilestone {
	for _, m := range streakMilestones {
		if streak < m {
			return StreakMilestone{Target: m, Remaining: m - streak}
		}
	}
	return StreakMilestone{Target: streakMilestones[len(streakMilestones)-1], Remaining: 0}
}

func (g *gamificationService) Profile(student *models.Student) map[string]any {
	var earned []Badge
	for _, name := range student.Badges {
		if b := g.BadgeByName(name); b != nil {
			earned = append(earned, *b)
		}
	}
	points := g.Points(student.Badges)

	categories := map[string]int{"attendance": 0, "academic": 0, "streak": 0, "engagement": 0, "social": 0}
	for _, b := range earned {
		categories[b.Category]++
	}

	best := student.Streak
	if best < 30 {
		best = 30
	}
	return map[string]any{
		"badges":      earned,
		"totalPoints": points,
		"level":       g.LevelFor(points),
		"streak": map[string]any{
			"current":       student.Streak,
			"best":          best,
			"nextMilestone": g.NextStreakMilestone(student.Streak),
		},
		"achievements": map[string]any{
			"total":      len(earned),
			"available":  len(badgeCatalog),
			"categories": categories,
		},
	}
}

func (g *gamificationService) EligibleBadges(student *models.Student) []Badge {
	earned := map[string]struct{}{}
	for _, name := range student.Badges {
		earned[name] = struct{}{}
	}
	has := func(name string) bool {
		_, ok := earned[name]
		return ok
	}

	var fresh []Badge
	add := func(name string) {
		if b := g.BadgeByName(name); b != nil {
			fresh = append(fresh, *b)
		}
	}
	if student.Attendance >= 100 && !has("Perfect Attendance") {
		add("Perfect Attendance")
	}
	if student.Attendance >= 90 && !has("Consistent Attendee") {
		add("Consistent Attendee")
	}
	if student.CurrentGPA >= 3.5 && !has("Honor Roll") {
		add("Honor Roll")
	}
	if student.Streak >= 7 && !has("Week Warrior") {
		add("Week Warrior")
	}
	if student.Streak >= 30 && !has("Monthly Master") {
		add("Monthly Master")
	}
	return fresh
}

func (g *gamificationService) Leaderboard(students []*models.Student, sortBy string, limit int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(students))
	for _, s := range students {
		points := g.Points(s.Badges)
		entries = append(entries, LeaderboardEntry{
			ID:     s.ID,
			Name:   fullName(s),
			Points: points,
			Level:  g.LevelFor(points),
			Streak: s.Streak,
			GPA:    s.CurrentGPA,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		switch sortBy {
		case "streak":
			return entries[i].Streak > entries[j].Streak
		case "gpa":
			return entries[i].GPA > entries[j].GPA
		default:
			return entries[i].Points > entries[j].Points
		}
	})
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
