package services

import (
	"math"
	"sort"

	"gradevision/internal/models"
)

type MonthlyTrendPoint struct {
	Month             string  `json:"month"`
	AverageGPA        float64 `json:"averageGPA"`
	AverageAttendance float64 `json:"averageAttendance"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RankedStudent struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	GPA        float64 `json:"gpa"`
	Grade      string  `json:"grade,omitempty"`
	RiskLevel  string  `json:"riskLevel,omitempty"`
	Attendance float64 `json:"attendance,omitempty"`
}

type SubjectPerformance struct {
	Subject  string `json:"subject"`
	AvgScore int    `json:"avgScore"`
	PassRate int    `json:"passRate"`
}

type ClassComparison struct {
	Grade             string  `json:"grade"`
	StudentCount      int     `json:"studentCount"`
	AverageGPA        float64 `json:"averageGPA"`
	AverageAttendance float64 `json:"averageAttendance"`
}

// AnalyticsService aggregates cohort-level metrics for the dashboard.
// All of it is straight-line data transformation over the student store.
type AnalyticsService interface {
	Overview() (map[string]any, error)
	Attendance() (map[string]any, error)
	Performance() (map[string]any, error)
	Engagement() (map[string]any, error)
	Trends() ([]MonthlyTrendPoint, error)
	RiskDistribution() (map[string]any, error)
	SubjectPerformance() []SubjectPerformance
	ClassComparison() ([]ClassComparison, error)
	StudentAnalytics(studentID string) (map[string]any, error)
}

type analyticsService struct {
	students StudentService
}

func NewAnalyticsService(students StudentService) AnalyticsService {
	return &analyticsService{students: students}
}

var trendMonths = []string{"Sep", "Oct", "Nov", "Dec", "Jan"}

func fullName(s *models.Student) string {
	return s.FirstName + " " + s.LastName
}

func shortName(s *models.Student) string {
	initial := ""
	if s.LastName != "" {
		initial = string([]rune(s.LastName)[0]) + "."
	}
	return s.FirstName + " " + initial
}

func (a *analyticsService) Overview() (map[string]any, error) {
	stats, err := a.students.Stats()
	if err != nil {
		return nil, err
	}
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	gradeDistribution := map[string]int{}
	sectionDistribution := map[string]int{}
	subjectPopularity := map[string]int{}
	for _, s := range students {
		gradeDistribution[s.Grade]++
		sectionDistribution[s.Section]++
		for _, subj := range s.Subjects {
			subjectPopularity[subj]++
		}
	}

	top := make([]NamedCount, 0, len(subjectPopularity))
	for name, count := range subjectPopularity {
		top = append(top, NamedCount{Name: name, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 5 {
		top = top[:5]
	}

	return map[string]any{
		"totalStudents":       stats.TotalStudents,
		"riskDistribution":    stats.RiskDistribution,
		"averageGPA":          stats.AverageGPA,
		"averageAttendance":   stats.AverageAttendance,
		"atRiskCount":         stats.AtRiskCount,
		"gradeDistribution":   gradeDistribution,
		"sectionDistribution": sectionDistribution,
		"topSubjects":         top,
	}, nil
}

func (a *analyticsService) Attendance() (map[string]any, error) {
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	ranges := map[string]int{"excellent": 0, "good": 0, "average": 0, "poor": 0}
	var attSum float64
	for _, s := range students {
		switch {
		case s.Attendance >= 90:
			ranges["excellent"]++
		case s.Attendance >= 75:
			ranges["good"]++
		case s.Attendance >= 60:
			ranges["average"]++
		default:
			ranges["poor"]++
		}
		attSum += s.Attendance
	}

	type monthAvg struct {
		Month   string  `json:"month"`
		Average float64 `json:"average"`
	}
	trend := make([]monthAvg, 0, 4)
	for _, month := range trendMonths[:4] {
		var total float64
		var count int
		for _, s := range students {
			for _, h := range s.PerformanceHistory {
				if h.Month == month {
					total += h.Attendance
					count++
				}
			}
		}
		avg := 0.0
		if count > 0 {
			avg = math.Round(total / float64(count))
		}
		trend = append(trend, monthAvg{Month: month, Average: avg})
	}

	avgAttendance := 0.0
	if len(students) > 0 {
		avgAttendance = math.Round(attSum / float64(len(students)))
	}
	return map[string]any{
		"distribution":      ranges,
		"monthlyTrend":      trend,
		"averageAttendance": avgAttendance,
	}, nil
}

func (a *analyticsService) Performance() (map[string]any, error) {
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	gpaRanges := map[string]int{
		"A (3.7-4.0)": 0,
		"B (3.0-3.6)": 0,
		"C (2.0-2.9)": 0,
		"D (1.0-1.9)": 0,
		"F (0-0.9)":   0,
	}
	var gpaSum float64
	for _, s := range students {
		switch {
		case s.CurrentGPA >= 3.7:
			gpaRanges["A (3.7-4.0)"]++
		case s.CurrentGPA >= 3.0:
			gpaRanges["B (3.0-3.6)"]++
		case s.CurrentGPA >= 2.0:
			gpaRanges["C (2.0-2.9)"]++
		case s.CurrentGPA >= 1.0:
			gpaRanges["D (1.0-1.9)"]++
		default:
			gpaRanges["F (0-0.9)"]++
		}
		gpaSum += s.CurrentGPA
	}

	trend, err := a.Trends()
	if err != nil {
		return nil, err
	}

	sorted := append([]*models.Student(nil), students...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CurrentGPA > sorted[j].CurrentGPA })
	topPerformers := make([]RankedStudent, 0, 5)
	for _, s := range sorted {
		if len(topPerformers) == 5 {
			break
		}
		topPerformers = append(topPerformers, RankedStudent{
			ID: s.ID, Name: fullName(s), GPA: s.CurrentGPA, Grade: s.Grade,
		})
	}

	var atRisk []RankedStudent
	for _, s := range students {
		if s.RiskLevel == models.RiskHigh || s.RiskLevel == models.RiskMedium {
			atRisk = append(atRisk, RankedStudent{
				ID: s.ID, Name: fullName(s), GPA: s.CurrentGPA,
				RiskLevel: string(s.RiskLevel), Attendance: s.Attendance,
			})
		}
	}

	avgGPA := 0.0
	if len(students) > 0 {
		avgGPA = round2(gpaSum / float64(len(students)))
	}
	return map[string]any{
		"gpaDistribution": gpaRanges,
		"monthlyTrend":    trend[:4],
		"topPerformers":   topPerformers,
		"atRiskStudents":  atRisk,
		"averageGPA":      avgGPA,
	}, nil
}

func (a *analyticsService) Engagement() (map[string]any, error) {
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	type hoursEntry struct {
		Name  string  `json:"name"`
		Hours float64 `json:"hours"`
	}
	type assignmentEntry struct {
		Name      string `json:"name"`
		Completed int    `json:"completed"`
		Total     int    `json:"total"`
		Rate      int    `json:"rate"`
	}
	type streakEntry struct {
		Name   string `json:"name"`
		Streak int    `json:"streak"`
	}

	var hours []hoursEntry
	var assignments []assignmentEntry
	var hoursSum, rateSum float64
	for _, s := range students {
		hours = append(hours, hoursEntry{Name: shortName(s), Hours: s.StudyHours})
		rate := 0
		if s.TotalAssignments > 0 {
			rate = int(math.Round(float64(s.AssignmentsCompleted) / float64(s.TotalAssignments) * 100))
		}
		assignments = append(assignments, assignmentEntry{
			Name: shortName(s), Completed: s.AssignmentsCompleted,
			Total: s.TotalAssignments, Rate: rate,
		})
		hoursSum += s.StudyHours
		rateSum += float64(rate)
	}

	sorted := append([]*models.Student(nil), students...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Streak > sorted[j].Streak })
	leaders := make([]streakEntry, 0, 5)
	for _, s := range sorted {
		if len(leaders) == 5 {
			break
		}
		leaders = append(leaders, streakEntry{Name: fullName(s), Streak: s.Streak})
	}

	avgHours, avgRate := 0.0, 0.0
	if len(students) > 0 {
		n := float64(len(students))
		avgHours = math.Round(hoursSum / n)
		avgRate = math.Round(rateSum / n)
	}
	return map[string]any{
		"studyHours":            hours,
		"assignments":           assignments,
		"streakLeaders":         leaders,
		"averageStudyHours":     avgHours,
		"averageCompletionRate": avgRate,
	}, nil
}

func (a *analyticsService) Trends() ([]MonthlyTrendPoint, error) {
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}
	trends := make([]MonthlyTrendPoint, 0, len(trendMonths))
	for _, month := range trendMonths {
		var gpaTotal, attTotal float64
		var count int
		for _, s := range students {
			for _, h := range s.PerformanceHistory {
				if h.Month == month {
					gpaTotal += h.GPA
					attTotal += h.Attendance
					count++
				}
			}
		}
		point := MonthlyTrendPoint{Month: month}
		if count > 0 {
			point.AverageGPA = round2(gpaTotal / float64(count))
			point.AverageAttendance = math.Round(attTotal / float64(count))
		}
		trends = append(trends, point)
	}
	return trends, nil
}

func (a *analyticsService) RiskDistribution() (map[string]any, error) {
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	distribution := map[string]int{"low": 0, "medium": 0, "high": 0}
	var highRisk []RankedStudent
	for _, s := range students {
		distribution[string(s.RiskLevel)]++
		if s.RiskLevel == models.RiskHigh {
			highRisk = append(highRisk, RankedStudent{
				ID: s.ID, Name: fullName(s), GPA: s.CurrentGPA, Attendance: s.Attendance,
			})
		}
	}

	percentages := map[string]float64{"low": 0, "medium": 0, "high": 0}
	if total := len(students); total > 0 {
		for k, v := range distribution {
			percentages[k] = math.Round(float64(v) / float64(total) * 100)
		}
	}
	return map[string]any{
		"distribution":     distribution,
		"percentages":      percentages,
		"highRiskStudents": highRisk,
	}, nil
}

// Static reference table; per-subject scoring is not tracked yet.
func (a *analyticsService) SubjectPerformance() []SubjectPerformance {
	return []SubjectPerformance{
		{Subject: "Mathematics", AvgScore: 78, PassRate: 85},
		{Subject: "Physics", AvgScore: 72, PassRate: 80},
		{Subject: "Chemistry", AvgScore: 75, PassRate: 82},
		{Subject: "English", AvgScore: 82, PassRate: 90},
		{Subject: "Computer Science", AvgScore: 85, PassRate: 92},
		{Subject: "Biology", AvgScore: 79, PassRate: 86},
		{Subject: "History", AvgScore: 76, PassRate: 84},
	}
}

func (a *analyticsService) ClassComparison() ([]ClassComparison, error) {
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	type agg struct {
		count  int
		gpaSum float64
		attSum float64
	}
	byGrade := map[string]*agg{}
	for _, s := range students {
		g := byGrade[s.Grade]
		if g == nil {
			g = &agg{}
			byGrade[s.Grade] = g
		}
		g.count++
		g.gpaSum += s.CurrentGPA
		g.attSum += s.Attendance
	}

	res := make([]ClassComparison, 0, len(byGrade))
	for grade, g := range byGrade {
		res = append(res, ClassComparison{
			Grade:             grade,
			StudentCount:      g.count,
			AverageGPA:        round2(g.gpaSum / float64(g.count)),
			AverageAttendance: math.Round(g.attSum / float64(g.count)),
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Grade < res[j].Grade })
	return res, nil
}

func (a *analyticsService) StudentAnalytics(studentID string) (map[string]any, error) {
	student, err := a.students.GetByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}
	students, err := a.students.List(models.StudentFilter{})
	if err != nil {
		return nil, err
	}

	var gpaSum, attSum float64
	for _, s := range students {
		gpaSum += s.CurrentGPA
		attSum += s.Attendance
	}
	n := float64(len(students))
	classAvgGPA := gpaSum / n
	classAvgAtt := attSum / n

	completion := 0
	if student.TotalAssignments > 0 {
		completion = int(math.Round(float64(student.AssignmentsCompleted) / float64(student.TotalAssignments) * 100))
	}

	return map[string]any{
		"student": map[string]any{
			"id":      student.ID,
			"name":    fullName(student),
			"grade":   student.Grade,
			"section": student.Section,
		},
		"metrics": map[string]any{
			"gpa":                  student.CurrentGPA,
			"attendance":           student.Attendance,
			"studyHours":           student.StudyHours,
			"streak":               student.Streak,
			"assignmentCompletion": completion,
		},
		"comparison": map[string]any{
			"gpaVsClass":        round2(student.CurrentGPA - classAvgGPA),
			"attendanceVsClass": math.Round(student.Attendance - classAvgAtt),
		},
		"performanceHistory": student.PerformanceHistory,
		"badges":             student.Badges,
	}, nil
}
