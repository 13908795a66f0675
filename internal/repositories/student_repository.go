package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"gradevision/internal/models"
)

type StudentRepository interface {
	Create(student *models.Student) error
	GetByID(id string) (*models.Student, error)
	GetByStudentID(studentID string) (*models.Student, error)
	Update(student *models.Student) error
	Delete(id string) (bool, error)
	List(filter models.StudentFilter) ([]*models.Student, error)
}

type studentRepository struct {
	DB *sql.DB
}

func NewStudentRepository(db *sql.DB) StudentRepository {
	return &studentRepository{DB: db}
}

const studentColumns = `
	id, COALESCE(user_id,''), student_id, first_name, last_name, email, grade, section,
	subjects, attendance, current_gpa, risk_level, enrollment_date,
	performance_history, badges, streak, study_hours,
	assignments_completed, total_assignments, created_at, updated_at
`

func scanStudent(scan func(dest ...any) error) (*models.Student, error) {
	s := &models.Student{}
	var history []byte
	err := scan(
		&s.ID, &s.UserID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email,
		&s.Grade, &s.Section, pq.Array(&s.Subjects), &s.Attendance, &s.CurrentGPA,
		&s.RiskLevel, &s.EnrollmentDate, &history, pq.Array(&s.Badges),
		&s.Streak, &s.StudyHours, &s.AssignmentsCompleted, &s.TotalAssignments,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &s.PerformanceHistory); err != nil {
			return nil, fmt.Errorf("student history decode: %w", err)
		}
	}
	return s, nil
}

func (r *studentRepository) Create(s *models.Student) error {
	history, err := json.Marshal(s.PerformanceHistory)
	if err != nil {
		return fmt.Errorf("student history encode: %w", err)
	}
	const q = `
		INSERT INTO students (
			id, user_id, student_id, first_name, last_name, email, grade, section,
			subjects, attendance, current_gpa, risk_level, enrollment_date,
			performance_history, badges, streak, study_hours,
			assignments_completed, total_assignments
		)
		VALUES ($1,NULLIF($2,''),$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING created_at, updated_at
	`
	err = r.DB.QueryRow(q,
		s.ID, s.UserID, s.StudentID, s.FirstName, s.LastName, s.Email, s.Grade, s.Section,
		pq.Array(s.Subjects), s.Attendance, s.CurrentGPA, s.RiskLevel, s.EnrollmentDate,
		history, pq.Array(s.Badges), s.Streak, s.StudyHours,
		s.AssignmentsCompleted, s.TotalAssignments,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("student create: %w", err)
	}
	return nil
}

func (r *studentRepository) GetByID(id string) (*models.Student, error) {
	row := r.DB.QueryRow(`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	return scanStudent(row.Scan)
}

func (r *studentRepository) GetByStudentID(studentID string) (*models.Student, error) {
	row := r.DB.QueryRow(`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID)
	return scanStudent(row.Scan)
}

func (r *studentRepository) Update(s *models.Student) error {
	history, err := json.Marshal(s.PerformanceHistory)
	if err != nil {
		return fmt.Errorf("student history encode: %w", err)
	}
	const q = `
		UPDATE students
		SET first_name=$1, last_name=$2, email=$3, grade=$4, section=$5,
		    subjects=$6, attendance=$7, current_gpa=$8, risk_level=$9,
		    enrollment_date=$10, performance_history=$11, badges=$12,
		    streak=$13, study_hours=$14, assignments_completed=$15,
		    total_assignments=$16, updated_at=NOW()
		WHERE id=$17
		RETURNING updated_at
	`
	err = r.DB.QueryRow(q,
		s.FirstName, s.LastName, s.Email, s.Grade, s.Section,
		pq.Array(s.Subjects), s.Attendance, s.CurrentGPA, s.RiskLevel,
		s.EnrollmentDate, history, pq.Array(s.Badges),
		s.Streak, s.StudyHours, s.AssignmentsCompleted,
		s.TotalAssignments, s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("student update: %w", err)
	}
	return nil
}

func (r *studentRepository) Delete(id string) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *studentRepository) List(filter models.StudentFilter) ([]*models.Student, error) {
	q := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []any
	if filter.Grade != "" {
		args = append(args, filter.Grade)
		q += fmt.Sprintf(" AND grade = $%d", len(args))
	}
	if filter.Section != "" {
		args = append(args, filter.Section)
		q += fmt.Sprintf(" AND section = $%d", len(args))
	}
	if filter.RiskLevel != "" {
		args = append(args, filter.RiskLevel)
		q += fmt.Sprintf(" AND risk_level = $%d", len(args))
	}
	q += " ORDER BY student_id"

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("student list: %w", err)
	}
	defer rows.Close()

	var res []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
