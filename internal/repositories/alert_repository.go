package repositories

import (
	"database/sql"
	"fmt"

	"gradevision/internal/models"
)

type AlertRepository interface {
	Create(alert *models.Alert) error
	GetByID(id string) (*models.Alert, error)
	List(filter models.AlertFilter) ([]*models.Alert, error)
	MarkRead(id string) (*models.Alert, error)
	MarkAllRead(studentID string) error
	Delete(id string) (bool, error)
	UnreadCount(studentID string) (int, error)
}

type alertRepository struct {
	DB *sql.DB
}

func NewAlertRepository(db *sql.DB) AlertRepository {
	return &alertRepository{DB: db}
}

const alertColumns = `id, student_id, type, severity, title, message, action_required, read, created_at`

func scanAlert(scan func(dest ...any) error) (*models.Alert, error) {
	a := &models.Alert{}
	err := scan(
		&a.ID, &a.StudentID, &a.Type, &a.Severity, &a.Title, &a.Message,
		&a.ActionRequired, &a.Read, &a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *alertRepository) Create(a *models.Alert) error {
	const q = `
		INSERT INTO alerts (id, student_id, type, severity, title, message, action_required, read)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`
	err := r.DB.QueryRow(q,
		a.ID, a.StudentID, a.Type, a.Severity, a.Title, a.Message, a.ActionRequired, a.Read,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("alert create: %w", err)
	}
	return nil
}

func (r *alertRepository) GetByID(id string) (*models.Alert, error) {
	row := r.DB.QueryRow(`SELECT `+alertColumns+` FROM alerts WHERE id=$1`, id)
	return scanAlert(row.Scan)
}

func (r *alertRepository) List(filter models.AlertFilter) ([]*models.Alert, error) {
	q := `SELECT ` + alertColumns + ` FROM alerts WHERE 1=1`
	var args []any
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		q += fmt.Sprintf(" AND student_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		q += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		q += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	if filter.UnreadOnly {
		q += " AND read = FALSE"
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("alert list: %w", err)
	}
	defer rows.Close()

	var res []*models.Alert
	for rows.Next() {
		a, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *alertRepository) MarkRead(id string) (*models.Alert, error) {
	row := r.DB.QueryRow(`
		UPDATE alerts SET read = TRUE WHERE id = $1
		RETURNING `+alertColumns, id)
	return scanAlert(row.Scan)
}

func (r *alertRepository) MarkAllRead(studentID string) error {
	if studentID == "" {
		_, err := r.DB.Exec(`UPDATE alerts SET read = TRUE WHERE read = FALSE`)
		return err
	}
	_, err := r.DB.Exec(`UPDATE alerts SET read = TRUE WHERE read = FALSE AND student_id = $1`, studentID)
	return err
}

func (r *alertRepository) Delete(id string) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM alerts WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *alertRepository) UnreadCount(studentID string) (int, error) {
	var c int
	var err error
	if studentID == "" {
		err = r.DB.QueryRow(`SELECT COUNT(*) FROM alerts WHERE read = FALSE`).Scan(&c)
	} else {
		err = r.DB.QueryRow(`SELECT COUNT(*) FROM alerts WHERE read = FALSE AND student_id = $1`, studentID).Scan(&c)
	}
	return c, err
}
