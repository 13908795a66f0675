package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"gradevision/internal/models"
)

type OtpRepository interface {
	// Replace atomically deletes any existing code for (email, purpose)
	// and inserts the new one, so at most one live code exists per key.
	Replace(otp *models.OtpCode) error
	GetByKey(email, purpose string) (*models.OtpCode, error)
	Delete(email, purpose string) error
	IncrementAttempts(id string) (int, error)
	DeleteExpired(now time.Time) (int64, error)
}

type otpRepository struct {
	DB *sql.DB
}

func NewOtpRepository(db *sql.DB) OtpRepository {
	return &otpRepository{DB: db}
}

func (r *otpRepository) Replace(otp *models.OtpCode) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("otp replace begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM otp_codes WHERE email = $1 AND purpose = $2`,
		otp.Email, otp.Purpose,
	); err != nil {
		return fmt.Errorf("otp replace delete: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO otp_codes (id, email, purpose, code, attempts, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, otp.ID, otp.Email, otp.Purpose, otp.Code, otp.Attempts, otp.CreatedAt, otp.ExpiresAt); err != nil {
		return fmt.Errorf("otp replace insert: %w", err)
	}
	return tx.Commit()
}

func (r *otpRepository) GetByKey(email, purpose string) (*models.OtpCode, error) {
	const q = `
		SELECT id, email, purpose, code, attempts, created_at, expires_at
		FROM otp_codes
		WHERE email = $1 AND purpose = $2
	`
	o := &models.OtpCode{}
	err := r.DB.QueryRow(q, email, purpose).Scan(
		&o.ID, &o.Email, &o.Purpose, &o.Code, &o.Attempts, &o.CreatedAt, &o.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("otp get: %w", err)
	}
	return o, nil
}

func (r *otpRepository) Delete(email, purpose string) error {
	_, err := r.DB.Exec(`DELETE FROM otp_codes WHERE email = $1 AND purpose = $2`, email, purpose)
	return err
}

func (r *otpRepository) IncrementAttempts(id string) (int, error) {
	const q = `
		UPDATE otp_codes
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, id).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("otp increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *otpRepository) DeleteExpired(now time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM otp_codes WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("otp cleanup: %w", err)
	}
	return res.RowsAffected()
}
