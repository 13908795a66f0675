package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"gradevision/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProfile(id, firstName, lastName, avatar string) (*models.User, error)

	// login lockout helpers; every mutation is a single atomic statement
	IncrementFailedLogins(id string) (int, error)
	Lock(id string, until time.Time, count int) error
	ResetLoginState(id string) error
	UpdatePassword(id, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, email, password_hash, first_name, last_name, role,
	COALESCE(avatar,''), failed_login_count, locked_until, created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var lockedUntil sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.Avatar, &u.FailedLoginCount, &lockedUntil, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time
		u.LockedUntil = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, avatar, failed_login_count, locked_until)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),0,NULL)
		RETURNING created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		user.ID, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Role, user.Avatar,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) UpdateProfile(id, firstName, lastName, avatar string) (*models.User, error) {
	const q = `
		UPDATE users
		SET first_name = COALESCE(NULLIF($1,''), first_name),
		    last_name  = COALESCE(NULLIF($2,''), last_name),
		    avatar     = COALESCE(NULLIF($3,''), avatar),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns
	return scanUser(r.DB.QueryRow(q, firstName, lastName, avatar, id))
}

func (r *userRepository) IncrementFailedLogins(id string) (int, error) {
	const q = `
		UPDATE users
		SET failed_login_count = failed_login_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING failed_login_count
	`
	var count int
	if err := r.DB.QueryRow(q, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("user increment failed logins: %w", err)
	}
	return count, nil
}

func (r *userRepository) Lock(id string, until time.Time, count int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET locked_until = $1, failed_login_count = $2, updated_at = NOW()
		WHERE id = $3
	`, until, count, id)
	return err
}

func (r *userRepository) ResetLoginState(id string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET failed_login_count = 0, locked_until = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_hash = $1, failed_login_count = 0, locked_until = NULL, updated_at = NOW()
		WHERE id = $2
	`, passwordHash, id)
	return err
}
