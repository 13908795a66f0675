package repositories

// In-memory implementations of the store interfaces. The server falls back to
// these when no database URL is configured, and the test suites run against
// them. Each store serializes access with a single mutex, so the
// read-modify-write contracts hold without caller discipline.

import (
	"sort"
	"sync"
	"time"

	"gradevision/internal/models"
)

type memoryUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LockedUntil != nil {
		t := *u.LockedUntil
		c.LockedUntil = &t
	}
	return &c
}

func (r *memoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	c := cloneUser(user)
	r.byEmail[user.Email] = c
	r.byID[user.ID] = c
	return nil
}

func (r *memoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneUser(r.byID[id]), nil
}

func (r *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneUser(r.byEmail[email]), nil
}

func (r *memoryUserRepository) UpdateProfile(id, firstName, lastName, avatar string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID[id]
	if u == nil {
		return nil, nil
	}
	if firstName != "" {
		u.FirstName = firstName
	}
	if lastName != "" {
		u.LastName = lastName
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	u.UpdatedAt = time.Now()
	return cloneUser(u), nil
}

func (r *memoryUserRepository) IncrementFailedLogins(id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID[id]
	if u == nil {
		return 0, nil
	}
	u.FailedLoginCount++
	u.UpdatedAt = time.Now()
	return u.FailedLoginCount, nil
}

func (r *memoryUserRepository) Lock(id string, until time.Time, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.byID[id]; u != nil {
		u.LockedUntil = &until
		u.FailedLoginCount = count
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memoryUserRepository) ResetLoginState(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.byID[id]; u != nil {
		u.FailedLoginCount = 0
		u.LockedUntil = nil
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memoryUserRepository) UpdatePassword(id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.byID[id]; u != nil {
		u.PasswordHash = passwordHash
		u.FailedLoginCount = 0
		u.LockedUntil = nil
		u.UpdatedAt = time.Now()
	}
	return nil
}

type otpKey struct {
	email   string
	purpose string
}

type memoryOtpRepository struct {
	mu    sync.Mutex
	codes map[otpKey]*models.OtpCode
}

func NewMemoryOtpRepository() OtpRepository {
	return &memoryOtpRepository{codes: map[otpKey]*models.OtpCode{}}
}

func (r *memoryOtpRepository) Replace(otp *models.OtpCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *otp
	r.codes[otpKey{otp.Email, otp.Purpose}] = &c
	return nil
}

func (r *memoryOtpRepository) GetByKey(email, purpose string) (*models.OtpCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.codes[otpKey{email, purpose}]
	if o == nil {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *memoryOtpRepository) Delete(email, purpose string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, otpKey{email, purpose})
	return nil
}

func (r *memoryOtpRepository) IncrementAttempts(id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.codes {
		if o.ID == id {
			o.Attempts++
			return o.Attempts, nil
		}
	}
	return 0, nil
}

func (r *memoryOtpRepository) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, o := range r.codes {
		if o.ExpiresAt.Before(now) {
			delete(r.codes, k)
			n++
		}
	}
	return n, nil
}

type memoryStudentRepository struct {
	mu       sync.Mutex
	students map[string]*models.Student
}

func NewMemoryStudentRepository() StudentRepository {
	return &memoryStudentRepository{students: map[string]*models.Student{}}
}

func cloneStudent(s *models.Student) *models.Student {
	if s == nil {
		return nil
	}
	c := *s
	c.Subjects = append([]string(nil), s.Subjects...)
	c.Badges = append([]string(nil), s.Badges...)
	c.PerformanceHistory = append([]models.PerformanceEntry(nil), s.PerformanceHistory...)
	return &c
}

func (r *memoryStudentRepository) Create(s *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.students[s.ID] = cloneStudent(s)
	return nil
}

func (r *memoryStudentRepository) GetByID(id string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneStudent(r.students[id]), nil
}

func (r *memoryStudentRepository) GetByStudentID(studentID string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.StudentID == studentID {
			return cloneStudent(s), nil
		}
	}
	return nil, nil
}

func (r *memoryStudentRepository) Update(s *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.students[s.ID]
	if existing == nil {
		return nil
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now()
	r.students[s.ID] = cloneStudent(s)
	return nil
}

func (r *memoryStudentRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return false, nil
	}
	delete(r.students, id)
	return true, nil
}

func (r *memoryStudentRepository) List(filter models.StudentFilter) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Student
	for _, s := range r.students {
		if filter.Grade != "" && s.Grade != filter.Grade {
			continue
		}
		if filter.Section != "" && s.Section != filter.Section {
			continue
		}
		if filter.RiskLevel != "" && string(s.RiskLevel) != filter.RiskLevel {
			continue
		}
		res = append(res, cloneStudent(s))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StudentID < res[j].StudentID })
	return res, nil
}

type memoryAlertRepository struct {
	mu     sync.Mutex
	alerts map[string]*models.Alert
}

func NewMemoryAlertRepository() AlertRepository {
	return &memoryAlertRepository{alerts: map[string]*models.Alert{}}
}

func (r *memoryAlertRepository) Create(a *models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	c := *a
	r.alerts[a.ID] = &c
	return nil
}

func (r *memoryAlertRepository) GetByID(id string) (*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.alerts[id]
	if a == nil {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *memoryAlertRepository) List(filter models.AlertFilter) ([]*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Alert
	for _, a := range r.alerts {
		if filter.StudentID != "" && a.StudentID != filter.StudentID {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.UnreadOnly && a.Read {
			continue
		}
		c := *a
		res = append(res, &c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *memoryAlertRepository) MarkRead(id string) (*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.alerts[id]
	if a == nil {
		return nil, nil
	}
	a.Read = true
	c := *a
	return &c, nil
}

func (r *memoryAlertRepository) MarkAllRead(studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if studentID == "" || a.StudentID == studentID {
			a.Read = true
		}
	}
	return nil
}

func (r *memoryAlertRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alerts[id]; !ok {
		return false, nil
	}
	delete(r.alerts, id)
	return true, nil
}

func (r *memoryAlertRepository) UnreadCount(studentID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var c int
	for _, a := range r.alerts {
		if !a.Read && (studentID == "" || a.StudentID == studentID) {
			c++
		}
	}
	return c, nil
}
