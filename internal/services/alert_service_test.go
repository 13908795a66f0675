package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradevision/internal/models"
	"gradevision/internal/repositories"
)

func newAlertFixture(t *testing.T) AlertService {
	t.Helper()
	// nil telegram client: high-severity pushes become no-ops
	return NewAlertService(repositories.NewMemoryAlertRepository(), nil, 0)
}

func TestAlertCreateAssignsIDAndDefaults(t *testing.T) {
	svc := newAlertFixture(t)
	alert := &models.Alert{StudentID: "STU001", Type: models.AlertAttendance, Title: "Low attendance"}
	require.NoError(t, svc.Create(alert))
	assert.NotEmpty(t, alert.ID)
	assert.False(t, alert.CreatedAt.IsZero())

	loaded, err := svc.GetByID(alert.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Low attendance", loaded.Title)
}

func TestAlertHighSeverityWithoutTelegramStillPersists(t *testing.T) {
	svc := newAlertFixture(t)
	alert := &models.Alert{
		StudentID: "STU004", Type: models.AlertIntervention,
		Severity: "high", Title: "Intervention required",
	}
	require.NoError(t, svc.Create(alert))

	loaded, err := svc.GetByID(alert.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}

func TestAlertReadLifecycle(t *testing.T) {
	svc := newAlertFixture(t)
	a := &models.Alert{StudentID: "STU001", Type: models.AlertPerformance, Title: "one"}
	b := &models.Alert{StudentID: "STU002", Type: models.AlertPerformance, Title: "two"}
	require.NoError(t, svc.Create(a))
	require.NoError(t, svc.Create(b))

	count, err := svc.UnreadCount("")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	marked, err := svc.MarkRead(a.ID)
	require.NoError(t, err)
	require.NotNil(t, marked)
	assert.True(t, marked.Read)

	count, err = svc.UnreadCount("")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllRead(""))
	count, err = svc.UnreadCount("")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAlertListFilters(t *testing.T) {
	svc := newAlertFixture(t)
	require.NoError(t, svc.Create(&models.Alert{StudentID: "STU001", Type: models.AlertAttendance, Severity: "high", Title: "a"}))
	require.NoError(t, svc.Create(&models.Alert{StudentID: "STU001", Type: models.AlertAchievement, Severity: "low", Title: "b"}))
	require.NoError(t, svc.Create(&models.Alert{StudentID: "STU002", Type: models.AlertAttendance, Severity: "low", Title: "c"}))

	byStudent, err := svc.List(models.AlertFilter{StudentID: "STU001"})
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	byType, err := svc.List(models.AlertFilter{Type: models.AlertAttendance})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	bySeverity, err := svc.List(models.AlertFilter{Severity: "high"})
	require.NoError(t, err)
	assert.Len(t, bySeverity, 1)
}

func TestAlertDelete(t *testing.T) {
	svc := newAlertFixture(t)
	a := &models.Alert{StudentID: "STU001", Type: models.AlertAttendance, Title: "gone"}
	require.NoError(t, svc.Create(a))

	deleted, err := svc.Delete(a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(a.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
