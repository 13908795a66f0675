package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"gradevision/internal/models"
	"gradevision/internal/repositories"
)

type AlertService interface {
	Create(alert *models.Alert) error
	GetByID(id string) (*models.Alert, error)
	List(filter models.AlertFilter) ([]*models.Alert, error)
	MarkRead(id string) (*models.Alert, error)
	MarkAllRead(studentID string) error
	Delete(id string) (bool, error)
	UnreadCount(studentID string) (int, error)
}

type alertService struct {
	repo        repositories.AlertRepository
	tg          *TelegramService
	alertChatID int64
}

// tg may be nil; high-severity notifications are best effort.
func NewAlertService(repo repositories.AlertRepository, tg *TelegramService, alertChatID int64) AlertService {
	return &alertService{repo: repo, tg: tg, alertChatID: alertChatID}
}

func (s *alertService) Create(alert *models.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.Severity == "" {
		alert.Severity = "medium"
	}
	if err := s.repo.Create(alert); err != nil {
		return err
	}

	if alert.Severity == "high" && s.tg != nil {
		text := fmt.Sprintf("🚨 <b>%s</b>\nStudent: %s\n%s", alert.Title, alert.StudentID, alert.Message)
		if err := s.tg.SendMessage(s.alertChatID, text); err != nil {
			log.Printf("[alert][notify] telegram push failed id=%s: %v", alert.ID, err)
		}
	}
	return nil
}

func (s *alertService) GetByID(id string) (*models.Alert, error) {
	return s.repo.GetByID(id)
}

func (s *alertService) List(filter models.AlertFilter) ([]*models.Alert, error) {
	return s.repo.List(filter)
}

func (s *alertService) MarkRead(id string) (*models.Alert, error) {
	return s.repo.MarkRead(id)
}

func (s *alertService) MarkAllRead(studentID string) error {
	return s.repo.MarkAllRead(studentID)
}

func (s *alertService) Delete(id string) (bool, error) {
	return s.repo.Delete(id)
}

func (s *alertService) UnreadCount(studentID string) (int, error) {
	return s.repo.UnreadCount(studentID)
}
