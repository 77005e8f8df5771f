package services

import (
	"fmt"
	"time"

	"github.com/b3dotfun/sdk-go/internal/models"
	"gorm.io/gorm"
)

type CheckoutSessionService interface {
	CreateSession(record *models.CheckoutSessionRecord) error
	GetSession(sessionID string) (*models.CheckoutSessionRecord, error)
	ListSessionsByUser(userID string) ([]models.CheckoutSessionRecord, error)
	SyncSession(session *models.CheckoutSession) error
	ExpireStaleSessions() (int64, error)
}

type checkoutSessionService struct {
	db *gorm.DB
}

// NewCheckoutSessionService creates a new CheckoutSessionService
func NewCheckoutSessionService(db *gorm.DB) CheckoutSessionService {
	return &checkoutSessionService{db: db}
}

// CreateSession stores a local snapshot of a newly opened session
func (s *checkoutSessionService) CreateSession(record *models.CheckoutSessionRecord) error {
	return s.db.Create(record).Error
}

// GetSession returns a session snapshot. Expired sessions error rather than
// returning stale state.
func (s *checkoutSessionService) GetSession(sessionID string) (*models.CheckoutSessionRecord, error) {
	var record models.CheckoutSessionRecord
	err := s.db.Where("id = ?", sessionID).First(&record).Error
	if err != nil {
		return nil, err
	}

	if record.Status != models.CheckoutSessionStatusComplete && time.Now().After(record.ExpiresAt) {
		return nil, fmt.Errorf("session expired")
	}
	return &record, nil
}

// ListSessionsByUser returns all session snapshots for a user
func (s *checkoutSessionService) ListSessionsByUser(userID string) ([]models.CheckoutSessionRecord, error) {
	var records []models.CheckoutSessionRecord
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}

// SyncSession refreshes a snapshot from the backend's current view of the
// session. The backend is the source of truth; only its fields are copied.
func (s *checkoutSessionService) SyncSession(session *models.CheckoutSession) error {
	updates := map[string]interface{}{
		"status":       session.Status,
		"order_status": session.OrderStatus,
	}
	if session.OrderID != "" {
		updates["order_id"] = session.OrderID
	}
	if session.CheckoutURL != "" {
		updates["checkout_url"] = session.CheckoutURL
	}

	return s.db.Model(&models.CheckoutSessionRecord{}).Where("id = ?", session.ID).Updates(updates).Error
}

// ExpireStaleSessions marks open sessions past their deadline as expired and
// returns how many were updated.
func (s *checkoutSessionService) ExpireStaleSessions() (int64, error) {
	result := s.db.Model(&models.CheckoutSessionRecord{}).
		Where("status IN ? AND expires_at < ?",
			[]models.CheckoutSessionStatus{models.CheckoutSessionStatusOpen, models.CheckoutSessionStatusProcessing},
			time.Now()).
		Update("status", models.CheckoutSessionStatusExpired)
	return result.RowsAffected, result.Error
}
