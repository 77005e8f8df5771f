package services

import (
	"github.com/b3dotfun/sdk-go/internal/models"
	"gorm.io/gorm"
)

type SwapRecordService interface {
	CreateSwapRecord(record *models.SwapRecord) error
	GetSwapRecordByID(id uint) (*models.SwapRecord, error)
	ListSwapRecordsByUser(userAddress string) ([]models.SwapRecord, error)
	ListSwapRecordsByToken(tokenAddress string) ([]models.SwapRecord, error)
	UpdateSwapRecordStatus(id uint, status models.TransactionStatus, txHash, toAmount string) error
}

type swapRecordService struct {
	db *gorm.DB
}

// NewSwapRecordService creates a new SwapRecordService
func NewSwapRecordService(db *gorm.DB) SwapRecordService {
	return &swapRecordService{db: db}
}

// CreateSwapRecord creates a new swap record
func (s *swapRecordService) CreateSwapRecord(record *models.SwapRecord) error {
	return s.db.Create(record).Error
}

// GetSwapRecordByID returns a swap record by its ID
func (s *swapRecordService) GetSwapRecordByID(id uint) (*models.SwapRecord, error) {
	var record models.SwapRecord
	err := s.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListSwapRecordsByUser returns all swaps submitted by a wallet address
func (s *swapRecordService) ListSwapRecordsByUser(userAddress string) ([]models.SwapRecord, error) {
	var records []models.SwapRecord
	err := s.db.Where("user_address = ?", userAddress).Order("created_at DESC").Find(&records).Error
	return records, err
}

// ListSwapRecordsByToken returns all swaps against a token's pool
func (s *swapRecordService) ListSwapRecordsByToken(tokenAddress string) ([]models.SwapRecord, error) {
	var records []models.SwapRecord
	err := s.db.Where("token_address = ?", tokenAddress).Order("created_at DESC").Find(&records).Error
	return records, err
}

// UpdateSwapRecordStatus updates the status of a swap record
func (s *swapRecordService) UpdateSwapRecordStatus(id uint, status models.TransactionStatus, txHash, toAmount string) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if txHash != "" {
		updates["transaction_hash"] = txHash
	}
	if toAmount != "" {
		updates["to_amount"] = toAmount
	}

	return s.db.Model(&models.SwapRecord{}).Where("id = ?", id).Updates(updates).Error
}
