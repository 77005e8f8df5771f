package services

import (
	"github.com/b3dotfun/sdk-go/internal/models"
	"gorm.io/gorm"
)

type TokenDeploymentService interface {
	CreateDeployment(deployment *models.TokenDeployment) error
	CreateDeploymentWithUser(deployment *models.TokenDeployment, userID *string) error
	GetDeploymentByID(id uint) (*models.TokenDeployment, error)
	GetDeploymentByTokenAddress(tokenAddress string) (*models.TokenDeployment, error)
	GetDeploymentByTransactionHash(txHash string) (*models.TokenDeployment, error)
	ListDeployments() ([]models.TokenDeployment, error)
	ListDeploymentsByUser(userID string) ([]models.TokenDeployment, error)
	ListDeploymentsByChain(chainID int64) ([]models.TokenDeployment, error)
	UpdateDeploymentStatus(id uint, status models.TransactionStatus, tokenAddress, txHash string) error
	DeleteDeployment(id uint) error
}

type tokenDeploymentService struct {
	db *gorm.DB
}

// NewTokenDeploymentService creates a new TokenDeploymentService
func NewTokenDeploymentService(db *gorm.DB) TokenDeploymentService {
	return &tokenDeploymentService{db: db}
}

// CreateDeployment creates a new deployment record
func (s *tokenDeploymentService) CreateDeployment(deployment *models.TokenDeployment) error {
	return s.db.Create(deployment).Error
}

// CreateDeploymentWithUser creates a new deployment record with an optional user ID
func (s *tokenDeploymentService) CreateDeploymentWithUser(deployment *models.TokenDeployment, userID *string) error {
	deployment.UserID = userID
	return s.db.Create(deployment).Error
}

// GetDeploymentByID returns a deployment by its ID
func (s *tokenDeploymentService) GetDeploymentByID(id uint) (*models.TokenDeployment, error) {
	var deployment models.TokenDeployment
	err := s.db.First(&deployment, id).Error
	if err != nil {
		return nil, err
	}
	return &deployment, nil
}

// GetDeploymentByTokenAddress returns a deployment by its token address
func (s *tokenDeploymentService) GetDeploymentByTokenAddress(tokenAddress string) (*models.TokenDeployment, error) {
	var deployment models.TokenDeployment
	err := s.db.Where("token_address = ?", tokenAddress).First(&deployment).Error
	if err != nil {
		return nil, err
	}
	return &deployment, nil
}

// GetDeploymentByTransactionHash returns a deployment by its transaction hash
func (s *tokenDeploymentService) GetDeploymentByTransactionHash(txHash string) (*models.TokenDeployment, error) {
	var deployment models.TokenDeployment
	err := s.db.Where("transaction_hash = ?", txHash).First(&deployment).Error
	if err != nil {
		return nil, err
	}
	return &deployment, nil
}

// ListDeployments returns all deployments
func (s *tokenDeploymentService) ListDeployments() ([]models.TokenDeployment, error) {
	var deployments []models.TokenDeployment
	err := s.db.Order("created_at DESC").Find(&deployments).Error
	return deployments, err
}

// ListDeploymentsByUser returns all deployments for a specific user
func (s *tokenDeploymentService) ListDeploymentsByUser(userID string) ([]models.TokenDeployment, error) {
	var deployments []models.TokenDeployment
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&deployments).Error
	return deployments, err
}

// ListDeploymentsByChain returns all deployments on a specific chain
func (s *tokenDeploymentService) ListDeploymentsByChain(chainID int64) ([]models.TokenDeployment, error) {
	var deployments []models.TokenDeployment
	err := s.db.Where("chain_id = ?", chainID).Order("created_at DESC").Find(&deployments).Error
	return deployments, err
}

// UpdateDeploymentStatus updates the status of a deployment
func (s *tokenDeploymentService) UpdateDeploymentStatus(id uint, status models.TransactionStatus, tokenAddress, txHash string) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if tokenAddress != "" {
		updates["token_address"] = tokenAddress
	}
	if txHash != "" {
		updates["transaction_hash"] = txHash
	}

	return s.db.Model(&models.TokenDeployment{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteDeployment deletes a deployment by its ID
func (s *tokenDeploymentService) DeleteDeployment(id uint) error {
	return s.db.Delete(&models.TokenDeployment{}, id).Error
}
