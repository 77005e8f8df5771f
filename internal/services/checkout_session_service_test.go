package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/b3dotfun/sdk-go/internal/database"
	"github.com/b3dotfun/sdk-go/internal/models"
)

type CheckoutSessionServiceTestSuite struct {
	suite.Suite
	db      *database.Database
	service CheckoutSessionService
}

func (suite *CheckoutSessionServiceTestSuite) SetupTest() {
	db, err := database.NewDatabase(":memory:")
	suite.Require().NoError(err)
	suite.db = db
	suite.service = NewCheckoutSessionService(db.DB)
}

func (suite *CheckoutSessionServiceTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *CheckoutSessionServiceTestSuite) newRecord(id string) *models.CheckoutSessionRecord {
	return &models.CheckoutSessionRecord{
		ID:          id,
		Status:      models.CheckoutSessionStatusOpen,
		CheckoutURL: "https://checkout.example/" + id,
		OrderType:   models.OrderTypeSwap,
		SrcChainID:  1,
		DstChainID:  8453,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func (suite *CheckoutSessionServiceTestSuite) TestCreateAndGetSession() {
	record := suite.newRecord("cs_1")
	suite.NoError(suite.service.CreateSession(record))

	found, err := suite.service.GetSession("cs_1")
	suite.NoError(err)
	suite.Equal(models.CheckoutSessionStatusOpen, found.Status)

	_, err = suite.service.GetSession("cs_missing")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *CheckoutSessionServiceTestSuite) TestGetSessionRejectsExpired() {
	record := suite.newRecord("cs_old")
	record.ExpiresAt = time.Now().Add(-time.Minute)
	suite.NoError(suite.service.CreateSession(record))

	_, err := suite.service.GetSession("cs_old")
	suite.Error(err)
	suite.Contains(err.Error(), "session expired")
}

func (suite *CheckoutSessionServiceTestSuite) TestGetSessionReturnsCompletedPastExpiry() {
	// Completed sessions stay readable after their deadline
	record := suite.newRecord("cs_done")
	record.Status = models.CheckoutSessionStatusComplete
	record.ExpiresAt = time.Now().Add(-time.Minute)
	suite.NoError(suite.service.CreateSession(record))

	found, err := suite.service.GetSession("cs_done")
	suite.NoError(err)
	suite.Equal(models.CheckoutSessionStatusComplete, found.Status)
}

func (suite *CheckoutSessionServiceTestSuite) TestListSessionsByUser() {
	userID := "user-42"
	record := suite.newRecord("cs_mine")
	record.UserID = &userID
	suite.NoError(suite.service.CreateSession(record))
	suite.NoError(suite.service.CreateSession(suite.newRecord("cs_anon")))

	sessions, err := suite.service.ListSessionsByUser(userID)
	suite.NoError(err)
	suite.Len(sessions, 1)
	suite.Equal("cs_mine", sessions[0].ID)
}

func (suite *CheckoutSessionServiceTestSuite) TestSyncSession() {
	record := suite.newRecord("cs_sync")
	suite.NoError(suite.service.CreateSession(record))

	err := suite.service.SyncSession(&models.CheckoutSession{
		ID:          "cs_sync",
		Status:      models.CheckoutSessionStatusProcessing,
		OrderID:     "ord_9",
		OrderStatus: models.OrderStatusExecuting,
	})
	suite.NoError(err)

	found, err := suite.service.GetSession("cs_sync")
	suite.NoError(err)
	suite.Equal(models.CheckoutSessionStatusProcessing, found.Status)
	suite.Equal("ord_9", found.OrderID)
	suite.Equal(models.OrderStatusExecuting, found.OrderStatus)
}

func (suite *CheckoutSessionServiceTestSuite) TestExpireStaleSessions() {
	stale := suite.newRecord("cs_stale")
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	suite.NoError(suite.service.CreateSession(stale))

	live := suite.newRecord("cs_live")
	suite.NoError(suite.service.CreateSession(live))

	done := suite.newRecord("cs_complete")
	done.Status = models.CheckoutSessionStatusComplete
	done.ExpiresAt = time.Now().Add(-time.Minute)
	suite.NoError(suite.service.CreateSession(done))

	expired, err := suite.service.ExpireStaleSessions()
	suite.NoError(err)
	suite.Equal(int64(1), expired)

	var record models.CheckoutSessionRecord
	suite.NoError(suite.db.DB.Where("id = ?", "cs_stale").First(&record).Error)
	suite.Equal(models.CheckoutSessionStatusExpired, record.Status)
}

func TestCheckoutSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutSessionServiceTestSuite))
}
