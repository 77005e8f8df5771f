package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/b3dotfun/sdk-go/internal/database"
	"github.com/b3dotfun/sdk-go/internal/models"
)

type SwapRecordServiceTestSuite struct {
	suite.Suite
	db      *database.Database
	service SwapRecordService
}

func (suite *SwapRecordServiceTestSuite) SetupTest() {
	db, err := database.NewDatabase(":memory:")
	suite.Require().NoError(err)
	suite.db = db
	suite.service = NewSwapRecordService(db.DB)
}

func (suite *SwapRecordServiceTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *SwapRecordServiceTestSuite) newRecord() *models.SwapRecord {
	return &models.SwapRecord{
		UserAddress:       "0x1111111111111111111111111111111111111111",
		TokenAddress:      "0x7777777777777777777777777777777777777777",
		Direction:         models.SwapDirectionBuy,
		FromToken:         "0x0000000000000000000000000000000000000000",
		ToToken:           "0x7777777777777777777777777777777777777777",
		FromAmount:        "1000000000000000000",
		SlippageTolerance: "0.5",
		Status:            models.TransactionStatusPending,
	}
}

func (suite *SwapRecordServiceTestSuite) TestCreateAndGetSwapRecord() {
	record := suite.newRecord()
	suite.NoError(suite.service.CreateSwapRecord(record))
	suite.NotZero(record.ID)

	found, err := suite.service.GetSwapRecordByID(record.ID)
	suite.NoError(err)
	suite.Equal(models.SwapDirectionBuy, found.Direction)
	suite.Equal("1000000000000000000", found.FromAmount)
}

func (suite *SwapRecordServiceTestSuite) TestListSwapRecordsByUser() {
	record := suite.newRecord()
	suite.NoError(suite.service.CreateSwapRecord(record))

	other := suite.newRecord()
	other.UserAddress = "0x2222222222222222222222222222222222222222"
	suite.NoError(suite.service.CreateSwapRecord(other))

	records, err := suite.service.ListSwapRecordsByUser(record.UserAddress)
	suite.NoError(err)
	suite.Len(records, 1)
	suite.Equal(record.ID, records[0].ID)
}

func (suite *SwapRecordServiceTestSuite) TestListSwapRecordsByToken() {
	record := suite.newRecord()
	suite.NoError(suite.service.CreateSwapRecord(record))

	records, err := suite.service.ListSwapRecordsByToken(record.TokenAddress)
	suite.NoError(err)
	suite.Len(records, 1)
}

func (suite *SwapRecordServiceTestSuite) TestUpdateSwapRecordStatus() {
	record := suite.newRecord()
	suite.NoError(suite.service.CreateSwapRecord(record))

	err := suite.service.UpdateSwapRecordStatus(record.ID, models.TransactionStatusConfirmed, "0xdef456", "42000000")
	suite.NoError(err)

	found, err := suite.service.GetSwapRecordByID(record.ID)
	suite.NoError(err)
	suite.Equal(models.TransactionStatusConfirmed, found.Status)
	suite.Equal("0xdef456", found.TransactionHash)
	suite.Equal("42000000", found.ToAmount)
}

func TestSwapRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SwapRecordServiceTestSuite))
}
