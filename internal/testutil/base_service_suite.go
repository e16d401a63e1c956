package testutil

import (
	"context"

	"github.com/billaged/billaged/internal/config"
	"github.com/billaged/billaged/internal/logger"
	"github.com/billaged/billaged/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the repository fakes for testing
type Stores struct {
	InvoiceRepo *InMemoryInvoiceStore
	ProfileRepo *InMemoryProfileStore
}

// BaseServiceTestSuite provides common functionality for service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
}

// SetupTest initializes fresh stores and context before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.logger, _ = logger.NewLoggerWithLevel("error")
	s.config = config.GetDefaultConfig()
	s.stores = Stores{
		InvoiceRepo: NewInMemoryInvoiceStore(),
		ProfileRepo: NewInMemoryProfileStore(),
	}
	validator.NewValidator()
}

// TearDownTest clears the stores after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.InvoiceRepo.Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}
