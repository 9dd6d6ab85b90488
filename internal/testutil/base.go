package testutil

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/config"
	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/clientdesk/clientdesk/internal/repository/memory"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides common functionality for service tests:
// a request-scoped context, default config, logger, a fresh set of
// in-memory stores and a capturing notification sink per test.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	stores Stores
	sink   *InMemorySink
	locker *memory.KeyLocker
}

// SetupTest initializes fresh state before each test.
func (s *BaseServiceTestSuite) SetupTest() {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	s.ctx = ctx

	s.cfg = config.GetDefaultConfig()
	s.logger = logger.GetLogger()
	s.stores = NewInMemoryStores()
	s.sink = NewInMemorySink()
	s.locker = memory.NewKeyLocker()
}

// TearDownTest cleans up after each test.
func (s *BaseServiceTestSuite) TearDownTest() {
	s.sink.Reset()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetSink() *InMemorySink {
	return s.sink
}

func (s *BaseServiceTestSuite) GetLocker() *memory.KeyLocker {
	return s.locker
}
