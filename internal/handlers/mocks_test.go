package handlers_test

import (
	"context"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock MigrationService ---
type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) Status(ctx context.Context) (*domain.MigrationState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MigrationState), args.Error(1)
}
func (m *MockMigrationService) Start(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockMigrationService) ProcessBatch(ctx context.Context, offset int) (*domain.BatchResult, error) {
	args := m.Called(ctx, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}
func (m *MockMigrationService) Resume(ctx context.Context) (*domain.BatchResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}
func (m *MockMigrationService) Finalize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMigrationService) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.MigrationSvcFacade = (*MockMigrationService)(nil)

// --- Mock PriceDisplayService ---
type MockPriceDisplayService struct {
	mock.Mock
}

func (m *MockPriceDisplayService) ShouldDisplay(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
func (m *MockPriceDisplayService) Annotate(ctx context.Context, req dto.AnnotateRequest) (string, bool, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *MockPriceDisplayService) ProductPrice(ctx context.Context, productID int64) (*domain.ProductPrice, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPrice), args.Error(1)
}
func (m *MockPriceDisplayService) LegacyOrderAmount(ctx context.Context, orderCurrency domain.CurrencyCode, amount decimal.Decimal, discount bool) (string, bool, error) {
	args := m.Called(ctx, orderCurrency, amount, discount)
	return args.String(0), args.Bool(1), args.Error(2)
}

var _ portssvc.PriceDisplaySvcFacade = (*MockPriceDisplayService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context) (*domain.StoreSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreSettings), args.Error(1)
}
func (m *MockSettingsService) StoreCurrency(ctx context.Context) (domain.CurrencyCode, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CurrencyCode), args.Error(1)
}
func (m *MockSettingsService) UpdateDisplay(ctx context.Context, req dto.UpdateDisplaySettingsRequest) (*domain.StoreSettings, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreSettings), args.Error(1)
}
func (m *MockSettingsService) SetStoreCurrency(ctx context.Context, code domain.CurrencyCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)
