package services_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	"github.com/SscSPs/dual_price_app/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func adminCtx() context.Context {
	return middleware.WithPrincipal(context.Background(), "admin", []string{domain.CapabilityManageOptions})
}

func shopperCtx() context.Context {
	return middleware.WithPrincipal(context.Background(), "shopper", []string{"read"})
}

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// memorySettings is an in-memory settings table. failSet makes SetSetting fail
// for a key=value pair.
type memorySettings struct {
	mu      sync.Mutex
	values  map[string]string
	failSet map[string]error
}

func newMemorySettings(values map[string]string) *memorySettings {
	if values == nil {
		values = map[string]string{}
	}
	return &memorySettings{values: values, failSet: map[string]error{}}
}

var _ portsrepo.SettingsRepositoryFacade = (*memorySettings)(nil)

func (m *memorySettings) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *memorySettings) GetSetting(_ context.Context, key string) (string, error) {
	if v, ok := m.get(key); ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (m *memorySettings) GetSettings(_ context.Context, keys ...string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memorySettings) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failSet[key+"="+value]; ok {
		return err
	}
	m.values[key] = value
	return nil
}

func (m *memorySettings) SetSettings(ctx context.Context, values map[string]string) error {
	return m.ApplySettings(ctx, values, nil)
}

func (m *memorySettings) DeleteSettings(ctx context.Context, keys ...string) error {
	return m.ApplySettings(ctx, nil, keys)
}

func (m *memorySettings) ApplySettings(_ context.Context, values map[string]string, remove []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.values, values)
	for _, k := range remove {
		delete(m.values, k)
	}
	return nil
}

// memoryCatalog is an in-memory catalog recording every write.
type memoryCatalog struct {
	mu        sync.Mutex
	products  map[int64]domain.Product
	topLevel  []int64
	missing   map[int64]bool
	panicOn   map[int64]bool
	saves     map[int64]int
	listCalls [][2]int
	synced    []int64
}

// newCatalog creates n simple products with IDs 1..n priced at 25.00.
func newCatalog(n int) *memoryCatalog {
	c := &memoryCatalog{
		products: map[int64]domain.Product{},
		missing:  map[int64]bool{},
		panicOn:  map[int64]bool{},
		saves:    map[int64]int{},
	}
	for i := 1; i <= n; i++ {
		c.add(domain.Product{ProductID: int64(i), Type: domain.ProductSimple, Name: fmt.Sprintf("Product %d", i), RegularPrice: dec("25")})
	}
	return c
}

func (c *memoryCatalog) add(p domain.Product) {
	c.products[p.ProductID] = p
	if p.ParentID == nil {
		c.topLevel = append(c.topLevel, p.ProductID)
		slices.Sort(c.topLevel)
	}
}

// truncate deletes every top-level product past the first n.
func (c *memoryCatalog) truncate(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.topLevel[n:] {
		delete(c.products, id)
	}
	c.topLevel = c.topLevel[:n]
}

func (c *memoryCatalog) product(id int64) domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[id]
}

var _ portsrepo.CatalogRepositoryFacade = (*memoryCatalog)(nil)

func (c *memoryCatalog) CountProducts(_ context.Context) (int, error) {
	return len(c.topLevel), nil
}

func (c *memoryCatalog) ListProductIDs(_ context.Context, offset, limit int) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listCalls = append(c.listCalls, [2]int{offset, limit})
	if offset >= len(c.topLevel) {
		return nil, nil
	}
	end := min(offset+limit, len(c.topLevel))
	return slices.Clone(c.topLevel[offset:end]), nil
}

func (c *memoryCatalog) FindProductByID(_ context.Context, productID int64) (*domain.Product, error) {
	if c.panicOn[productID] {
		panic(fmt.Sprintf("corrupt meta for %d", productID))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok || c.missing[productID] {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (c *memoryCatalog) SaveProduct(_ context.Context, product domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ProductID] = product
	c.saves[product.ProductID]++
	return nil
}

func (c *memoryCatalog) SyncVariablePriceRange(_ context.Context, parentID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synced = append(c.synced, parentID)
	parent := c.products[parentID]
	var lo, hi *decimal.Decimal
	for _, id := range parent.Variations {
		v, ok := c.products[id]
		if !ok {
			continue
		}
		price, ok := v.ActivePrice()
		if !ok {
			continue
		}
		if lo == nil || price.LessThan(*lo) {
			lo = &price
		}
		if hi == nil || price.GreaterThan(*hi) {
			hi = &price
		}
	}
	parent.MinPrice, parent.MaxPrice = lo, hi
	c.products[parentID] = parent
	return nil
}

// MockPriceCache is a mock type for the PriceCache interface
type MockPriceCache struct {
	mock.Mock
}

func (m *MockPriceCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	args := m.Called(ctx, key, dest, loader)
	return args.Error(0)
}

func (m *MockPriceCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSettingsRepository is a mock type for the SettingsRepositoryFacade interface
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context, keys ...string) (map[string]string, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingsRepository) SetSettings(ctx context.Context, values map[string]string) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *MockSettingsRepository) DeleteSettings(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockSettingsRepository) ApplySettings(ctx context.Context, values map[string]string, remove []string) error {
	args := m.Called(ctx, values, remove)
	return args.Error(0)
}
