package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/internal/service"
	"billbook/mocks"
)

type referenceMocks struct {
	catalog *mocks.MockCatalogRepo
	units   *mocks.MockUnitRepo
	taxes   *mocks.MockTaxRateRepo
	hsn     *mocks.MockHSNRepo
	cache   *mocks.MockReferenceCache
}

func newReferenceMocks() *referenceMocks {
	return &referenceMocks{
		catalog: new(mocks.MockCatalogRepo),
		units:   new(mocks.MockUnitRepo),
		taxes:   new(mocks.MockTaxRateRepo),
		hsn:     new(mocks.MockHSNRepo),
		cache:   new(mocks.MockReferenceCache),
	}
}

func (m *referenceMocks) expectLoad(country string) {
	refs := testRefs()
	m.units.On("ListUnits", mock.Anything).Return(refs.Units, nil)
	m.units.On("ListConversions", mock.Anything).Return(refs.Conversions, nil)
	m.catalog.On("List", mock.Anything).Return(refs.Catalog, nil)
	m.taxes.On("ListByCountry", mock.Anything, country).Return(refs.TaxRates["IN"], nil)
	m.hsn.On("LoadAll", mock.Anything).Return([]domain.HSNEntry{{Code: "3401", GSTRate: 18}}, nil)
}

func TestReferenceService_Snapshot_NoCacheLoadsRepos(t *testing.T) {
	m := newReferenceMocks()
	m.expectLoad("IN")
	svc := service.NewReferenceService(m.catalog, m.units, m.taxes, m.hsn, nil, "IN")

	refs, err := svc.Snapshot(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "IN", refs.Country)
	assert.Len(t, refs.Catalog, 1)
	assert.Len(t, refs.HSN, 1)
	assert.Equal(t, 18.0, refs.TaxRate("IN", "GST18"))
	m.units.AssertExpectations(t)
	m.taxes.AssertExpectations(t)
}

func TestReferenceService_Snapshot_CacheHitSkipsRepos(t *testing.T) {
	m := newReferenceMocks()
	cached := testRefs()
	m.cache.On("Get", mock.Anything, "IN").Return(cached, true, nil)
	svc := service.NewReferenceService(m.catalog, m.units, m.taxes, m.hsn, m.cache, "IN")

	refs, err := svc.Snapshot(context.Background(), "IN")
	require.NoError(t, err)

	assert.Same(t, cached, refs)
	m.catalog.AssertNotCalled(t, "List", mock.Anything)
	m.cache.AssertExpectations(t)
}

func TestReferenceService_Snapshot_CacheMissStoresSnapshot(t *testing.T) {
	m := newReferenceMocks()
	m.expectLoad("AE")
	m.cache.On("Get", mock.Anything, "AE").Return(nil, false, nil)
	m.cache.On("Set", mock.Anything, "AE", mock.AnythingOfType("*pricing.ReferenceData")).Return(nil)
	svc := service.NewReferenceService(m.catalog, m.units, m.taxes, m.hsn, m.cache, "IN")

	refs, err := svc.Snapshot(context.Background(), "AE")
	require.NoError(t, err)

	assert.Equal(t, "AE", refs.Country)
	m.cache.AssertExpectations(t)
}

func TestReferenceService_Snapshot_CacheErrorsFallBackToRepos(t *testing.T) {
	m := newReferenceMocks()
	m.expectLoad("IN")
	m.cache.On("Get", mock.Anything, "IN").Return(nil, false, errors.New("connection refused"))
	m.cache.On("Set", mock.Anything, "IN", mock.Anything).Return(errors.New("connection refused"))
	svc := service.NewReferenceService(m.catalog, m.units, m.taxes, m.hsn, m.cache, "IN")

	refs, err := svc.Snapshot(context.Background(), "IN")
	require.NoError(t, err)
	assert.NotNil(t, refs)
}

func TestReferenceService_Snapshot_RepoError(t *testing.T) {
	m := newReferenceMocks()
	m.units.On("ListUnits", mock.Anything).Return(nil, errors.New("db down"))
	svc := service.NewReferenceService(m.catalog, m.units, m.taxes, m.hsn, nil, "IN")

	refs, err := svc.Snapshot(context.Background(), "IN")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "loading units")
	assert.Nil(t, refs)
}

func TestReferenceService_Invalidate(t *testing.T) {
	m := newReferenceMocks()
	m.cache.On("Invalidate", mock.Anything, "IN").Return(nil)
	svc := service.NewReferenceService(m.catalog, m.units, m.taxes, m.hsn, m.cache, "IN")

	require.NoError(t, svc.Invalidate(context.Background(), ""))
	m.cache.AssertExpectations(t)

	noCache := service.NewReferenceService(m.catalog, m.units, m.taxes, m.hsn, nil, "IN")
	assert.NoError(t, noCache.Invalidate(context.Background(), "IN"))
}

func TestCalculatorService_CalculateLine(t *testing.T) {
	refSvc := new(mocks.MockReferenceService)
	refSvc.On("Snapshot", mock.Anything, "IN").Return(testRefs(), nil)
	svc := service.NewCalculatorService(refSvc)

	item, err := svc.CalculateLine(context.Background(), &service.LineCalculationInput{
		Country: "IN",
		Field:   domain.ItemFieldItemID,
		Value:   "cat-soap",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "Soap", item.ItemName)
	assert.Equal(t, 1.0, item.PrimaryQuantity)
	assert.Equal(t, 18.0, item.TaxRate)
	assert.Equal(t, 118.0, item.Amount)
}

func TestCalculatorService_CalculateLine_EmptyFieldRefreshes(t *testing.T) {
	refSvc := new(mocks.MockReferenceService)
	refSvc.On("Snapshot", mock.Anything, "IN").Return(testRefs(), nil)
	svc := service.NewCalculatorService(refSvc)

	in := soapItem()
	in.TaxRate, in.TaxAmount, in.Amount = 0, 0, 0
	item, err := svc.CalculateLine(context.Background(), &service.LineCalculationInput{Country: "IN", Item: in})
	require.NoError(t, err)

	assert.Equal(t, 18.0, item.TaxRate)
	assert.Equal(t, 118.0, item.Amount)
}

func TestCalculatorService_CalculateLine_DerivedFieldRejected(t *testing.T) {
	refSvc := new(mocks.MockReferenceService)
	refSvc.On("Snapshot", mock.Anything, "IN").Return(testRefs(), nil)
	svc := service.NewCalculatorService(refSvc)

	item, err := svc.CalculateLine(context.Background(), &service.LineCalculationInput{
		Country: "IN",
		Item:    soapItem(),
		Field:   domain.ItemFieldTaxAmount,
		Value:   5,
	})
	assert.ErrorIs(t, err, domain.ErrFieldNotEditable)
	assert.Nil(t, item)
}

func TestCalculatorService_CalculateLine_InvalidKind(t *testing.T) {
	svc := service.NewCalculatorService(new(mocks.MockReferenceService))

	_, err := svc.CalculateLine(context.Background(), &service.LineCalculationInput{Kind: "refund"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}
