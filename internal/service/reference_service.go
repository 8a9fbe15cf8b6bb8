package service

import (
	"context"
	"fmt"
	"log"

	"billbook/internal/metrics"
	"billbook/internal/port"
	"billbook/internal/pricing"
)

// ReferenceService assembles the read-only master data the pricing engine works against.
type ReferenceService interface {
	Snapshot(ctx context.Context, country string) (*pricing.ReferenceData, error)
	Invalidate(ctx context.Context, country string) error
}

type referenceService struct {
	catalogRepo    port.CatalogRepository
	unitRepo       port.UnitRepository
	taxRateRepo    port.TaxRateRepository
	hsnRepo        port.HSNRepository
	cache          port.ReferenceCache
	defaultCountry string
}

// NewReferenceService creates a new ReferenceService. cache may be nil, in which case every
// snapshot is loaded from the repositories.
func NewReferenceService(
	catalogRepo port.CatalogRepository,
	unitRepo port.UnitRepository,
	taxRateRepo port.TaxRateRepository,
	hsnRepo port.HSNRepository,
	cache port.ReferenceCache,
	defaultCountry string,
) ReferenceService {
	return &referenceService{
		catalogRepo:    catalogRepo,
		unitRepo:       unitRepo,
		taxRateRepo:    taxRateRepo,
		hsnRepo:        hsnRepo,
		cache:          cache,
		defaultCountry: defaultCountry,
	}
}

// Snapshot returns country's reference data, reading through the cache when one is set.
// Cache failures are logged and fall back to the repositories.
func (s *referenceService) Snapshot(ctx context.Context, country string) (*pricing.ReferenceData, error) {
	if country == "" {
		country = s.defaultCountry
	}

	if s.cache != nil {
		refs, hit, err := s.cache.Get(ctx, country)
		switch {
		case err != nil:
			log.Printf("referenceService.Snapshot: cache read for %s failed: %v", country, err)
		case hit:
			metrics.ReferenceCacheTotal.WithLabelValues("hit").Inc()
			return refs, nil
		default:
			metrics.ReferenceCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	refs, err := s.load(ctx, country)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, country, refs); err != nil {
			log.Printf("referenceService.Snapshot: cache write for %s failed: %v", country, err)
		}
	}
	return refs, nil
}

func (s *referenceService) load(ctx context.Context, country string) (*pricing.ReferenceData, error) {
	units, err := s.unitRepo.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}
	conversions, err := s.unitRepo.ListConversions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading unit conversions: %w", err)
	}
	catalog, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	taxRates, err := s.taxRateRepo.ListByCountry(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("loading tax rates for %s: %w", country, err)
	}
	hsn, err := s.hsnRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading hsn codes: %w", err)
	}

	log.Printf("referenceService.load: %s snapshot with %d catalog items, %d units, %d tax rates, %d hsn codes",
		country, len(catalog), len(units), len(taxRates), len(hsn))

	return &pricing.ReferenceData{
		Country:     country,
		Units:       units,
		Conversions: conversions,
		Catalog:     catalog,
		TaxRates:    pricing.TaxRateTable{country: taxRates},
		HSN:         hsn,
	}, nil
}

func (s *referenceService) Invalidate(ctx context.Context, country string) error {
	if s.cache == nil {
		return nil
	}
	if country == "" {
		country = s.defaultCountry
	}
	return s.cache.Invalidate(ctx, country)
}
