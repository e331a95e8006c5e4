package service

import (
	"context"

	"github.com/liliang-cn/claimwizard/internal/catalog"
	"github.com/liliang-cn/claimwizard/internal/claim"
	"github.com/liliang-cn/claimwizard/internal/domain"
)

// CatalogService answers the condition query endpoint
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Query returns the query dataset entries matching q
func (s *CatalogService) Query(ctx context.Context, q string) []domain.ConditionInfo {
	return s.catalog.Query(q)
}

// Conditions returns the wizard catalog filtered by q
func (s *CatalogService) Conditions(ctx context.Context, q string) []domain.Condition {
	return claim.Filter(s.catalog.Conditions(), q)
}
