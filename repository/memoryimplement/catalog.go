package memoryimplement

import (
	"fmt"
	"sort"
	"time"

	"github.com/FeifanTech/GEO-Nexus/entity"
)

// ========== SearchQueryRepository 内存实现 ==========

type SearchQueryRepository struct {
	factory *Factory
}

func (r *SearchQueryRepository) Create(query *entity.SearchQuery) error {
	if query == nil || query.ID == "" {
		return fmt.Errorf("query id is required")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	clone := *query
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	clone.UpdatedAt = time.Now()
	r.factory.queries[query.ID] = &clone
	return nil
}

func (r *SearchQueryRepository) Get(queryID string) (*entity.SearchQuery, error) {
	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	query, ok := r.factory.queries[queryID]
	if !ok {
		return nil, nil
	}
	clone := *query
	return &clone, nil
}

func (r *SearchQueryRepository) List(userID string) ([]*entity.SearchQuery, error) {
	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	var queries []*entity.SearchQuery
	for _, query := range r.factory.queries {
		if query.UserID != userID {
			continue
		}
		clone := *query
		queries = append(queries, &clone)
	}
	sort.Slice(queries, func(i, j int) bool {
		return queries[i].CreatedAt.After(queries[j].CreatedAt)
	})
	return queries, nil
}

func (r *SearchQueryRepository) Update(query *entity.SearchQuery) error {
	if query == nil || query.ID == "" {
		return fmt.Errorf("query id is required")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	existing, ok := r.factory.queries[query.ID]
	if !ok {
		return fmt.Errorf("search query %s not found", query.ID)
	}
	clone := *query
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	r.factory.queries[query.ID] = &clone
	return nil
}

func (r *SearchQueryRepository) Delete(queryID string) error {
	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	delete(r.factory.queries, queryID)
	return nil
}

// ========== ProductRepository 内存实现 ==========

type ProductRepository struct {
	factory *Factory
}

func (r *ProductRepository) Create(product *entity.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product id is required")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	clone := *product
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	clone.UpdatedAt = time.Now()
	r.factory.products[product.ID] = &clone
	return nil
}

func (r *ProductRepository) Get(productID string) (*entity.Product, error) {
	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	product, ok := r.factory.products[productID]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) List(userID string) ([]*entity.Product, error) {
	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	var products []*entity.Product
	for _, product := range r.factory.products {
		if product.UserID != userID {
			continue
		}
		clone := *product
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *ProductRepository) Update(product *entity.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product id is required")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	existing, ok := r.factory.products[product.ID]
	if !ok {
		return fmt.Errorf("product %s not found", product.ID)
	}
	clone := *product
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	r.factory.products[product.ID] = &clone
	return nil
}

func (r *ProductRepository) Delete(productID string) error {
	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	delete(r.factory.products, productID)
	return nil
}

// ========== CompetitorRepository 内存实现 ==========

type CompetitorRepository struct {
	factory *Factory
}

func (r *CompetitorRepository) Create(competitor *entity.Competitor) error {
	if competitor == nil || competitor.ID == "" {
		return fmt.Errorf("competitor id is required")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	clone := *competitor
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	clone.UpdatedAt = time.Now()
	r.factory.competitors[competitor.ID] = &clone
	return nil
}

func (r *CompetitorRepository) Get(competitorID string) (*entity.Competitor, error) {
	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	competitor, ok := r.factory.competitors[competitorID]
	if !ok {
		return nil, nil
	}
	clone := *competitor
	return &clone, nil
}

func (r *CompetitorRepository) List(userID string) ([]*entity.Competitor, error) {
	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	var competitors []*entity.Competitor
	for _, competitor := range r.factory.competitors {
		if competitor.UserID != userID {
			continue
		}
		clone := *competitor
		competitors = append(competitors, &clone)
	}
	sort.Slice(competitors, func(i, j int) bool {
		return competitors[i].CreatedAt.After(competitors[j].CreatedAt)
	})
	return competitors, nil
}

func (r *CompetitorRepository) Update(competitor *entity.Competitor) error {
	if competitor == nil || competitor.ID == "" {
		return fmt.Errorf("competitor id is required")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	existing, ok := r.factory.competitors[competitor.ID]
	if !ok {
		return fmt.Errorf("competitor %s not found", competitor.ID)
	}
	clone := *competitor
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	r.factory.competitors[competitor.ID] = &clone
	return nil
}

func (r *CompetitorRepository) Delete(competitorID string) error {
	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	delete(r.factory.competitors, competitorID)
	return nil
}
