package xormimplement

import (
	"fmt"

	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/repository"

	"xorm.io/builder"
)

// ========== SearchQueryRepository 实现 ==========

type SearchQueryRepository struct {
	session *Session
}

func NewSearchQueryRepository(session *Session) repository.SearchQueryRepository {
	return &SearchQueryRepository{session: session}
}

func (r *SearchQueryRepository) Create(query *entity.SearchQuery) error {
	if query == nil || query.ID == "" {
		return fmt.Errorf("query id is required")
	}
	if _, err := r.session.Table(entity.TableNameSearchQuery).Insert(query); err != nil {
		return fmt.Errorf("failed to insert search query: %w", err)
	}
	return nil
}

func (r *SearchQueryRepository) Get(queryID string) (*entity.SearchQuery, error) {
	if queryID == "" {
		return nil, fmt.Errorf("query id is required")
	}
	query := &entity.SearchQuery{}
	has, err := r.session.Table(entity.TableNameSearchQuery).
		Where(builder.Eq{entity.SearchQueryFieldID: queryID}).
		Get(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get search query: %w", err)
	}
	if !has {
		return nil, nil
	}
	return query, nil
}

func (r *SearchQueryRepository) List(userID string) ([]*entity.SearchQuery, error) {
	var queries []*entity.SearchQuery
	if err := r.session.Table(entity.TableNameSearchQuery).
		Where(builder.Eq{entity.SearchQueryFieldUserID: userID}).
		OrderBy(entity.SearchQueryFieldCreatedAt + " desc").
		Find(&queries); err != nil {
		return nil, fmt.Errorf("failed to list search queries: %w", err)
	}
	return queries, nil
}

func (r *SearchQueryRepository) Update(query *entity.SearchQuery) error {
	if query == nil || query.ID == "" {
		return fmt.Errorf("query id is required")
	}
	if _, err := r.session.Table(entity.TableNameSearchQuery).
		Where(builder.Eq{entity.SearchQueryFieldID: query.ID}).
		AllCols().Update(query); err != nil {
		return fmt.Errorf("failed to update search query: %w", err)
	}
	return nil
}

func (r *SearchQueryRepository) Delete(queryID string) error {
	if queryID == "" {
		return fmt.Errorf("query id is required")
	}
	if _, err := r.session.Table(entity.TableNameSearchQuery).
		Where(builder.Eq{entity.SearchQueryFieldID: queryID}).
		Delete(&entity.SearchQuery{}); err != nil {
		return fmt.Errorf("failed to delete search query: %w", err)
	}
	return nil
}

// ========== ProductRepository 实现 ==========

type ProductRepository struct {
	session *Session
}

func NewProductRepository(session *Session) repository.ProductRepository {
	return &ProductRepository{session: session}
}

func (r *ProductRepository) Create(product *entity.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if _, err := r.session.Table(entity.TableNameProduct).Insert(product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Get(productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	product := &entity.Product{}
	has, err := r.session.Table(entity.TableNameProduct).
		Where(builder.Eq{entity.ProductFieldID: productID}).
		Get(product)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if !has {
		return nil, nil
	}
	return product, nil
}

func (r *ProductRepository) List(userID string) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := r.session.Table(entity.TableNameProduct).
		Where(builder.Eq{entity.ProductFieldUserID: userID}).
		OrderBy(entity.ProductFieldCreatedAt + " desc").
		Find(&products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(product *entity.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if _, err := r.session.Table(entity.TableNameProduct).
		Where(builder.Eq{entity.ProductFieldID: product.ID}).
		AllCols().Update(product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Delete(productID string) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	if _, err := r.session.Table(entity.TableNameProduct).
		Where(builder.Eq{entity.ProductFieldID: productID}).
		Delete(&entity.Product{}); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// ========== CompetitorRepository 实现 ==========

type CompetitorRepository struct {
	session *Session
}

func NewCompetitorRepository(session *Session) repository.CompetitorRepository {
	return &CompetitorRepository{session: session}
}

func (r *CompetitorRepository) Create(competitor *entity.Competitor) error {
	if competitor == nil || competitor.ID == "" {
		return fmt.Errorf("competitor id is required")
	}
	if _, err := r.session.Table(entity.TableNameCompetitor).Insert(competitor); err != nil {
		return fmt.Errorf("failed to insert competitor: %w", err)
	}
	return nil
}

func (r *CompetitorRepository) Get(competitorID string) (*entity.Competitor, error) {
	if competitorID == "" {
		return nil, fmt.Errorf("competitor id is required")
	}
	competitor := &entity.Competitor{}
	has, err := r.session.Table(entity.TableNameCompetitor).
		Where(builder.Eq{entity.CompetitorFieldID: competitorID}).
		Get(competitor)
	if err != nil {
		return nil, fmt.Errorf("failed to get competitor: %w", err)
	}
	if !has {
		return nil, nil
	}
	return competitor, nil
}

func (r *CompetitorRepository) List(userID string) ([]*entity.Competitor, error) {
	var competitors []*entity.Competitor
	if err := r.session.Table(entity.TableNameCompetitor).
		Where(builder.Eq{entity.CompetitorFieldUserID: userID}).
		OrderBy(entity.CompetitorFieldCreatedAt + " desc").
		Find(&competitors); err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	return competitors, nil
}

func (r *CompetitorRepository) Update(competitor *entity.Competitor) error {
	if competitor == nil || competitor.ID == "" {
		return fmt.Errorf("competitor id is required")
	}
	if _, err := r.session.Table(entity.TableNameCompetitor).
		Where(builder.Eq{entity.CompetitorFieldID: competitor.ID}).
		AllCols().Update(competitor); err != nil {
		return fmt.Errorf("failed to update competitor: %w", err)
	}
	return nil
}

func (r *CompetitorRepository) Delete(competitorID string) error {
	if competitorID == "" {
		return fmt.Errorf("competitor id is required")
	}
	if _, err := r.session.Table(entity.TableNameCompetitor).
		Where(builder.Eq{entity.CompetitorFieldID: competitorID}).
		Delete(&entity.Competitor{}); err != nil {
		return fmt.Errorf("failed to delete competitor: %w", err)
	}
	return nil
}
