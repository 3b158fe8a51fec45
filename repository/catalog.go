package repository

import (
	"github.com/FeifanTech/GEO-Nexus/entity"
)

// SearchQueryRepository 搜索问题仓库接口
type SearchQueryRepository interface {
	Create(query *entity.SearchQuery) error
	Get(queryID string) (*entity.SearchQuery, error)
	List(userID string) ([]*entity.SearchQuery, error)
	Update(query *entity.SearchQuery) error
	Delete(queryID string) error
}

// ProductRepository 产品仓库接口
type ProductRepository interface {
	Create(product *entity.Product) error
	Get(productID string) (*entity.Product, error)
	List(userID string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(productID string) error
}

// CompetitorRepository 竞品仓库接口
type CompetitorRepository interface {
	Create(competitor *entity.Competitor) error
	Get(competitorID string) (*entity.Competitor, error)
	List(userID string) ([]*entity.Competitor, error)
	Update(competitor *entity.Competitor) error
	Delete(competitorID string) error
}
