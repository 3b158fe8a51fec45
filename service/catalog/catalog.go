// Package catalog 品牌资产库：搜索问题、产品、竞品的维护
package catalog

import (
	"context"
	"encoding/json"

	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/repository/factory"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) *Service {
	return &Service{repositoryFactory: repositoryFactory}
}

// marshalList 列表转 JSON 文本入库，nil 统一存成 []
func marshalList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		log.Warnf("failed to marshal list: %v", err)
		return "[]"
	}
	return string(data)
}

func unmarshalList(text string) []string {
	list := []string{}
	if text == "" {
		return list
	}
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		log.Warnf("failed to unmarshal list %q: %v", text, err)
	}
	return list
}

// ========== 搜索问题 ==========

func (s *Service) CreateQuery(ctx context.Context, userID string, req *model.UpsertQueryRequest) (*model.SearchQuery, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewSearchQueryRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	query := &entity.SearchQuery{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Question:           req.Question,
		Intent:             req.Intent,
		Priority:           req.Priority,
		Status:             req.Status,
		ProductIDsJSON:     marshalList(req.ProductIDs),
		CompetitorIDsJSON:  marshalList(req.CompetitorIDs),
		ExpectedBrandsJSON: marshalList(req.ExpectedBrands),
		KeywordsJSON:       marshalList(req.Keywords),
		Notes:              req.Notes,
	}
	if query.Status == "" {
		query.Status = "active"
	}
	if query.Priority == "" {
		query.Priority = "medium"
	}

	if err = repo.Create(query); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return toQueryModel(query), nil
}

func (s *Service) ListQueries(ctx context.Context, userID string) ([]*model.SearchQuery, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewSearchQueryRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	entities, err := repo.List(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	queries := make([]*model.SearchQuery, 0, len(entities))
	for _, item := range entities {
		queries = append(queries, toQueryModel(item))
	}
	return queries, nil
}

func (s *Service) UpdateQuery(ctx context.Context, userID, queryID string, req *model.UpsertQueryRequest) (*model.SearchQuery, *model.Error) {
	if queryID == "" {
		return nil, model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewSearchQueryRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	query, err := repo.Get(queryID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if query == nil || query.UserID != userID {
		return nil, model.NewError(model.ErrorQueryNotFound, nil)
	}

	query.Question = req.Question
	query.Intent = req.Intent
	query.Priority = req.Priority
	query.Status = req.Status
	query.ProductIDsJSON = marshalList(req.ProductIDs)
	query.CompetitorIDsJSON = marshalList(req.CompetitorIDs)
	query.ExpectedBrandsJSON = marshalList(req.ExpectedBrands)
	query.KeywordsJSON = marshalList(req.Keywords)
	query.Notes = req.Notes

	if err = repo.Update(query); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return toQueryModel(query), nil
}

func (s *Service) DeleteQuery(ctx context.Context, userID, queryID string) *model.Error {
	if queryID == "" {
		return model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewSearchQueryRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	query, err := repo.Get(queryID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if query == nil || query.UserID != userID {
		return model.NewError(model.ErrorQueryNotFound, nil)
	}

	if err = repo.Delete(queryID); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return nil
}

func toQueryModel(query *entity.SearchQuery) *model.SearchQuery {
	return &model.SearchQuery{
		ID:             query.ID,
		UserID:         query.UserID,
		Question:       query.Question,
		Intent:         query.Intent,
		Priority:       query.Priority,
		Status:         query.Status,
		ProductIDs:     unmarshalList(query.ProductIDsJSON),
		CompetitorIDs:  unmarshalList(query.CompetitorIDsJSON),
		ExpectedBrands: unmarshalList(query.ExpectedBrandsJSON),
		Keywords:       unmarshalList(query.KeywordsJSON),
		Notes:          query.Notes,
		CreatedAt:      query.CreatedAt,
		UpdatedAt:      query.UpdatedAt,
	}
}

// ========== 产品 ==========

func (s *Service) CreateProduct(ctx context.Context, userID string, req *model.UpsertProductRequest) (*model.Product, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewProductRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	product := &entity.Product{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              req.Name,
		Category:          req.Category,
		Description:       req.Description,
		SellingPointsJSON: marshalList(req.SellingPoints),
		TargetUsers:       req.TargetUsers,
		PriceRange:        req.PriceRange,
		CompetitorIDsJSON: marshalList(req.CompetitorIDs),
	}

	if err = repo.Create(product); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return toProductModel(product), nil
}

func (s *Service) ListProducts(ctx context.Context, userID string) ([]*model.Product, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewProductRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	entities, err := repo.List(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	products := make([]*model.Product, 0, len(entities))
	for _, item := range entities {
		products = append(products, toProductModel(item))
	}
	return products, nil
}

func (s *Service) UpdateProduct(ctx context.Context, userID, productID string, req *model.UpsertProductRequest) (*model.Product, *model.Error) {
	if productID == "" {
		return nil, model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewProductRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	product, err := repo.Get(productID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if product == nil || product.UserID != userID {
		return nil, model.NewError(model.ErrorParams, nil)
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Description = req.Description
	product.SellingPointsJSON = marshalList(req.SellingPoints)
	product.TargetUsers = req.TargetUsers
	product.PriceRange = req.PriceRange
	product.CompetitorIDsJSON = marshalList(req.CompetitorIDs)

	if err = repo.Update(product); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return toProductModel(product), nil
}

func (s *Service) DeleteProduct(ctx context.Context, userID, productID string) *model.Error {
	if productID == "" {
		return model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewProductRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	product, err := repo.Get(productID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if product == nil || product.UserID != userID {
		return model.NewError(model.ErrorParams, nil)
	}

	if err = repo.Delete(productID); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return nil
}

func toProductModel(product *entity.Product) *model.Product {
	return &model.Product{
		ID:            product.ID,
		UserID:        product.UserID,
		Name:          product.Name,
		Category:      product.Category,
		Description:   product.Description,
		SellingPoints: unmarshalList(product.SellingPointsJSON),
		TargetUsers:   product.TargetUsers,
		PriceRange:    product.PriceRange,
		CompetitorIDs: unmarshalList(product.CompetitorIDsJSON),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// ========== 竞品 ==========

func (s *Service) CreateCompetitor(ctx context.Context, userID string, req *model.UpsertCompetitorRequest) (*model.Competitor, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewCompetitorRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	competitor := &entity.Competitor{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              req.Name,
		Category:          req.Category,
		AdvantagesJSON:    marshalList(req.Advantages),
		DisadvantagesJSON: marshalList(req.Disadvantages),
		PriceRange:        req.PriceRange,
		TargetAudience:    req.TargetAudience,
		MainPlatformsJSON: marshalList(req.MainPlatforms),
		Notes:             req.Notes,
	}

	if err = repo.Create(competitor); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return toCompetitorModel(competitor), nil
}

func (s *Service) ListCompetitors(ctx context.Context, userID string) ([]*model.Competitor, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewCompetitorRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	entities, err := repo.List(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	competitors := make([]*model.Competitor, 0, len(entities))
	for _, item := range entities {
		competitors = append(competitors, toCompetitorModel(item))
	}
	return competitors, nil
}

func (s *Service) UpdateCompetitor(ctx context.Context, userID, competitorID string, req *model.UpsertCompetitorRequest) (*model.Competitor, *model.Error) {
	if competitorID == "" {
		return nil, model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewCompetitorRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	competitor, err := repo.Get(competitorID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if competitor == nil || competitor.UserID != userID {
		return nil, model.NewError(model.ErrorParams, nil)
	}

	competitor.Name = req.Name
	competitor.Category = req.Category
	competitor.AdvantagesJSON = marshalList(req.Advantages)
	competitor.DisadvantagesJSON = marshalList(req.Disadvantages)
	competitor.PriceRange = req.PriceRange
	competitor.TargetAudience = req.TargetAudience
	competitor.MainPlatformsJSON = marshalList(req.MainPlatforms)
	competitor.Notes = req.Notes

	if err = repo.Update(competitor); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return toCompetitorModel(competitor), nil
}

func (s *Service) DeleteCompetitor(ctx context.Context, userID, competitorID string) *model.Error {
	if competitorID == "" {
		return model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	repo, err := s.repositoryFactory.NewCompetitorRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	competitor, err := repo.Get(competitorID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if competitor == nil || competitor.UserID != userID {
		return model.NewError(model.ErrorParams, nil)
	}

	if err = repo.Delete(competitorID); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return nil
}

func toCompetitorModel(competitor *entity.Competitor) *model.Competitor {
	return &model.Competitor{
		ID:             competitor.ID,
		UserID:         competitor.UserID,
		Name:           competitor.Name,
		Category:       competitor.Category,
		Advantages:     unmarshalList(competitor.AdvantagesJSON),
		Disadvantages:  unmarshalList(competitor.DisadvantagesJSON),
		PriceRange:     competitor.PriceRange,
		TargetAudience: competitor.TargetAudience,
		MainPlatforms:  unmarshalList(competitor.MainPlatformsJSON),
		Notes:          competitor.Notes,
		CreatedAt:      competitor.CreatedAt,
		UpdatedAt:      competitor.UpdatedAt,
	}
}
