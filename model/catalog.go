package model

import "time"

// ========== API 模型 ==========

// SearchQuery 搜索问题（API 模型）
type SearchQuery struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Question       string    `json:"question"`
	Intent         string    `json:"intent"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	ProductIDs     []string  `json:"product_ids"`
	CompetitorIDs  []string  `json:"competitor_ids"`
	ExpectedBrands []string  `json:"expected_brands"`
	Keywords       []string  `json:"keywords"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Product 产品（API 模型）
type Product struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	SellingPoints []string  `json:"selling_points"`
	TargetUsers   string    `json:"target_users"`
	PriceRange    string    `json:"price_range"`
	CompetitorIDs []string  `json:"competitor_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Competitor 竞品（API 模型）
type Competitor struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Advantages     []string  `json:"advantages"`
	Disadvantages  []string  `json:"disadvantages"`
	PriceRange     string    `json:"price_range"`
	TargetAudience string    `json:"target_audience"`
	MainPlatforms  []string  `json:"main_platforms"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ========== 问题库 ==========

// UpsertQueryRequest 创建/更新搜索问题请求
type UpsertQueryRequest struct {
	Question       string   `json:"question" binding:"required"`
	Intent         string   `json:"intent"`   // category_search / brand_search / ...
	Priority       string   `json:"priority"` // high / medium / low
	Status         string   `json:"status"`   // active / paused / archived
	ProductIDs     []string `json:"product_ids"`
	CompetitorIDs  []string `json:"competitor_ids"`
	ExpectedBrands []string `json:"expected_brands"`
	Keywords       []string `json:"keywords"`
	Notes          string   `json:"notes"`
}

// ========== 产品 ==========

// UpsertProductRequest 创建/更新产品请求
type UpsertProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	SellingPoints []string `json:"selling_points"`
	TargetUsers   string   `json:"target_users"`
	PriceRange    string   `json:"price_range"`
	CompetitorIDs []string `json:"competitor_ids"`
}

// ========== 竞品 ==========

// UpsertCompetitorRequest 创建/更新竞品请求
type UpsertCompetitorRequest struct {
	Name           string   `json:"name" binding:"required"`
	Category       string   `json:"category"`
	Advantages     []string `json:"advantages"`
	Disadvantages  []string `json:"disadvantages"`
	PriceRange     string   `json:"price_range"`
	TargetAudience string   `json:"target_audience"`
	MainPlatforms  []string `json:"main_platforms"`
	Notes          string   `json:"notes"`
}
