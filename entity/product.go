package entity

import "time"

// ========== 产品表 ==========

const (
	TableNameProduct = "products"

	ProductFieldID                = "id"
	ProductFieldUserID            = "user_id"
	ProductFieldName              = "name"
	ProductFieldCategory          = "category"
	ProductFieldDescription       = "description"
	ProductFieldSellingPointsJSON = "selling_points_json"
	ProductFieldTargetUsers       = "target_users"
	ProductFieldPriceRange        = "price_range"
	ProductFieldCompetitorIDsJSON = "competitor_ids_json"
	ProductFieldCreatedAt         = "created_at"
	ProductFieldUpdatedAt         = "updated_at"
)

// Product 产品数据库实体
type Product struct {
	ID                string    `xorm:"pk varchar(64) 'id'" json:"id"`
	UserID            string    `xorm:"varchar(64) index 'user_id'" json:"user_id"`
	Name              string    `xorm:"varchar(128) 'name'" json:"name"`
	Category          string    `xorm:"varchar(64) 'category'" json:"category"`
	Description       string    `xorm:"text 'description'" json:"description"`
	SellingPointsJSON string    `xorm:"text 'selling_points_json'" json:"selling_points_json"`
	TargetUsers       string    `xorm:"varchar(256) 'target_users'" json:"target_users"`
	PriceRange        string    `xorm:"varchar(64) 'price_range'" json:"price_range"`
	CompetitorIDsJSON string    `xorm:"text 'competitor_ids_json'" json:"competitor_ids_json"`
	CreatedAt         time.Time `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt         time.Time `xorm:"updated 'updated_at'" json:"updated_at"`
}

func (e *Product) TableName() string {
	return TableNameProduct
}
