package entity

import "time"

// ========== 竞品表 ==========

const (
	TableNameCompetitor = "competitors"

	CompetitorFieldID                = "id"
	CompetitorFieldUserID            = "user_id"
	CompetitorFieldName              = "name"
	CompetitorFieldCategory          = "category"
	CompetitorFieldAdvantagesJSON    = "advantages_json"
	CompetitorFieldDisadvantagesJSON = "disadvantages_json"
	CompetitorFieldPriceRange        = "price_range"
	CompetitorFieldTargetAudience    = "target_audience"
	CompetitorFieldMainPlatformsJSON = "main_platforms_json"
	CompetitorFieldNotes             = "notes"
	CompetitorFieldCreatedAt         = "created_at"
	CompetitorFieldUpdatedAt         = "updated_at"
)

// Competitor 竞品数据库实体
type Competitor struct {
	ID                string    `xorm:"pk varchar(64) 'id'" json:"id"`
	UserID            string    `xorm:"varchar(64) index 'user_id'" json:"user_id"`
	Name              string    `xorm:"varchar(128) 'name'" json:"name"`
	Category          string    `xorm:"varchar(64) 'category'" json:"category"`
	AdvantagesJSON    string    `xorm:"text 'advantages_json'" json:"advantages_json"`
	DisadvantagesJSON string    `xorm:"text 'disadvantages_json'" json:"disadvantages_json"`
	PriceRange        string    `xorm:"varchar(64) 'price_range'" json:"price_range"`
	TargetAudience    string    `xorm:"varchar(256) 'target_audience'" json:"target_audience"`
	MainPlatformsJSON string    `xorm:"text 'main_platforms_json'" json:"main_platforms_json"`
	Notes             string    `xorm:"text 'notes'" json:"notes"`
	CreatedAt         time.Time `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt         time.Time `xorm:"updated 'updated_at'" json:"updated_at"`
}

func (e *Competitor) TableName() string {
	return TableNameCompetitor
}
