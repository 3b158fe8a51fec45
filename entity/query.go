package entity

import "time"

// ========== 搜索问题库表 ==========

const (
	TableNameSearchQuery = "search_queries"

	SearchQueryFieldID                 = "id"
	SearchQueryFieldUserID             = "user_id"
	SearchQueryFieldQuestion           = "question"
	SearchQueryFieldIntent             = "intent"
	SearchQueryFieldPriority           = "priority"
	SearchQueryFieldStatus             = "status"
	SearchQueryFieldProductIDsJSON     = "product_ids_json"
	SearchQueryFieldCompetitorIDsJSON  = "competitor_ids_json"
	SearchQueryFieldExpectedBrandsJSON = "expected_brands_json"
	SearchQueryFieldKeywordsJSON       = "keywords_json"
	SearchQueryFieldNotes              = "notes"
	SearchQueryFieldCreatedAt          = "created_at"
	SearchQueryFieldUpdatedAt          = "updated_at"
)

// SearchQuery 搜索问题数据库实体
type SearchQuery struct {
	ID                 string    `xorm:"pk varchar(64) 'id'" json:"id"`
	UserID             string    `xorm:"varchar(64) index 'user_id'" json:"user_id"`
	Question           string    `xorm:"text 'question'" json:"question"`
	Intent             string    `xorm:"varchar(32) 'intent'" json:"intent"`
	Priority           string    `xorm:"varchar(16) 'priority'" json:"priority"`
	Status             string    `xorm:"varchar(16) index 'status'" json:"status"`
	ProductIDsJSON     string    `xorm:"text 'product_ids_json'" json:"product_ids_json"`
	CompetitorIDsJSON  string    `xorm:"text 'competitor_ids_json'" json:"competitor_ids_json"`
	ExpectedBrandsJSON string    `xorm:"text 'expected_brands_json'" json:"expected_brands_json"`
	KeywordsJSON       string    `xorm:"text 'keywords_json'" json:"keywords_json"`
	Notes              string    `xorm:"text 'notes'" json:"notes"`
	CreatedAt          time.Time `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt          time.Time `xorm:"updated 'updated_at'" json:"updated_at"`
}

func (e *SearchQuery) TableName() string {
	return TableNameSearchQuery
}
