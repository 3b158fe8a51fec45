package entity

import "time"

// ========== 监测任务表 ==========

const (
	TableNameMonitorTask = "monitor_tasks"

	MonitorTaskFieldID          = "id"
	MonitorTaskFieldUserID      = "user_id"
	MonitorTaskFieldQueryID     = "query_id"
	MonitorTaskFieldQuery       = "query"
	MonitorTaskFieldTargetBrand = "target_brand"
	MonitorTaskFieldModelsJSON  = "models_json"
	MonitorTaskFieldResultsJSON = "results_json"
	MonitorTaskFieldStatus      = "status"
	MonitorTaskFieldCreatedAt   = "created_at"
	MonitorTaskFieldUpdatedAt   = "updated_at"
	MonitorTaskFieldCompletedAt = "completed_at"
)

// MonitorTask 监测任务数据库实体
// models 和 results 以 JSON 文本存储
type MonitorTask struct {
	ID          string     `xorm:"pk varchar(64) 'id'" json:"id"`
	UserID      string     `xorm:"varchar(64) index 'user_id'" json:"user_id"`
	QueryID     string     `xorm:"varchar(64) index 'query_id'" json:"query_id"`
	Query       string     `xorm:"text 'query'" json:"query"`
	TargetBrand string     `xorm:"varchar(128) 'target_brand'" json:"target_brand"`
	ModelsJSON  string     `xorm:"text 'models_json'" json:"models_json"`
	ResultsJSON string     `xorm:"text 'results_json'" json:"results_json"`
	Status      string     `xorm:"varchar(32) index 'status'" json:"status"`
	CreatedAt   time.Time  `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt   time.Time  `xorm:"updated 'updated_at'" json:"updated_at"`
	CompletedAt *time.Time `xorm:"'completed_at'" json:"completed_at"`
}

func (e *MonitorTask) TableName() string {
	return TableNameMonitorTask
}
