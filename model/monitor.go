package model

import (
	"time"

	"github.com/FeifanTech/GEO-Nexus/constant"
)

// ========== 监测结果 ==========

// RankingResult 单个模型的监测结果
// 由响应分类器从完整回复文本推导，纯函数、无副作用
type RankingResult struct {
	Model        constant.AIModel   `json:"model"`
	Position     *int               `json:"position"`  // 排名位置，nil 表示未出现
	Mentioned    bool               `json:"mentioned"` // 是否被提及
	Sentiment    constant.Sentiment `json:"sentiment,omitempty"`
	Context      string             `json:"context"`   // 回复中的相关上下文片段
	Citations    []string           `json:"citations"` // 引用来源
	FullResponse string             `json:"full_response"`
	Timestamp    string             `json:"timestamp"` // ISO 格式
}

// MonitorTask 监测任务（API 模型）
type MonitorTask struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	QueryID     string              `json:"query_id"`
	Query       string              `json:"query"` // 问题内容快照
	TargetBrand string              `json:"target_brand"`
	Models      []constant.AIModel  `json:"models"`
	Results     []RankingResult     `json:"results"`
	Status      constant.TaskStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CompletedAt *time.Time          `json:"completed_at"`
}

// HistoryRecord 监测历史记录，用于趋势分析
type HistoryRecord struct {
	Date      string           `json:"date"` // 2006-01-02
	Model     constant.AIModel `json:"model"`
	Position  *int             `json:"position"`
	Mentioned bool             `json:"mentioned"`
}

// ========== 请求/条件 ==========

// CreateMonitorTaskRequest 创建监测任务请求
// 每个 query 生成一条任务
type CreateMonitorTaskRequest struct {
	QueryIDs    []string `json:"query_ids" binding:"required"`
	TargetBrand string   `json:"target_brand" binding:"required"`
	Models      []string `json:"models"`
}

// MonitorTaskListCondition 监测任务列表条件
type MonitorTaskListCondition struct {
	UserID  string  `json:"user_id"`
	QueryID *string `json:"query_id"`
	Status  *string `json:"status"`
	*Pager
	*Order
}

func (c *MonitorTaskListCondition) GetPager() *Pager {
	return c.Pager
}

func (c *MonitorTaskListCondition) GetOrder() *Order {
	return c.Order
}

// ========== 执行与统计 ==========

// ExecutionResponse 异步执行响应
type ExecutionResponse struct {
	ExecutionID string   `json:"execution_id"`
	TaskIDs     []string `json:"task_ids"`
}

// QueryAnalytics 单个问题的监测统计
type QueryAnalytics struct {
	QueryID          string                       `json:"query_id"`
	MentionRate      float64                      `json:"mention_rate"` // 0-100
	AveragePositions map[constant.AIModel]float64 `json:"average_positions"`
	ResultCount      int                          `json:"result_count"`
}
