package repository

import (
	"context"

	"github.com/FeifanTech/GEO-Nexus/model"
)

// HistoryRepository 监测历史仓库接口
// 趋势分析用的轻量记录，按 用户+问题 维度保存
type HistoryRepository interface {
	// Append 追加一条历史记录
	Append(ctx context.Context, userID, queryID string, record *model.HistoryRecord) error
	// List 读取最近的历史记录，最新的在前
	List(ctx context.Context, userID, queryID string, limit int64) ([]*model.HistoryRecord, error)
}
