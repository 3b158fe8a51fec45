package repository

import (
	"time"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"
)

// MonitorTaskRepository 监测任务仓库接口
type MonitorTaskRepository interface {
	// Create 创建监测任务
	Create(task *entity.MonitorTask) error
	// Get 获取单个监测任务
	Get(taskID string) (*entity.MonitorTask, error)
	// List 列出监测任务，按创建时间倒序
	List(condition *model.MonitorTaskListCondition) ([]*entity.MonitorTask, error)
	// Delete 删除监测任务
	Delete(taskID string) error
	// UpdateStatus 更新任务状态，completedAt 非空时一并写入
	UpdateStatus(taskID string, status constant.TaskStatus, completedAt *time.Time) error
	// AppendResult 追加一条模型结果（只增不删）
	AppendResult(taskID string, result *model.RankingResult) error
}
