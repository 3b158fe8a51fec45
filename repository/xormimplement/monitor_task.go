package xormimplement

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/repository"

	"xorm.io/builder"
)

// ========== MonitorTaskRepository 实现 ==========

type MonitorTaskRepository struct {
	session *Session
}

func NewMonitorTaskRepository(session *Session) repository.MonitorTaskRepository {
	return &MonitorTaskRepository{session: session}
}

func (r *MonitorTaskRepository) Create(task *entity.MonitorTask) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if task.ID == "" {
		return fmt.Errorf("task id is required")
	}

	if _, err := r.session.Table(entity.TableNameMonitorTask).Insert(task); err != nil {
		return fmt.Errorf("failed to insert monitor task: %w", err)
	}
	return nil
}

func (r *MonitorTaskRepository) Get(taskID string) (*entity.MonitorTask, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id is required")
	}

	task := &entity.MonitorTask{}
	has, err := r.session.Table(entity.TableNameMonitorTask).
		Where(builder.Eq{entity.MonitorTaskFieldID: taskID}).
		Get(task)
	if err != nil {
		return nil, fmt.Errorf("failed to get monitor task: %w", err)
	}
	if !has {
		return nil, nil
	}
	return task, nil
}

func (r *MonitorTaskRepository) List(condition *model.MonitorTaskListCondition) ([]*entity.MonitorTask, error) {
	if condition == nil {
		condition = &model.MonitorTaskListCondition{}
	}

	session := r.session.Table(entity.TableNameMonitorTask)
	if condition.UserID != "" {
		session = session.Where(builder.Eq{entity.MonitorTaskFieldUserID: condition.UserID})
	}
	if condition.QueryID != nil {
		session = session.Where(builder.Eq{entity.MonitorTaskFieldQueryID: *condition.QueryID})
	}
	if condition.Status != nil {
		session = session.Where(builder.Eq{entity.MonitorTaskFieldStatus: *condition.Status})
	}

	pagerOrder(session, condition, WithDefaultOrderField(entity.MonitorTaskFieldCreatedAt))

	var tasks []*entity.MonitorTask
	if err := session.Find(&tasks); err != nil {
		return nil, fmt.Errorf("failed to list monitor tasks: %w", err)
	}
	return tasks, nil
}

func (r *MonitorTaskRepository) Delete(taskID string) error {
	if taskID == "" {
		return fmt.Errorf("task id is required")
	}

	if _, err := r.session.Table(entity.TableNameMonitorTask).
		Where(builder.Eq{entity.MonitorTaskFieldID: taskID}).
		Delete(&entity.MonitorTask{}); err != nil {
		return fmt.Errorf("failed to delete monitor task: %w", err)
	}
	return nil
}

func (r *MonitorTaskRepository) UpdateStatus(taskID string, status constant.TaskStatus, completedAt *time.Time) error {
	if taskID == "" {
		return fmt.Errorf("task id is required")
	}

	updateData := map[string]interface{}{
		entity.MonitorTaskFieldStatus:    status.String(),
		entity.MonitorTaskFieldUpdatedAt: time.Now(),
	}
	if completedAt != nil {
		updateData[entity.MonitorTaskFieldCompletedAt] = *completedAt
	}

	if _, err := r.session.Table(entity.TableNameMonitorTask).
		Where(builder.Eq{entity.MonitorTaskFieldID: taskID}).
		Update(updateData); err != nil {
		return fmt.Errorf("failed to update monitor task status: %w", err)
	}
	return nil
}

// AppendResult 读取-追加-写回 results_json
// 执行编排是单写者，不需要行级锁
func (r *MonitorTaskRepository) AppendResult(taskID string, result *model.RankingResult) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	task, err := r.Get(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("monitor task %s not found", taskID)
	}

	var results []model.RankingResult
	if task.ResultsJSON != "" {
		if err := json.Unmarshal([]byte(task.ResultsJSON), &results); err != nil {
			return fmt.Errorf("failed to unmarshal results: %w", err)
		}
	}
	results = append(results, *result)

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if _, err := r.session.Table(entity.TableNameMonitorTask).
		Where(builder.Eq{entity.MonitorTaskFieldID: taskID}).
		Update(map[string]interface{}{
			entity.MonitorTaskFieldResultsJSON: string(data),
			entity.MonitorTaskFieldUpdatedAt:   time.Now(),
		}); err != nil {
		return fmt.Errorf("failed to append monitor result: %w", err)
	}
	return nil
}
