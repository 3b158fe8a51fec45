package memoryimplement

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"
)

// ========== MonitorTaskRepository 内存实现 ==========

type MonitorTaskRepository struct {
	factory *Factory
}

func (r *MonitorTaskRepository) Create(task *entity.MonitorTask) error {
	if task == nil || task.ID == "" {
		return fmt.Errorf("task id is required")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	now := time.Now()
	clone := *task
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.factory.tasks[task.ID] = &clone
	return nil
}

func (r *MonitorTaskRepository) Get(taskID string) (*entity.MonitorTask, error) {
	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	task, ok := r.factory.tasks[taskID]
	if !ok {
		return nil, nil
	}
	clone := *task
	return &clone, nil
}

func (r *MonitorTaskRepository) List(condition *model.MonitorTaskListCondition) ([]*entity.MonitorTask, error) {
	if condition == nil {
		condition = &model.MonitorTaskListCondition{}
	}

	r.factory.mu.RLock()
	defer r.factory.mu.RUnlock()

	var tasks []*entity.MonitorTask
	for _, task := range r.factory.tasks {
		if condition.UserID != "" && task.UserID != condition.UserID {
			continue
		}
		if condition.QueryID != nil && task.QueryID != *condition.QueryID {
			continue
		}
		if condition.Status != nil && task.Status != *condition.Status {
			continue
		}
		clone := *task
		tasks = append(tasks, &clone)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	if pager := condition.GetPager(); pager != nil && pager.Limit > 0 {
		start := pager.Offset
		if start > len(tasks) {
			start = len(tasks)
		}
		end := start + pager.Limit
		if end > len(tasks) {
			end = len(tasks)
		}
		tasks = tasks[start:end]
	}
	return tasks, nil
}

func (r *MonitorTaskRepository) Delete(taskID string) error {
	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	delete(r.factory.tasks, taskID)
	return nil
}

func (r *MonitorTaskRepository) UpdateStatus(taskID string, status constant.TaskStatus, completedAt *time.Time) error {
	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	task, ok := r.factory.tasks[taskID]
	if !ok {
		return fmt.Errorf("monitor task %s not found", taskID)
	}
	task.Status = status.String()
	task.UpdatedAt = time.Now()
	if completedAt != nil {
		task.CompletedAt = completedAt
	}
	return nil
}

func (r *MonitorTaskRepository) AppendResult(taskID string, result *model.RankingResult) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()

	task, ok := r.factory.tasks[taskID]
	if !ok {
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
	task.ResultsJSON = string(data)
	task.UpdatedAt = time.Now()
	return nil
}
