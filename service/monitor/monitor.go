// Package monitor AI 搜索监测服务
// 负责监测任务的生命周期：创建、按模型串行执行、结果分类落库、趋势统计
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/pkg/classifier"
	"github.com/FeifanTech/GEO-Nexus/pkg/clients/dify"
	"github.com/FeifanTech/GEO-Nexus/repository"
	"github.com/FeifanTech/GEO-Nexus/repository/factory"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Executor 上游执行入口，生产实现是 dify.Client
type Executor interface {
	Execute(ctx context.Context, req *model.UnifiedRequest, onMessage func(fragment string, isFirst bool)) (*dify.StreamResult, error)
}

// Options 执行编排参数
type Options struct {
	ModelDelay time.Duration // 同一任务内相邻模型之间的间隔
	BatchDelay time.Duration // 批量执行时相邻模型之间的间隔
}

type Service struct {
	repositoryFactory factory.Factory
	historyRepo       repository.HistoryRepository // 可为 nil，此时不记趋势
	executor          Executor
	classifier        *classifier.Classifier
	options           Options

	mu         sync.Mutex
	executions map[string]context.CancelFunc
}

func NewService(repositoryFactory factory.Factory, historyRepo repository.HistoryRepository, executor Executor, cls *classifier.Classifier, options Options) *Service {
	if cls == nil {
		cls = classifier.NewDefault()
	}
	return &Service{
		repositoryFactory: repositoryFactory,
		historyRepo:       historyRepo,
		executor:          executor,
		classifier:        cls,
		options:           options,
		executions:        map[string]context.CancelFunc{},
	}
}

// CreateTasks 按问题列表批量创建监测任务，每个问题一条
// 问题内容做快照存进任务，后续问题被改动不影响已有任务
func (s *Service) CreateTasks(ctx context.Context, userID string, req *model.CreateMonitorTaskRequest) ([]*model.MonitorTask, *model.Error) {
	models, errModel := resolveModels(req.Models)
	if errModel != nil {
		return nil, errModel
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	taskRepo, err := s.repositoryFactory.NewMonitorTaskRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	queryRepo, err := s.repositoryFactory.NewSearchQueryRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	if err = session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	modelsJSON, err := json.Marshal(models)
	if err != nil {
		session.Rollback()
		return nil, model.NewError(model.ErrorParams, err)
	}

	var tasks []*model.MonitorTask
	for _, queryID := range req.QueryIDs {
		query, err := queryRepo.Get(queryID)
		if err != nil {
			session.Rollback()
			return nil, model.NewError(model.ErrorDB, err)
		}
		if query == nil || query.UserID != userID {
			session.Rollback()
			return nil, model.NewError(model.ErrorQueryNotFound, fmt.Errorf("query %s not found", queryID))
		}

		task := &entity.MonitorTask{
			ID:          uuid.NewString(),
			UserID:      userID,
			QueryID:     queryID,
			Query:       query.Question,
			TargetBrand: req.TargetBrand,
			ModelsJSON:  string(modelsJSON),
			ResultsJSON: "[]",
			Status:      constant.TaskStatusPending.String(),
		}
		if err = taskRepo.Create(task); err != nil {
			session.Rollback()
			return nil, model.NewError(model.ErrorDB, err)
		}
		tasks = append(tasks, toTaskModel(task))
	}

	if err = session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return tasks, nil
}

// GetTask 查询单个监测任务
func (s *Service) GetTask(ctx context.Context, userID, taskID string) (*model.MonitorTask, *model.Error) {
	if taskID == "" {
		return nil, model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	taskRepo, err := s.repositoryFactory.NewMonitorTaskRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	task, err := taskRepo.Get(taskID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if task == nil || task.UserID != userID {
		return nil, model.NewError(model.ErrorTaskNotFound, nil)
	}
	return toTaskModel(task), nil
}

// ListTasks 按条件查询监测任务，创建时间倒序
func (s *Service) ListTasks(ctx context.Context, condition *model.MonitorTaskListCondition) ([]*model.MonitorTask, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	taskRepo, err := s.repositoryFactory.NewMonitorTaskRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	entities, err := taskRepo.List(condition)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	tasks := make([]*model.MonitorTask, 0, len(entities))
	for _, item := range entities {
		tasks = append(tasks, toTaskModel(item))
	}
	return tasks, nil
}

// DeleteTask 删除监测任务
func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) *model.Error {
	if taskID == "" {
		return model.NewError(model.ErrorEmptyId, nil)
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer session.Close()

	taskRepo, err := s.repositoryFactory.NewMonitorTaskRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	task, err := taskRepo.Get(taskID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if task == nil || task.UserID != userID {
		return model.NewError(model.ErrorTaskNotFound, nil)
	}

	if err = taskRepo.Delete(taskID); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return nil
}

// resolveModels 为空时用默认模型组，否则逐个校验
func resolveModels(models []string) ([]constant.AIModel, *model.Error) {
	if len(models) == 0 {
		return constant.DefaultMonitorModels, nil
	}

	resolved := make([]constant.AIModel, 0, len(models))
	for _, name := range models {
		aiModel := constant.AIModel(name)
		if !aiModel.IsValid() {
			return nil, model.NewError(model.ErrorParams, fmt.Errorf("unknown model: %s", name))
		}
		resolved = append(resolved, aiModel)
	}
	return resolved, nil
}

func toTaskModel(task *entity.MonitorTask) *model.MonitorTask {
	var models []constant.AIModel
	if task.ModelsJSON != "" {
		if err := json.Unmarshal([]byte(task.ModelsJSON), &models); err != nil {
			log.Warnf("failed to unmarshal task %s models: %v", task.ID, err)
		}
	}

	results := []model.RankingResult{}
	if task.ResultsJSON != "" {
		if err := json.Unmarshal([]byte(task.ResultsJSON), &results); err != nil {
			log.Warnf("failed to unmarshal task %s results: %v", task.ID, err)
		}
	}

	return &model.MonitorTask{
		ID:          task.ID,
		UserID:      task.UserID,
		QueryID:     task.QueryID,
		Query:       task.Query,
		TargetBrand: task.TargetBrand,
		Models:      models,
		Results:     results,
		Status:      constant.TaskStatus(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}
}
