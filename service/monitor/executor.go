package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"
	ptime "github.com/FeifanTech/GEO-Nexus/pkg/time"
	"github.com/FeifanTech/GEO-Nexus/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const failedContextPrefix = "执行失败: "

// ExecuteTask 同步执行单个监测任务，模型串行，全部跑完返回最新任务
// 任一模型失败不会中断任务，记降级结果后继续；取消会把任务标记为 failed
func (s *Service) ExecuteTask(ctx context.Context, userID, taskID string) (*model.MonitorTask, *model.Error) {
	task, errModel := s.loadExecutableTask(ctx, userID, taskID)
	if errModel != nil {
		return nil, errModel
	}

	if errModel = s.runTask(ctx, task, s.options.ModelDelay); errModel != nil {
		return nil, errModel
	}
	return s.GetTask(ctx, userID, taskID)
}

// ExecuteBatch 异步批量执行，立即返回执行标识
// 任务之间串行，执行与请求生命周期解耦，用 Cancel 终止
func (s *Service) ExecuteBatch(ctx context.Context, userID string, taskIDs []string) (*model.ExecutionResponse, *model.Error) {
	if len(taskIDs) == 0 {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("task_ids is empty"))
	}

	tasks := make([]*entity.MonitorTask, 0, len(taskIDs))
	for _, taskID := range taskIDs {
		task, errModel := s.loadExecutableTask(ctx, userID, taskID)
		if errModel != nil {
			return nil, errModel
		}
		tasks = append(tasks, task)
	}

	executionID := uuid.NewString()
	execCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.executions[executionID] = cancel
	s.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			s.mu.Lock()
			delete(s.executions, executionID)
			s.mu.Unlock()
		}()

		for _, task := range tasks {
			if execCtx.Err() != nil {
				return
			}
			if errModel := s.runTask(execCtx, task, s.options.BatchDelay); errModel != nil {
				log.Warnf("batch %s: task %s stopped: %v", executionID, task.ID, errModel)
				if errModel.Code == model.ErrorExecutionCanceled {
					return
				}
			}
		}
	}()

	return &model.ExecutionResponse{ExecutionID: executionID, TaskIDs: taskIDs}, nil
}

// Cancel 取消一次批量执行
// 执行中的任务会被标记为 failed，尚未开始的任务保持 pending
func (s *Service) Cancel(executionID string) *model.Error {
	s.mu.Lock()
	cancel, ok := s.executions[executionID]
	s.mu.Unlock()

	if !ok {
		return model.NewError(model.ErrorExecutionNotFound, nil)
	}
	cancel()
	return nil
}

// loadExecutableTask 校验任务归属和状态
func (s *Service) loadExecutableTask(ctx context.Context, userID, taskID string) (*entity.MonitorTask, *model.Error) {
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

	switch constant.TaskStatus(task.Status) {
	case constant.TaskStatusRunning:
		return nil, model.NewError(model.ErrorExecutionRunning, nil)
	case constant.TaskStatusCompleted:
		return nil, model.NewError(model.ErrorTaskAlreadyDone, nil)
	}
	return task, nil
}

// runTask 串行跑完任务的全部模型
// 模型级失败降级不中断；ctx 取消按失败收尾并立即返回
func (s *Service) runTask(ctx context.Context, task *entity.MonitorTask, delay time.Duration) *model.Error {
	var models []constant.AIModel
	if err := json.Unmarshal([]byte(task.ModelsJSON), &models); err != nil {
		return model.NewError(model.ErrorParams, fmt.Errorf("task %s has invalid models: %w", task.ID, err))
	}

	// 写库会话脱离取消：取消只中断上游调用，失败收尾必须落库
	dbCtx := context.WithoutCancel(ctx)
	session := s.repositoryFactory.NewSession(dbCtx)
	defer session.Close()

	taskRepo, err := s.repositoryFactory.NewMonitorTaskRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	if err = taskRepo.UpdateStatus(task.ID, constant.TaskStatusRunning, nil); err != nil {
		return model.NewError(model.ErrorDB, err)
	}

	for index, aiModel := range models {
		if ctx.Err() != nil {
			return s.failTask(taskRepo, task.ID)
		}

		result, err := s.executeModel(ctx, task, aiModel)
		if err != nil {
			// 区分取消和模型失败：取消直接收尾，失败记降级结果继续
			if ctx.Err() != nil {
				return s.failTask(taskRepo, task.ID)
			}
			log.Warnf("task %s model %s failed: %v", task.ID, aiModel, err)
			result = &model.RankingResult{
				Model:     aiModel,
				Mentioned: false,
				Context:   failedContextPrefix + err.Error(),
				Citations: []string{},
				Timestamp: time.Now().Format(time.RFC3339),
			}
		}

		if err = taskRepo.AppendResult(task.ID, result); err != nil {
			return model.NewError(model.ErrorDB, err)
		}
		s.appendHistory(dbCtx, task, result)

		if index < len(models)-1 && delay > 0 {
			select {
			case <-ctx.Done():
				return s.failTask(taskRepo, task.ID)
			case <-time.After(delay):
			}
		}
	}

	completedAt := time.Now()
	if err = taskRepo.UpdateStatus(task.ID, constant.TaskStatusCompleted, &completedAt); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return nil
}

// executeModel 模拟指定模型回答问题并分类全文
func (s *Service) executeModel(ctx context.Context, task *entity.MonitorTask, aiModel constant.AIModel) (*model.RankingResult, error) {
	prompt := fmt.Sprintf(constant.MonitorPromptTemplate, aiModel.DisplayName(), task.Query, task.TargetBrand)

	streamResult, err := s.executor.Execute(ctx, &model.UnifiedRequest{
		TaskType: constant.TaskTypeMonitorSearch.String(),
		Inputs: map[string]string{
			"model_name":   aiModel.String(),
			"search_query": task.Query,
			"target_brand": task.TargetBrand,
		},
		Query: prompt,
		User:  task.UserID,
	}, nil)
	if err != nil {
		return nil, err
	}

	classified := s.classifier.Classify(streamResult.FullContent, task.TargetBrand)
	return &model.RankingResult{
		Model:        aiModel,
		Position:     classified.Position,
		Mentioned:    classified.Mentioned,
		Sentiment:    classified.Sentiment,
		Context:      classified.Context,
		Citations:    []string{},
		FullResponse: streamResult.FullContent,
		Timestamp:    time.Now().Format(time.RFC3339),
	}, nil
}

func (s *Service) failTask(taskRepo repository.MonitorTaskRepository, taskID string) *model.Error {
	completedAt := time.Now()
	if err := taskRepo.UpdateStatus(taskID, constant.TaskStatusFailed, &completedAt); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return model.NewError(model.ErrorExecutionCanceled, nil)
}

// appendHistory 记一条趋势数据，失败只告警不影响执行
func (s *Service) appendHistory(ctx context.Context, task *entity.MonitorTask, result *model.RankingResult) {
	if s.historyRepo == nil {
		return
	}

	record := &model.HistoryRecord{
		Date:      ptime.GetNowTimeByFormat(ptime.TimeFormatCommonStyleDay),
		Model:     result.Model,
		Position:  result.Position,
		Mentioned: result.Mentioned,
	}
	if err := s.historyRepo.Append(ctx, task.UserID, task.QueryID, record); err != nil {
		log.Warnf("failed to append history for task %s: %v", task.ID, err)
	}
}
