package monitor

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/pkg/classifier"
	"github.com/FeifanTech/GEO-Nexus/pkg/clients/dify"
	"github.com/FeifanTech/GEO-Nexus/repository"
	"github.com/FeifanTech/GEO-Nexus/repository/factory"
	"github.com/FeifanTech/GEO-Nexus/repository/interfaces"
	"github.com/FeifanTech/GEO-Nexus/repository/memoryimplement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

// fakeExecutor 按 inputs 里的模型标识返回预置回复
// blockOn 非空时，提示词包含该子串的请求会阻塞到 ctx 取消
type fakeExecutor struct {
	mu        sync.Mutex
	responses map[string]string
	errors    map[string]error
	blockOn   string
	started   chan struct{}
	requests  []*model.UnifiedRequest
}

func (f *fakeExecutor) Execute(ctx context.Context, req *model.UnifiedRequest, onMessage func(fragment string, isFirst bool)) (*dify.StreamResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.blockOn != "" && strings.Contains(req.Query, f.blockOn) {
		if f.started != nil {
			select {
			case f.started <- struct{}{}:
			default:
			}
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}

	modelName := req.Inputs["model_name"]
	if err, ok := f.errors[modelName]; ok {
		return nil, err
	}
	return &dify.StreamResult{FullContent: f.responses[modelName]}, nil
}

func newTestService(repositoryFactory factory.Factory, executor Executor) *Service {
	return NewService(repositoryFactory, nil, executor, classifier.New(classifier.NopEstimator), Options{})
}

func seedQuery(t *testing.T, repositoryFactory factory.Factory, userID, question string) string {
	session := repositoryFactory.NewSession(context.Background())
	defer func() { _ = session.Close() }()

	queryRepo, err := repositoryFactory.NewSearchQueryRepository(session)
	require.NoError(t, err)

	query := &entity.SearchQuery{
		ID:       uuid.NewString(),
		UserID:   userID,
		Question: question,
		Status:   "active",
	}
	require.NoError(t, queryRepo.Create(query))
	return query.ID
}

func createTask(t *testing.T, service *Service, queryID string, models []string) *model.MonitorTask {
	tasks, errModel := service.CreateTasks(context.Background(), testUserID, &model.CreateMonitorTaskRequest{
		QueryIDs:    []string{queryID},
		TargetBrand: "Acme",
		Models:      models,
	})
	require.Nil(t, errModel)
	require.Len(t, tasks, 1)
	return tasks[0]
}

func TestCreateTasksDefaultModels(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})
	queryID := seedQuery(t, repositoryFactory, testUserID, "扫地机器人哪个牌子好")

	task := createTask(t, service, queryID, nil)

	assert.Equal(t, constant.TaskStatusPending, task.Status)
	assert.Equal(t, constant.DefaultMonitorModels, task.Models)
	assert.Equal(t, "扫地机器人哪个牌子好", task.Query)
	assert.Equal(t, "Acme", task.TargetBrand)
	assert.Empty(t, task.Results)
}

func TestCreateTasksUnknownModel(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})
	queryID := seedQuery(t, repositoryFactory, testUserID, "问题")

	_, errModel := service.CreateTasks(context.Background(), testUserID, &model.CreateMonitorTaskRequest{
		QueryIDs:    []string{queryID},
		TargetBrand: "Acme",
		Models:      []string{"gpt5"},
	})

	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorParams, errModel.Code)
}

func TestCreateTasksQueryNotFound(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})
	queryID := seedQuery(t, repositoryFactory, "other-user", "别人的问题")

	// 不存在的问题
	_, errModel := service.CreateTasks(context.Background(), testUserID, &model.CreateMonitorTaskRequest{
		QueryIDs:    []string{uuid.NewString()},
		TargetBrand: "Acme",
	})
	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorQueryNotFound, errModel.Code)

	// 别人的问题同样视为不存在
	_, errModel = service.CreateTasks(context.Background(), testUserID, &model.CreateMonitorTaskRequest{
		QueryIDs:    []string{queryID},
		TargetBrand: "Acme",
	})
	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorQueryNotFound, errModel.Code)
}

func TestExecuteTaskOrderedResults(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	executor := &fakeExecutor{responses: map[string]string{
		"qwen": "我们推荐Acme，排名第2，性价比高。",
		"kimi": "市面上有很多品牌可以选择。",
	}}
	service := newTestService(repositoryFactory, executor)
	queryID := seedQuery(t, repositoryFactory, testUserID, "扫地机器人哪个牌子好")
	task := createTask(t, service, queryID, []string{"qwen", "kimi"})

	executed, errModel := service.ExecuteTask(context.Background(), testUserID, task.ID)

	require.Nil(t, errModel)
	assert.Equal(t, constant.TaskStatusCompleted, executed.Status)
	require.NotNil(t, executed.CompletedAt)
	require.Len(t, executed.Results, 2)

	first := executed.Results[0]
	assert.Equal(t, constant.AIModelQwen, first.Model)
	assert.True(t, first.Mentioned)
	require.NotNil(t, first.Position)
	assert.Equal(t, 2, *first.Position)
	assert.Equal(t, constant.SentimentPositive, first.Sentiment)
	assert.NotEmpty(t, first.Timestamp)

	second := executed.Results[1]
	assert.Equal(t, constant.AIModelKimi, second.Model)
	assert.False(t, second.Mentioned)
	assert.Nil(t, second.Position)
	assert.Equal(t, "市面上有很多品牌可以选择。", second.FullResponse)

	// 提示词带上模型展示名、问题快照和目标品牌
	require.Len(t, executor.requests, 2)
	assert.Equal(t, constant.TaskTypeMonitorSearch.String(), executor.requests[0].TaskType)
	assert.Equal(t, testUserID, executor.requests[0].User)
	assert.Contains(t, executor.requests[0].Query, "通义千问")
	assert.Contains(t, executor.requests[0].Query, "扫地机器人哪个牌子好")
	assert.Contains(t, executor.requests[0].Query, "Acme")

	// inputs 按上游工作流的入参命名
	assert.Equal(t, map[string]string{
		"model_name":   "qwen",
		"search_query": "扫地机器人哪个牌子好",
		"target_brand": "Acme",
	}, executor.requests[0].Inputs)
}

// 单个模型失败记降级结果，任务照常完成
func TestExecuteTaskDegradedModel(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	executor := &fakeExecutor{
		responses: map[string]string{"kimi": "推荐Acme。"},
		errors:    map[string]error{"qwen": assert.AnError},
	}
	service := newTestService(repositoryFactory, executor)
	queryID := seedQuery(t, repositoryFactory, testUserID, "问题")
	task := createTask(t, service, queryID, []string{"qwen", "kimi"})

	executed, errModel := service.ExecuteTask(context.Background(), testUserID, task.ID)

	require.Nil(t, errModel)
	assert.Equal(t, constant.TaskStatusCompleted, executed.Status)
	require.Len(t, executed.Results, 2)

	// 错误信息放在 context，完整回复留空
	degraded := executed.Results[0]
	assert.Equal(t, constant.AIModelQwen, degraded.Model)
	assert.False(t, degraded.Mentioned)
	assert.True(t, strings.HasPrefix(degraded.Context, "执行失败: "))
	assert.Empty(t, degraded.FullResponse)

	assert.True(t, executed.Results[1].Mentioned)
}

func TestExecuteTaskRejectsRunning(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})
	queryID := seedQuery(t, repositoryFactory, testUserID, "问题")
	task := createTask(t, service, queryID, nil)

	setTaskStatus(t, repositoryFactory, task.ID, constant.TaskStatusRunning)
	_, errModel := service.ExecuteTask(context.Background(), testUserID, task.ID)
	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorExecutionRunning, errModel.Code)

	setTaskStatus(t, repositoryFactory, task.ID, constant.TaskStatusCompleted)
	_, errModel = service.ExecuteTask(context.Background(), testUserID, task.ID)
	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorTaskAlreadyDone, errModel.Code)
}

func TestExecuteTaskNotFound(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})

	_, errModel := service.ExecuteTask(context.Background(), testUserID, uuid.NewString())

	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorTaskNotFound, errModel.Code)
}

func TestExecuteBatchEmpty(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})

	_, errModel := service.ExecuteBatch(context.Background(), testUserID, nil)

	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorParams, errModel.Code)
}

// 取消批量执行：执行中的任务标记失败，后面的任务保持待处理
func TestExecuteBatchCancel(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	executor := &fakeExecutor{
		responses: map[string]string{"qwen": "推荐Acme。"},
		blockOn:   "问题二",
		started:   make(chan struct{}, 1),
	}
	service := newTestService(repositoryFactory, executor)

	query1 := seedQuery(t, repositoryFactory, testUserID, "问题一")
	query2 := seedQuery(t, repositoryFactory, testUserID, "问题二")
	query3 := seedQuery(t, repositoryFactory, testUserID, "问题三")
	task1 := createTask(t, service, query1, []string{"qwen"})
	task2 := createTask(t, service, query2, []string{"qwen"})
	task3 := createTask(t, service, query3, []string{"qwen"})

	response, errModel := service.ExecuteBatch(context.Background(), testUserID,
		[]string{task1.ID, task2.ID, task3.ID})
	require.Nil(t, errModel)
	assert.Equal(t, []string{task1.ID, task2.ID, task3.ID}, response.TaskIDs)

	select {
	case <-executor.started:
	case <-time.After(3 * time.Second):
		t.Fatal("second task never started")
	}

	require.Nil(t, service.Cancel(response.ExecutionID))

	assert.Eventually(t, func() bool {
		task, errModel := service.GetTask(context.Background(), testUserID, task2.ID)
		return errModel == nil && task.Status == constant.TaskStatusFailed
	}, 3*time.Second, 10*time.Millisecond)

	task, errModel := service.GetTask(context.Background(), testUserID, task1.ID)
	require.Nil(t, errModel)
	assert.Equal(t, constant.TaskStatusCompleted, task.Status)

	task, errModel = service.GetTask(context.Background(), testUserID, task3.ID)
	require.Nil(t, errModel)
	assert.Equal(t, constant.TaskStatusPending, task.Status)

	// 执行结束后注册表被清理
	assert.Eventually(t, func() bool {
		errModel := service.Cancel(response.ExecutionID)
		return errModel != nil && errModel.Code == model.ErrorExecutionNotFound
	}, 3*time.Second, 10*time.Millisecond)
}

func TestCancelUnknownExecution(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})

	errModel := service.Cancel(uuid.NewString())

	require.NotNil(t, errModel)
	assert.Equal(t, model.ErrorExecutionNotFound, errModel.Code)
}

func TestAnalytics(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})
	queryID := seedQuery(t, repositoryFactory, testUserID, "问题")

	position := 2
	seedCompletedTask(t, repositoryFactory, queryID, []model.RankingResult{
		{Model: constant.AIModelQwen, Mentioned: true, Position: &position},
		{Model: constant.AIModelKimi, Mentioned: false},
	})

	analytics, errModel := service.Analytics(context.Background(), testUserID, queryID)

	require.Nil(t, errModel)
	assert.Equal(t, queryID, analytics.QueryID)
	assert.Equal(t, 2, analytics.ResultCount)
	assert.InDelta(t, 50.0, analytics.MentionRate, 0.001)
	assert.InDelta(t, 2.0, analytics.AveragePositions[constant.AIModelQwen], 0.001)
	_, hasKimi := analytics.AveragePositions[constant.AIModelKimi]
	assert.False(t, hasKimi)
}

func TestAnalyticsEmpty(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})
	queryID := seedQuery(t, repositoryFactory, testUserID, "问题")

	analytics, errModel := service.Analytics(context.Background(), testUserID, queryID)

	require.Nil(t, errModel)
	assert.Equal(t, 0, analytics.ResultCount)
	assert.Zero(t, analytics.MentionRate)
}

// 未配置历史仓库时返回空列表而不是报错
func TestHistoryWithoutRepo(t *testing.T) {
	repositoryFactory := memoryimplement.NewFactory()
	service := newTestService(repositoryFactory, &fakeExecutor{})

	records, errModel := service.History(context.Background(), testUserID, uuid.NewString(), 30)

	require.Nil(t, errModel)
	assert.Empty(t, records)
}

// ctxFactory 模拟 xorm 那样会话绑定 ctx 的仓库：ctx 取消后写操作直接报错
type ctxFactory struct {
	inner factory.Factory
}

type ctxSession struct {
	interfaces.Session
	ctx context.Context
}

func (f *ctxFactory) NewSession(ctx context.Context) interfaces.Session {
	return &ctxSession{Session: f.inner.NewSession(ctx), ctx: ctx}
}

func (f *ctxFactory) NewMonitorTaskRepository(session interfaces.Session) (repository.MonitorTaskRepository, error) {
	taskRepo, err := f.inner.NewMonitorTaskRepository(session)
	if err != nil {
		return nil, err
	}
	s, ok := session.(*ctxSession)
	if !ok {
		return taskRepo, nil
	}
	return &ctxTaskRepository{MonitorTaskRepository: taskRepo, ctx: s.ctx}, nil
}

func (f *ctxFactory) NewSearchQueryRepository(session interfaces.Session) (repository.SearchQueryRepository, error) {
	return f.inner.NewSearchQueryRepository(session)
}

func (f *ctxFactory) NewProductRepository(session interfaces.Session) (repository.ProductRepository, error) {
	return f.inner.NewProductRepository(session)
}

func (f *ctxFactory) NewCompetitorRepository(session interfaces.Session) (repository.CompetitorRepository, error) {
	return f.inner.NewCompetitorRepository(session)
}

type ctxTaskRepository struct {
	repository.MonitorTaskRepository
	ctx context.Context
}

func (r *ctxTaskRepository) UpdateStatus(taskID string, status constant.TaskStatus, completedAt *time.Time) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	return r.MonitorTaskRepository.UpdateStatus(taskID, status, completedAt)
}

func (r *ctxTaskRepository) AppendResult(taskID string, result *model.RankingResult) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	return r.MonitorTaskRepository.AppendResult(taskID, result)
}

// 仓库写操作跟随 ctx 取消时，失败状态仍然要落库
func TestExecuteBatchCancelPersistsFailure(t *testing.T) {
	repositoryFactory := &ctxFactory{inner: memoryimplement.NewFactory()}
	executor := &fakeExecutor{
		blockOn: "问题",
		started: make(chan struct{}, 1),
	}
	service := newTestService(repositoryFactory, executor)
	queryID := seedQuery(t, repositoryFactory, testUserID, "问题")
	task := createTask(t, service, queryID, []string{"qwen"})

	response, errModel := service.ExecuteBatch(context.Background(), testUserID, []string{task.ID})
	require.Nil(t, errModel)

	select {
	case <-executor.started:
	case <-time.After(3 * time.Second):
		t.Fatal("task never started")
	}

	require.Nil(t, service.Cancel(response.ExecutionID))

	assert.Eventually(t, func() bool {
		executed, errModel := service.GetTask(context.Background(), testUserID, task.ID)
		return errModel == nil && executed.Status == constant.TaskStatusFailed
	}, 3*time.Second, 10*time.Millisecond)
}

func setTaskStatus(t *testing.T, repositoryFactory factory.Factory, taskID string, status constant.TaskStatus) {
	session := repositoryFactory.NewSession(context.Background())
	defer func() { _ = session.Close() }()

	taskRepo, err := repositoryFactory.NewMonitorTaskRepository(session)
	require.NoError(t, err)
	require.NoError(t, taskRepo.UpdateStatus(taskID, status, nil))
}

func seedCompletedTask(t *testing.T, repositoryFactory factory.Factory, queryID string, results []model.RankingResult) {
	session := repositoryFactory.NewSession(context.Background())
	defer func() { _ = session.Close() }()

	taskRepo, err := repositoryFactory.NewMonitorTaskRepository(session)
	require.NoError(t, err)

	resultsJSON, err := json.Marshal(results)
	require.NoError(t, err)

	modelsJSON, err := json.Marshal([]constant.AIModel{constant.AIModelQwen, constant.AIModelKimi})
	require.NoError(t, err)

	require.NoError(t, taskRepo.Create(&entity.MonitorTask{
		ID:          uuid.NewString(),
		UserID:      testUserID,
		QueryID:     queryID,
		TargetBrand: "Acme",
		ModelsJSON:  string(modelsJSON),
		ResultsJSON: string(resultsJSON),
		Status:      constant.TaskStatusCompleted.String(),
	}))
}
