package monitor

import (
	"context"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/model"
)

// Analytics 单个问题的监测统计
// 只统计已完成任务的结果：提及率为百分比，平均排名按模型聚合
func (s *Service) Analytics(ctx context.Context, userID, queryID string) (*model.QueryAnalytics, *model.Error) {
	if queryID == "" {
		return nil, model.NewError(model.ErrorEmptyId, nil)
	}

	status := constant.TaskStatusCompleted.String()
	tasks, errModel := s.ListTasks(ctx, &model.MonitorTaskListCondition{
		UserID:  userID,
		QueryID: &queryID,
		Status:  &status,
	})
	if errModel != nil {
		return nil, errModel
	}

	analytics := &model.QueryAnalytics{
		QueryID:          queryID,
		AveragePositions: map[constant.AIModel]float64{},
	}

	mentionedCount := 0
	positionSums := map[constant.AIModel]float64{}
	positionCounts := map[constant.AIModel]int{}

	for _, task := range tasks {
		for _, result := range task.Results {
			analytics.ResultCount++
			if result.Mentioned {
				mentionedCount++
			}
			if result.Position != nil {
				positionSums[result.Model] += float64(*result.Position)
				positionCounts[result.Model]++
			}
		}
	}

	if analytics.ResultCount > 0 {
		analytics.MentionRate = float64(mentionedCount) / float64(analytics.ResultCount) * 100
	}
	for aiModel, sum := range positionSums {
		analytics.AveragePositions[aiModel] = sum / float64(positionCounts[aiModel])
	}
	return analytics, nil
}

// History 读取问题的监测历史，最新的在前
func (s *Service) History(ctx context.Context, userID, queryID string, limit int64) ([]*model.HistoryRecord, *model.Error) {
	if queryID == "" {
		return nil, model.NewError(model.ErrorEmptyId, nil)
	}
	if s.historyRepo == nil {
		return []*model.HistoryRecord{}, nil
	}

	records, err := s.historyRepo.List(ctx, userID, queryID, limit)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return records, nil
}
