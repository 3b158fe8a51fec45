package redisimplement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FeifanTech/GEO-Nexus/config"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/repository"

	"github.com/go-redis/redis/v8"
)

const (
	historyKeyFormat = "monitor:history:%s:%s" // userID, queryID
	historyMaxLen    = 500
)

// HistoryRepository 监测历史的 redis 实现
// 每个 用户+问题 一个 list，新记录在头部，带 TTL
type HistoryRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHistoryRepository(client *redis.Client) repository.HistoryRepository {
	ttlDay := config.GetInstance().GetIntOrDefault(config.MonitorHistoryTTLDay, 90)
	return &HistoryRepository{
		client: client,
		ttl:    time.Duration(ttlDay) * 24 * time.Hour,
	}
}

// NewHistoryRepositoryWithTTL 测试用，直接指定 TTL
func NewHistoryRepositoryWithTTL(client *redis.Client, ttl time.Duration) repository.HistoryRepository {
	return &HistoryRepository{client: client, ttl: ttl}
}

func historyKey(userID, queryID string) string {
	return fmt.Sprintf(historyKeyFormat, userID, queryID)
}

func (r *HistoryRepository) Append(ctx context.Context, userID, queryID string, record *model.HistoryRecord) error {
	if record == nil {
		return fmt.Errorf("history record cannot be nil")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}

	key := historyKey(userID, queryID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, historyMaxLen-1)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, userID, queryID string, limit int64) ([]*model.HistoryRecord, error) {
	if limit <= 0 {
		limit = historyMaxLen
	}

	values, err := r.client.LRange(ctx, historyKey(userID, queryID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}

	records := make([]*model.HistoryRecord, 0, len(values))
	for _, value := range values {
		record := &model.HistoryRecord{}
		if err := json.Unmarshal([]byte(value), record); err != nil {
			// 单条损坏不影响整体读取
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
