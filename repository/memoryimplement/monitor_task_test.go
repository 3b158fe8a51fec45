package memoryimplement

import (
	"context"
	"testing"
	"time"

	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// List 的分页要和 xorm 实现一致：limit 和 offset 同时生效
func TestListTasksPagination(t *testing.T) {
	f := NewFactory()
	taskRepo, err := f.NewMonitorTaskRepository(f.NewSession(context.Background()))
	require.NoError(t, err)

	base := time.Now()
	for i, id := range []string{"task-1", "task-2", "task-3"} {
		require.NoError(t, taskRepo.Create(&entity.MonitorTask{
			ID:        id,
			UserID:    "user-1",
			Status:    "pending",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	// 创建时间倒序，偏移 1 取到中间那条
	tasks, err := taskRepo.List(&model.MonitorTaskListCondition{
		UserID: "user-1",
		Pager:  &model.Pager{Limit: 1, Offset: 1},
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-2", tasks[0].ID)

	// 偏移越界返回空列表
	tasks, err = taskRepo.List(&model.MonitorTaskListCondition{
		UserID: "user-1",
		Pager:  &model.Pager{Limit: 2, Offset: 5},
	})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
