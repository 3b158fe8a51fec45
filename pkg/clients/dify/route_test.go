package dify

import (
	"testing"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTaskType(t *testing.T) {
	cases := []struct {
		taskType constant.TaskType
		want     AppType
	}{
		{constant.TaskTypeDiagnosisRank, AppTypeChat},
		{constant.TaskTypeDiagnosisCompetitor, AppTypeChat},
		{constant.TaskTypeDiagnosisSentiment, AppTypeChat},
		{constant.TaskTypeMonitorSearch, AppTypeChat},
		{constant.TaskTypeContentPDP, AppTypeCompletion},
		{constant.TaskTypeContentReview, AppTypeCompletion},
		{constant.TaskTypeContentSocial, AppTypeCompletion},
	}

	for _, tc := range cases {
		appType, err := ClassifyTaskType(tc.taskType)
		require.NoError(t, err, tc.taskType)
		assert.Equal(t, tc.want, appType, tc.taskType)
	}
}

func TestClassifyTaskTypeUnknown(t *testing.T) {
	_, err := ClassifyTaskType("translate")

	require.Error(t, err)
	modelErr, ok := err.(*model.Error)
	require.True(t, ok)
	assert.Equal(t, model.ErrorUnknownTaskType, modelErr.Code)
	assert.Contains(t, modelErr.Message, "translate")
}

func TestAppTypeEndpoint(t *testing.T) {
	assert.Equal(t, "/chat-messages", AppTypeChat.Endpoint())
	assert.Equal(t, "/completion-messages", AppTypeCompletion.Endpoint())
}

func TestBuildPayloadChat(t *testing.T) {
	req := &model.UnifiedRequest{
		TaskType:       "diagnosis_rank",
		Inputs:         map[string]string{"brand": "Acme"},
		Query:          "Acme排名如何",
		ConversationID: "conv-1",
	}

	payload := BuildPayload(req, AppTypeChat)

	inputs := payload["inputs"].(map[string]string)
	assert.Equal(t, "diagnosis_rank", inputs["task_type"])
	assert.Equal(t, "Acme", inputs["brand"])
	assert.Equal(t, "Acme排名如何", payload["query"])
	assert.Equal(t, "conv-1", payload["conversation_id"])
	assert.Equal(t, constant.ResponseModeStreaming, payload["response_mode"])
	assert.Equal(t, DefaultUser, payload["user"])
}

// 顶层 query 为空时回退到 inputs 里的 query
func TestBuildPayloadChatQueryFallback(t *testing.T) {
	req := &model.UnifiedRequest{
		TaskType: "diagnosis_sentiment",
		Inputs:   map[string]string{"query": "口碑怎么样"},
		User:     "user-7",
	}

	payload := BuildPayload(req, AppTypeChat)

	assert.Equal(t, "口碑怎么样", payload["query"])
	assert.Equal(t, "user-7", payload["user"])
	_, hasConversation := payload["conversation_id"]
	assert.False(t, hasConversation)
}

func TestBuildPayloadCompletion(t *testing.T) {
	req := &model.UnifiedRequest{
		TaskType:     "content_pdp",
		Inputs:       map[string]string{"product": "智能手表"},
		Query:        "生成PDP摘要",
		ResponseMode: constant.ResponseModeBlocking,
	}

	payload := BuildPayload(req, AppTypeCompletion)

	inputs := payload["inputs"].(map[string]string)
	assert.Equal(t, "content_pdp", inputs["task_type"])
	assert.Equal(t, "生成PDP摘要", inputs["query"])
	assert.Equal(t, constant.ResponseModeBlocking, payload["response_mode"])

	// Completion 形态不允许顶层 query 和 conversation_id
	_, hasQuery := payload["query"]
	assert.False(t, hasQuery)
	_, hasConversation := payload["conversation_id"]
	assert.False(t, hasConversation)
}

func TestBuildPayloadDoesNotMutateRequest(t *testing.T) {
	req := &model.UnifiedRequest{
		TaskType: "monitor_search",
		Inputs:   map[string]string{"model": "deepseek"},
	}

	BuildPayload(req, AppTypeChat)

	_, polluted := req.Inputs["task_type"]
	assert.False(t, polluted)
}
