package dify

import (
	"fmt"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/model"
)

// AppType Dify 应用形态，决定上游走哪个端点
type AppType string

const (
	AppTypeChat       AppType = "chat"       // 多轮对话，带 conversation_id
	AppTypeCompletion AppType = "completion" // 单次文本生成

	EndpointChat       = "/chat-messages"
	EndpointCompletion = "/completion-messages"

	// DefaultUser 前端未传 user 时的占位用户标识
	DefaultUser = "web-user"
)

// taskAppTypes 任务类型到应用形态的静态路由表
// 未注册的 task_type 直接报错，不做兜底
var taskAppTypes = map[constant.TaskType]AppType{
	constant.TaskTypeDiagnosisRank:       AppTypeChat,
	constant.TaskTypeDiagnosisCompetitor: AppTypeChat,
	constant.TaskTypeDiagnosisSentiment:  AppTypeChat,
	constant.TaskTypeContentPDP:          AppTypeCompletion,
	constant.TaskTypeContentReview:       AppTypeCompletion,
	constant.TaskTypeContentSocial:       AppTypeCompletion,
	constant.TaskTypeMonitorSearch:       AppTypeChat,
}

// ClassifyTaskType 按任务类型路由到应用形态
func ClassifyTaskType(taskType constant.TaskType) (AppType, error) {
	appType, ok := taskAppTypes[taskType]
	if !ok {
		return "", model.NewErrorWithMessage(model.ErrorUnknownTaskType,
			fmt.Sprintf("unknown task_type: %s", taskType))
	}
	return appType, nil
}

// Endpoint 应用形态对应的上游路径
func (t AppType) Endpoint() string {
	if t == AppTypeCompletion {
		return EndpointCompletion
	}
	return EndpointChat
}

// BuildPayload 组装上游请求体
// task_type 合并进 inputs，上游 workflow 按它分支；
// Completion 形态没有顶层 query，问题文本放进 inputs
func BuildPayload(req *model.UnifiedRequest, appType AppType) map[string]interface{} {
	inputs := map[string]string{}
	for key, value := range req.Inputs {
		inputs[key] = value
	}
	inputs["task_type"] = req.TaskType

	user := req.User
	if user == "" {
		user = DefaultUser
	}

	responseMode := req.ResponseMode
	if responseMode == "" {
		responseMode = constant.ResponseModeStreaming
	}

	payload := map[string]interface{}{
		"inputs":        inputs,
		"user":          user,
		"response_mode": responseMode,
	}

	if appType == AppTypeCompletion {
		if req.Query != "" {
			inputs["query"] = req.Query
		}
		return payload
	}

	query := req.Query
	if query == "" {
		query = req.Inputs["query"]
	}
	payload["query"] = query
	if req.ConversationID != "" {
		payload["conversation_id"] = req.ConversationID
	}
	return payload
}
