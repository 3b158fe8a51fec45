package model

// ========== 统一请求 ==========

// UnifiedRequest 统一 Dify 代理请求
// 所有 AI 功能共用一个入口，按 task_type 区分任务
type UnifiedRequest struct {
	TaskType       string            `json:"task_type"`
	Inputs         map[string]string `json:"inputs"`
	Query          string            `json:"query,omitempty"` // Chat 模式需要
	User           string            `json:"user"`
	ConversationID string            `json:"conversation_id,omitempty"`
	ResponseMode   string            `json:"response_mode,omitempty"` // streaming / blocking

	// 可选的凭证覆盖，优先级高于服务端配置
	DifyApiKey  string `json:"dify_api_key,omitempty"`
	DifyBaseUrl string `json:"dify_base_url,omitempty"`
}

// ========== 上游响应 ==========

// DifyUsage token 用量信息
type DifyUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// DifyMetadata 消息元数据
type DifyMetadata struct {
	Usage *DifyUsage `json:"usage,omitempty"`
}

// DifyMessage 阻塞模式下的完整消息响应
type DifyMessage struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversation_id"`
	Answer         string        `json:"answer"`
	CreatedAt      int64         `json:"created_at"`
	Metadata       *DifyMetadata `json:"metadata,omitempty"`
}

// StreamEventData workflow/node 事件的附加数据
type StreamEventData struct {
	ID      string                 `json:"id,omitempty"`
	Title   string                 `json:"title,omitempty"`
	Outputs map[string]interface{} `json:"outputs,omitempty"`
	Status  string                 `json:"status,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// StreamEvent 流式响应的单个事件帧
// event 取值见 constant 包的 StreamEventXxx 常量
type StreamEvent struct {
	Event          string                 `json:"event"`
	TaskID         string                 `json:"task_id,omitempty"`
	MessageID      string                 `json:"message_id,omitempty"`
	ConversationID string                 `json:"conversation_id,omitempty"`
	Answer         string                 `json:"answer,omitempty"`
	CreatedAt      int64                  `json:"created_at,omitempty"`
	Message        string                 `json:"message,omitempty"` // error 事件的描述
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	WorkflowRunID  string                 `json:"workflow_run_id,omitempty"`
	Data           *StreamEventData       `json:"data,omitempty"`
}
