package constant

// =============================================
// Dify 统一任务类型常量
// =============================================

// TaskType 统一请求的任务类型
// 所有 AI 功能通过一个 Dify 应用处理，上游 workflow 按 task_type 分支
type TaskType string

const (
	// GEO 诊断类（Chat 模式，支持多轮对话）
	TaskTypeDiagnosisRank       TaskType = "diagnosis_rank"       // 排名检查
	TaskTypeDiagnosisCompetitor TaskType = "diagnosis_competitor" // 竞品分析
	TaskTypeDiagnosisSentiment  TaskType = "diagnosis_sentiment"  // 舆情审计

	// 内容生成类（Completion 模式，单次生成）
	TaskTypeContentPDP    TaskType = "content_pdp"    // PDP 摘要
	TaskTypeContentReview TaskType = "content_review" // 评论脚本
	TaskTypeContentSocial TaskType = "content_social" // 种草文案

	// AI 监测类（Chat 模式）
	TaskTypeMonitorSearch TaskType = "monitor_search" // AI 搜索监测
)

func (t TaskType) String() string {
	return string(t)
}

// AllTaskTypes 已注册的任务类型全集
var AllTaskTypes = []TaskType{
	TaskTypeDiagnosisRank,
	TaskTypeDiagnosisCompetitor,
	TaskTypeDiagnosisSentiment,
	TaskTypeContentPDP,
	TaskTypeContentReview,
	TaskTypeContentSocial,
	TaskTypeMonitorSearch,
}

// IsValid 检查任务类型是否有效
func (t TaskType) IsValid() bool {
	for _, known := range AllTaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// =============================================
// 响应模式常量
// =============================================

const (
	ResponseModeStreaming = "streaming"
	ResponseModeBlocking  = "blocking"
)

// =============================================
// Dify 流式事件类型常量
// =============================================

const (
	StreamEventMessage          = "message"
	StreamEventAgentMessage     = "agent_message"
	StreamEventAgentThought     = "agent_thought"
	StreamEventMessageFile      = "message_file"
	StreamEventMessageEnd       = "message_end"
	StreamEventMessageReplace   = "message_replace"
	StreamEventWorkflowStarted  = "workflow_started"
	StreamEventWorkflowFinished = "workflow_finished"
	StreamEventNodeStarted      = "node_started"
	StreamEventNodeFinished     = "node_finished"
	StreamEventError            = "error"
	StreamEventPing             = "ping"
)
