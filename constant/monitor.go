package constant

// =============================================
// 监测任务状态常量
// =============================================

// TaskStatus 监测任务状态类型
type TaskStatus string

const (
	// TaskStatusPending 待处理
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusRunning 执行中
	TaskStatusRunning TaskStatus = "running"
	// TaskStatusCompleted 已完成
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed 失败
	TaskStatusFailed TaskStatus = "failed"
)

// String 返回状态的字符串值
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid 检查状态是否有效
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusRunning, TaskStatusCompleted, TaskStatusFailed:
		return true
	}
	return false
}

// =============================================
// AI 模型常量
// =============================================

// AIModel 支持监测的 AI 模型/搜索引擎
type AIModel string

const (
	AIModelGPT4       AIModel = "gpt4"       // GPT-4 / ChatGPT
	AIModelClaude     AIModel = "claude"     // Claude
	AIModelKimi       AIModel = "kimi"       // Kimi（月之暗面）
	AIModelQwen       AIModel = "qwen"       // 通义千问
	AIModelWenxin     AIModel = "wenxin"     // 文心一言
	AIModelDoubao     AIModel = "doubao"     // 豆包
	AIModelPerplexity AIModel = "perplexity" // Perplexity
)

func (m AIModel) String() string {
	return string(m)
}

// IsValid 检查模型标识是否有效
func (m AIModel) IsValid() bool {
	_, ok := AIModelNames[m]
	return ok
}

// AIModelNames 模型展示名称
var AIModelNames = map[AIModel]string{
	AIModelGPT4:       "GPT-4",
	AIModelClaude:     "Claude",
	AIModelKimi:       "Kimi",
	AIModelQwen:       "通义千问",
	AIModelWenxin:     "文心一言",
	AIModelDoubao:     "豆包",
	AIModelPerplexity: "Perplexity",
}

// DisplayName 返回模型展示名称，未知模型返回原始标识
func (m AIModel) DisplayName() string {
	if name, ok := AIModelNames[m]; ok {
		return name
	}
	return string(m)
}

// DefaultMonitorModels 默认监测的模型列表
var DefaultMonitorModels = []AIModel{AIModelQwen, AIModelKimi, AIModelWenxin}

// =============================================
// 情感倾向常量
// =============================================

// Sentiment 品牌提及的情感倾向
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// 情感关键词表，用于回复文本的情感粗分类
var (
	PositiveKeywords = []string{"推荐", "好用", "优秀", "不错", "值得", "喜欢", "满意", "好评", "性价比高"}
	NegativeKeywords = []string{"不推荐", "差", "问题", "缺点", "不好", "差评", "避坑", "踩雷"}
)
