package constant

const (
	DefaultPageLimit = 10
)

const (
	EmptyString = ""
)

// 临时演示用户，接入真实用户体系前使用
const (
	DemoUserID    = "demo-user"
	DemoUserEmail = "demo@geonexus.local"
)

// AI 搜索监测的提示词模板
// 参数顺序：模型名称、用户问题、目标品牌
const (
	MonitorPromptTemplate = `你现在是 %s AI 助手。

用户问：%s

请像真实的 AI 助手一样回答这个问题。如果 "%s" 品牌/产品确实适合推荐，可以自然地提及。给出客观、有价值的回答。`
)
