// Package classifier 从 AI 回复文本中挖掘品牌提及情况
// 纯文本启发式：是否提及、排名位置、情感倾向、上下文片段
package classifier

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/FeifanTech/GEO-Nexus/constant"
)

const (
	minPosition = 1
	maxPosition = 20

	contextBefore = 50
	contextAfter  = 100
)

// Result 单次分类结果
// Position 为 nil 表示没有排名（未提及，或估算策略关闭）
type Result struct {
	Mentioned bool
	Position  *int
	Sentiment constant.Sentiment
	Context   string
}

// PositionEstimator 未给出明确排名时的估算策略
// 入参为品牌首次出现的字符偏移和回复总字符数，返回 0 表示不估算
type PositionEstimator func(mentionOffset, responseLength int) int

// NewOffsetEstimator 按品牌出现位置分桶的估算策略
// 前 1/5 给 1-3 名，前 1/2 给 3-5 名，其余给 5-9 名
func NewOffsetEstimator(rng *rand.Rand) PositionEstimator {
	var mu sync.Mutex
	return func(mentionOffset, responseLength int) int {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case responseLength <= 0:
			return 0
		case mentionOffset < responseLength/5:
			return rng.Intn(3) + 1
		case mentionOffset < responseLength/2:
			return rng.Intn(3) + 3
		default:
			return rng.Intn(5) + 5
		}
	}
}

// NopEstimator 不估算，未明确给出排名时 Position 保持为 nil
func NopEstimator(mentionOffset, responseLength int) int {
	return 0
}

type Classifier struct {
	estimator PositionEstimator
}

func New(estimator PositionEstimator) *Classifier {
	if estimator == nil {
		estimator = NopEstimator
	}
	return &Classifier{estimator: estimator}
}

func NewDefault() *Classifier {
	return New(NewOffsetEstimator(rand.New(rand.NewSource(time.Now().UnixNano()))))
}

// Classify 解析一段完整回复
// 纯函数：不做网络调用，不产生副作用；targetBrand 为空视为未提及
func (c *Classifier) Classify(response, targetBrand string) Result {
	if targetBrand == "" {
		return Result{}
	}

	lowerResponse := strings.ToLower(response)
	lowerBrand := strings.ToLower(targetBrand)

	mentionIndex := strings.Index(lowerResponse, lowerBrand)
	mentioned := mentionIndex >= 0

	position := c.findExplicitPosition(response, targetBrand)
	if mentioned && position == nil {
		runeOffset := utf8.RuneCountInString(lowerResponse[:mentionIndex])
		if estimate := c.estimator(runeOffset, utf8.RuneCountInString(response)); estimate > 0 {
			position = &estimate
		}
	}

	result := Result{
		Mentioned: mentioned,
		Position:  position,
	}
	if mentioned {
		result.Sentiment = classifySentiment(response)
		result.Context = extractContext(response, mentionIndex, targetBrand)
	}
	return result
}

// findExplicitPosition 按序尝试三个排名模式，取第一个落在 1-20 区间的匹配
func (c *Classifier) findExplicitPosition(response, targetBrand string) *int {
	brand := regexp.QuoteMeta(targetBrand)
	patterns := []string{
		fmt.Sprintf(`(?i)%s[^。]*(?:排名|位列|第)\s*(\d+)`, brand),
		fmt.Sprintf(`(?i)(?:第|排名)\s*(\d+)[^。]*%s`, brand),
		fmt.Sprintf(`(?i)(\d+)[.、]\s*%s`, brand),
	}

	for _, pattern := range patterns {
		matches := regexp.MustCompile(pattern).FindStringSubmatch(response)
		if len(matches) < 2 {
			continue
		}
		position, err := strconv.Atoi(matches[1])
		if err != nil {
			continue
		}
		if position >= minPosition && position <= maxPosition {
			return &position
		}
	}
	return nil
}

// classifySentiment 固定关键词表的情感粗分类
// 只有正向命中为 positive，只有负向命中为 negative，其余为 neutral
func classifySentiment(response string) constant.Sentiment {
	hasPositive := containsAny(response, constant.PositiveKeywords)
	hasNegative := containsAny(response, constant.NegativeKeywords)

	switch {
	case hasPositive && !hasNegative:
		return constant.SentimentPositive
	case hasNegative && !hasPositive:
		return constant.SentimentNegative
	default:
		return constant.SentimentNeutral
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// extractContext 提取品牌首次出现位置前 50 / 后 100 字符的片段
// 两端被截断时补省略号
func extractContext(response string, mentionByteIndex int, targetBrand string) string {
	runes := []rune(response)
	runeIndex := utf8.RuneCountInString(response[:mentionByteIndex])
	brandLen := utf8.RuneCountInString(targetBrand)

	start := runeIndex - contextBefore
	if start < 0 {
		start = 0
	}
	end := runeIndex + brandLen + contextAfter
	if end > len(runes) {
		end = len(runes)
	}

	context := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		context = "..." + context
	}
	if end < len(runes) {
		context = context + "..."
	}
	return context
}
