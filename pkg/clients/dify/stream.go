package dify

import (
	"context"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/pkg/sse"
	"github.com/FeifanTech/GEO-Nexus/pkg/tools"
)

// StreamResult 一次流式调用消化完之后的聚合结果
type StreamResult struct {
	FullContent    string
	ConversationID string
}

// Execute 流式调用并在服务端消化整个流
// 监测执行用：不向前端转发帧，只要最终全文；cb 可为空
func (c *Client) Execute(ctx context.Context, req *model.UnifiedRequest, onMessage func(fragment string, isFirst bool)) (*StreamResult, error) {
	streamReq := *req
	streamReq.ResponseMode = constant.ResponseModeStreaming

	resp, err := c.Send(ctx, &streamReq)
	if err != nil {
		return nil, err
	}
	defer tools.ErrorWithPrintContext(resp.Body.Close, "close dify stream body")

	result := new(StreamResult)
	err = sse.Decode(resp.Body, sse.Callbacks{
		OnMessage: onMessage,
		OnComplete: func(fullContent, conversationID string) {
			result.FullContent = fullContent
			result.ConversationID = conversationID
		},
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
