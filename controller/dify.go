package controller

import (
	"io"
	"net/http"
	"strings"

	"github.com/FeifanTech/GEO-Nexus/middleware"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/pkg/clients/dify"
	"github.com/FeifanTech/GEO-Nexus/pkg/clients/httptool"
	"github.com/FeifanTech/GEO-Nexus/pkg/tools"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DifyProxy 统一 AI 代理
// @Summary 统一 Dify 代理入口
// @Description 按 task_type 路由到 chat/completion 应用，流式响应逐块透传
// @Tags Dify
// @Accept json
// @Produce json
// @Param request body model.UnifiedRequest true "统一请求"
// @Router /api/dify [post]
func DifyProxy(ctx *gin.Context) {
	var req model.UnifiedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.User == "" {
		req.User = middleware.CurrentUserID(ctx)
	}

	resp, err := dify.GetInstance().Send(ctx.Request.Context(), &req)
	if err != nil {
		writeProxyError(ctx, err)
		return
	}
	defer tools.ErrorWithPrintContext(resp.Body.Close, "close dify response body")

	contentType := resp.Header.Get(httptool.HeaderContentType)
	if !isEventStream(contentType) {
		// 阻塞模式：整体读回后原样返回
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Errorf("DifyProxy read blocking response error: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": err.Error()})
			return
		}
		ctx.Data(resp.StatusCode, contentType, body)
		return
	}

	relayStream(ctx, resp.Body)
}

// relayStream 逐块透传 SSE 字节流，每块后立即 flush
// 不解析帧内容，客户端看到的字节和上游完全一致
func relayStream(ctx *gin.Context, body io.Reader) {
	ctx.Header(httptool.HeaderContentType, httptool.HeaderContentTypeStream)
	ctx.Header(httptool.HeaderContentCache, httptool.HeaderContentCacheNo)
	ctx.Header(httptool.HeaderContentConnection, httptool.HeaderContentKeepAlive)
	ctx.Header(httptool.HeaderContentTransfer, httptool.HeaderContentChunked)
	ctx.Status(http.StatusOK)

	writer := ctx.Writer
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, writeErr := writer.Write(buf[:n]); writeErr != nil {
				// 客户端断开，上游流随请求 ctx 取消
				log.Debugf("relay write aborted: %v", writeErr)
				return
			}
			writer.Flush()
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			// 头已发出，只能中断，错误留给客户端按流中断处理
			log.Warnf("relay interrupted: %v", err)
			return
		}
	}
}

func isEventStream(contentType string) bool {
	return strings.HasPrefix(contentType, "text/event-stream")
}

// writeProxyError 代理层错误转成对前端稳定的 JSON 形状
func writeProxyError(ctx *gin.Context, err error) {
	if upstreamErr, ok := err.(*dify.UpstreamError); ok {
		log.Errorf("DifyProxy upstream error: %v", upstreamErr)
		ctx.JSON(upstreamErr.Status, gin.H{
			"error":   model.ErrorMessages[model.ErrorUpstream],
			"status":  upstreamErr.Status,
			"details": upstreamErr.Details,
		})
		return
	}

	if modelErr, ok := err.(*model.Error); ok {
		switch modelErr.Code {
		case model.ErrorTaskTypeRequired, model.ErrorUnknownTaskType:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": modelErr.Message})
			return
		case model.ErrorApiKeyMissing:
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error":   modelErr.Message,
				"message": "请在配置文件中设置 clients.dify.apiKey",
			})
			return
		}
	}

	log.Errorf("DifyProxy error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": err.Error()})
}
