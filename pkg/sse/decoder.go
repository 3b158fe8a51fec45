// Package sse 解析 Dify 的 Server-Sent-Events 字节流
// 按行累积增量回答片段，并跟踪 conversation_id 供多轮对话使用
package sse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/model"

	log "github.com/sirupsen/logrus"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"

	readBufferSize = 4096
)

// Callbacks 流式解析回调
// OnMessage 每收到一个回答片段触发一次；OnComplete 在流结束时触发一次
type Callbacks struct {
	OnMessage  func(fragment string, isFirst bool)
	OnComplete func(fullContent string, conversationID string)
}

// Decoder SSE 帧解码器
// 字节块追加进缓冲区，按 \n 切分，最后一段（可能不完整）留到下一块
type Decoder struct {
	buffer         []byte
	fullContent    strings.Builder
	conversationID string
	isFirst        bool
}

func NewDecoder() *Decoder {
	return &Decoder{isFirst: true}
}

// FullContent 已累积的完整回答
func (d *Decoder) FullContent() string {
	return d.fullContent.String()
}

// ConversationID 当前跟踪到的会话标识，未出现时为空串
func (d *Decoder) ConversationID() string {
	return d.conversationID
}

// Feed 处理一个字节块中的所有完整行
func (d *Decoder) Feed(chunk []byte, cb *Callbacks) error {
	d.buffer = append(d.buffer, chunk...)

	for {
		idx := bytes.IndexByte(d.buffer, '\n')
		if idx < 0 {
			return nil
		}
		line := string(d.buffer[:idx])
		d.buffer = d.buffer[idx+1:]

		if err := d.processLine(line, cb); err != nil {
			return err
		}
	}
}

// Finish 冲刷缓冲区中最后一个没有换行符的帧，并触发完成回调
func (d *Decoder) Finish(cb *Callbacks) error {
	if len(bytes.TrimSpace(d.buffer)) > 0 {
		for _, line := range strings.Split(string(d.buffer), "\n") {
			if err := d.processLine(line, cb); err != nil {
				return err
			}
		}
	}
	d.buffer = nil

	if cb != nil && cb.OnComplete != nil {
		cb.OnComplete(d.fullContent.String(), d.conversationID)
	}
	return nil
}

// processLine 解析单行，非法帧跳过不报错
func (d *Decoder) processLine(line string, cb *Callbacks) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	event := parseEvent(line)
	if event == nil {
		return nil
	}

	switch event.Event {
	case constant.StreamEventError:
		message := event.Message
		if message == "" {
			message = "stream error from Dify"
		}
		return fmt.Errorf("%s", message)

	case constant.StreamEventMessage, constant.StreamEventAgentMessage:
		if event.Answer != "" {
			d.fullContent.WriteString(event.Answer)
			if cb != nil && cb.OnMessage != nil {
				cb.OnMessage(event.Answer, d.isFirst)
			}
			d.isFirst = false
		}
		if event.ConversationID != "" {
			d.conversationID = event.ConversationID
		}

	case constant.StreamEventMessageEnd:
		if event.ConversationID != "" {
			d.conversationID = event.ConversationID
		}

	default:
		// ping、workflow/node 等事件不参与累积，未知事件同样忽略
	}
	return nil
}

// parseEvent 解析一行 SSE 帧，无法解析时返回 nil
func parseEvent(line string) *model.StreamEvent {
	if !strings.HasPrefix(line, dataPrefix) {
		return nil
	}

	data := line[len(dataPrefix):]
	if data == doneSentinel {
		return nil
	}

	event := &model.StreamEvent{}
	if err := json.Unmarshal([]byte(data), event); err != nil {
		log.Warnf("failed to parse SSE event: %s", data)
		return nil
	}
	return event
}

// Decode 读取整个 SSE 字节流直到 EOF
// 读错误和 error 事件立即终止并返回；正常结束时返回 nil
func Decode(r io.Reader, cb Callbacks) error {
	decoder := NewDecoder()
	buf := make([]byte, readBufferSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if feedErr := decoder.Feed(buf[:n], &cb); feedErr != nil {
				return feedErr
			}
		}
		if err == io.EOF {
			return decoder.Finish(&cb)
		}
		if err != nil {
			return fmt.Errorf("failed to read stream: %w", err)
		}
	}
}
