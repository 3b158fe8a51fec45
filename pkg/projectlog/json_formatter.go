package projectlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const LogPrefixName = "geo-nexus"

const defaultTimestampFormat = time.RFC3339

// logRecord 固定的日志输出结构，保证各服务日志字段一致
type logRecord struct {
	Level    string                 `json:"level"`
	Module   string                 `json:"module"`
	Time     string                 `json:"time"`
	File     string                 `json:"file,omitempty"`
	Function string                 `json:"function,omitempty"`
	Msg      string                 `json:"msg"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
}

// JSONFormatter 项目统一的 logrus JSON 格式化器
type JSONFormatter struct {
	// TimestampFormat 时间戳格式，空则用 RFC3339
	TimestampFormat string
}

func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	record := &logRecord{
		Level:  entry.Level.String(),
		Module: LogPrefixName,
		Time:   entry.Time.Format(timestampFormat),
		Msg:    entry.Message,
	}

	if entry.HasCaller() {
		record.Function = entry.Caller.Function
		record.File = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	if len(entry.Data) > 0 {
		fields := make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			switch v := v.(type) {
			case error:
				// encoding/json 会忽略 error 类型，先转成字符串
				fields[k] = v.Error()
			default:
				fields[k] = v
			}
		}
		record.Fields = fields
	}

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	if err := json.NewEncoder(b).Encode(record); err != nil {
		return nil, fmt.Errorf("failed to marshal log record to JSON, %v", err)
	}

	return b.Bytes(), nil
}
