package tools

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrorWithPrintContext 关闭资源并在失败时带上下文记日志，defer 用
func ErrorWithPrintContext(closeFunc func() error, format string, args ...interface{}) {
	err := closeFunc()
	if err == nil {
		return
	}
	log.WithField("resource", fmt.Sprintf(format, args...)).
		Warnf("close resource failed: %v", err)
}
