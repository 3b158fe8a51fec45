package dify

import "fmt"

// UpstreamError 上游返回非 2xx 时的错误，保留原始状态码和响应体
// 代理层按原状态码透传给前端
type UpstreamError struct {
	Status  int
	Details string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("dify upstream returned status %d: %s", e.Status, e.Details)
}
