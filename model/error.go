package model

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	ErrorParams            = 100001
	ErrorEmptyId           = 100002
	ErrorNewRepo           = 100003
	ErrorDB                = 100004
	ErrorTaskTypeRequired  = 100005
	ErrorUnknownTaskType   = 100006
	ErrorApiKeyMissing     = 100007
	ErrorUpstream          = 100008
	ErrorTaskNotFound      = 100010
	ErrorTaskAlreadyDone   = 100011
	ErrorExecutionRunning  = 100012
	ErrorExecutionNotFound = 100013
	ErrorExecutionCanceled = 100014
	ErrorQueryNotFound     = 100015
)

var ErrorMessages = map[int]string{
	ErrorParams:            "参数错误",
	ErrorEmptyId:           "id 为空",
	ErrorNewRepo:           "新建 repo 失败",
	ErrorDB:                "db error",
	ErrorTaskTypeRequired:  "task_type is required",
	ErrorUnknownTaskType:   "unknown task_type",
	ErrorApiKeyMissing:     "DIFY_API_KEY is not configured",
	ErrorUpstream:          "Dify API error",
	ErrorTaskNotFound:      "监测任务不存在",
	ErrorTaskAlreadyDone:   "监测任务已结束",
	ErrorExecutionRunning:  "已有执行中的监测任务",
	ErrorExecutionNotFound: "执行记录不存在",
	ErrorExecutionCanceled: "执行已取消",
	ErrorQueryNotFound:     "问题不存在",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"inner_error"`
}

func (err Error) Error() string {
	return err.Message
}

func (err Error) String() string {
	return err.InnerError.Error()
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: nil,
	}
}

func NewErrorWithMessage(code int, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		InnerError: nil,
	}
}
