package time

import (
	"time"
)

const (
	TimeFormatCommonStyleDay = "2006-01-02"
	TimeFormatCommonStyleMin = "2006-01-02 15:04"
	TimeFormatCommonStyleSec = "2006-01-02 15:04:05"
)

func GetNowTimestamp() int64 {
	return time.Now().UnixNano() / 1000000
}

func GetNowTimeByFormat(format string) string {
	return time.Now().Format(format)
}

func GetNowTimeStr() string {
	return time.Now().Format(TimeFormatCommonStyleSec)
}
