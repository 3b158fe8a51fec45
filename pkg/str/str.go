package str

import (
	"strconv"
)

// StringToInt 字符串转int，空串视为0
func StringToInt(str string) (int, error) {
	if str == "" {
		return 0, nil
	}

	i, err := strconv.Atoi(str)
	if err != nil {
		return 0, err
	}

	return i, err
}
