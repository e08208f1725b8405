package utils

import (
	"encoding/json"
	"strings"
)

// StringOrNumber 支持 JSON 中字段为 string 或 number 的场景
// 常用于渠道响应中 code、status 等字段兼容解析。
type StringOrNumber string

// UnmarshalJSON 支持自动兼容 string 或 number
func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}

	// 首字符为引号 => 字符串
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringOrNumber(str)
		return nil
	}

	// 否则为数字 => 直接转成字符串
	*s = StringOrNumber(strings.TrimSpace(string(b)))
	return nil
}

// MapToJSON 序列化为 JSON 字符串，失败时返回空串
func MapToJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
