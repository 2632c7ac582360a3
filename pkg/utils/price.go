package utils

import (
	"strconv"

	"github.com/spf13/cast"
)

// ParseCurrency 解析带货币格式的金额字符串（"Rp8.500" / "8,500" / "8500" -> 8500）
// 剥离所有非数字字符后按整数解析；没有数字（如 "N/A"、空串）返回 nil
// 注意：千位分隔符一并剥离，"8.500" 按印尼习惯视为 8500 而不是 8.5
func ParseCurrency(raw string) *int64 {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) == 0 {
		return nil
	}

	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseAmount 解析表单里的金额字段（字符串或数字均可）
// 空值返回 nil；解析失败按现有行为降级为 nil，不报错
func ParseAmount(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	return &f
}

// ParseBoolFlag 解析 is_active 这类开关字段
// 布尔值或字符串 "1" / "true" 为 true，其余为 false
func ParseBoolFlag(raw string) bool {
	if raw == "1" {
		return true
	}
	return cast.ToBool(raw)
}
