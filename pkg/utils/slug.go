package utils

import (
	"strings"
	"unicode"
)

// Slugify 将显示名称转为 URL 安全的 slug
// 规则：全部小写，连续的非字母数字字符折叠成单个连字符，首尾不留连字符
// 相同输入必须产生相同输出（导入按 slug 匹配依赖这一点）
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // 抑制开头的连字符
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
