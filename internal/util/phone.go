package util

import "strings"

// NormalizePhone 将任意格式的手机号规范为可比较的 E.164 形式。
// 只做等值比较用的规范化，不校验号码是否真实可拨。
// 规则：去掉所有非数字字符；恰好10位按北美号码补国家码1；
// 其余情况认为调用方已带国家码，原样加 "+" 前缀。
// 幂等：对已规范化的输入再调用结果不变。
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", ErrInvalidPhone
	}
	if len(digits) == 10 {
		return "+1" + digits, nil
	}
	return "+" + digits, nil
}

// NormalizePhones 批量规范化并去重，非法条目跳过不报错
func NormalizePhones(raws []string) []string {
	seen := make(map[string]bool, len(raws))
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		phone, err := NormalizePhone(raw)
		if err != nil {
			continue
		}
		if seen[phone] {
			continue
		}
		seen[phone] = true
		out = append(out, phone)
	}
	return out
}
