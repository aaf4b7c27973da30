package orders

import (
	"fmt"
	"regexp"
)

var (
	tenDigitRe   = regexp.MustCompile(`^(\d{3})(\d{3})(\d{4})$`)
	hyphenatedRe = regexp.MustCompile(`^(\d{3})-(\d{3})-(\d{4})$`)
	countryRe    = regexp.MustCompile(`^'\+1\s`)
)

// FormatPhoneNumber 把电话号码统一为 (AAA) BBB-CCCC 显示格式
// 识别纯 10 位数字和 AAA-BBB-CCCC 两种写法，可带 '+1 前缀；
// 其余格式原样返回，不视为错误
func FormatPhoneNumber(number string) string {
	if m := tenDigitRe.FindStringSubmatch(number); m != nil {
		return fmt.Sprintf("(%s) %s-%s", m[1], m[2], m[3])
	}
	number = countryRe.ReplaceAllString(number, "")
	if m := hyphenatedRe.FindStringSubmatch(number); m != nil {
		return fmt.Sprintf("(%s) %s-%s", m[1], m[2], m[3])
	}
	return number
}
