package utils

import (
	"regexp"
)

var phonePattern = regexp.MustCompile(`^\+?\d{10,13}$`)

// ValidatePhone 校验联系电话。允许可选的 + 前缀和 10~13 位数字。
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
