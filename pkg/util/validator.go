package util

import (
	"regexp"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	urlPattern      = regexp.MustCompile(`^https?://[^\s]+$`)
)

// IsValidEmail verifies if the email format is correct
// IsValidEmail 验证邮箱格式是否正确
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidUsername verifies if the username format is correct
// Username format: letters, numbers, underscores, length 3-20
// IsValidUsername 验证用户名格式是否正确，字母、数字、下划线，长度3-20
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidURL verifies if the link URL looks like an http(s) address
// IsValidURL 验证链接 URL 是否为 http(s) 地址
func IsValidURL(url string) bool {
	return urlPattern.MatchString(url)
}
