package util

import "errors"

var (
	ErrUserNotFound = errors.New("用户不存在")
	ErrInvalidToken = errors.New("invalid token")
)
