package service

import "errors"

// 服务层统一错误，controller 按此映射 HTTP 状态码
var (
	ErrNotFound           = errors.New("record not found")
	ErrNameRequired       = errors.New("name is required")
	ErrTitleRequired      = errors.New("title is required")
	ErrDuplicateSlug      = errors.New("slug already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTaken         = errors.New("email already in use")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
)
