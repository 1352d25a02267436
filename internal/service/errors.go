package service

import "errors"

var (
	// ErrSessionRequired 请求缺少访客会话
	ErrSessionRequired = errors.New("session id is required")
	// ErrCatalogEmpty 菜单来源没有任何条目
	ErrCatalogEmpty = errors.New("catalog source returned no entries")
)
