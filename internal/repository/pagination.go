package repository

import "gorm.io/gorm"

const maxPageSize = 100

// pageWindow 规范化页码与页大小，返回 limit 与 offset
func pageWindow(page, pageSize int) (int, int) {
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	limit, offset := pageWindow(page, pageSize)
	return query.Limit(limit).Offset(offset)
}
