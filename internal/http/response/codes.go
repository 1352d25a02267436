package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeNotFound        = 404
	CodeConflict        = 409 // 持久化的购物车数据损坏
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
