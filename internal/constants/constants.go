package constants

// 购物车存储驱动
const (
	CartStorageMemory   = "memory"
	CartStorageRedis    = "redis"
	CartStorageDatabase = "database"
)

// 菜单来源
const (
	CatalogSourceConfig   = "config"
	CatalogSourceDatabase = "database"
)

// 结账提示文案
const (
	CheckoutMessageEmpty     = "Cart is empty!"
	CheckoutMessageConfirmed = "Order Confirmed! Thank you for ordering."
)

// 结账弹窗标识（页面重定向参数）
const (
	ModalEmpty     = "empty"
	ModalConfirmed = "confirmed"
)

// 订单状态
const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusNotified  = "notified"
	OrderStatusCancelled = "cancelled"
)

// 主题
const (
	ThemeLight      = "light"
	ThemeDark       = "dark"
	ThemeCookieName = "theme"
)

// 会话上下文键
const (
	ContextKeySessionID = "session_id"
	ContextKeyRequestID = "request_id"
)

// 队列与任务
const (
	QueueDefault          = "default"
	QueueCritical         = "critical"
	TaskOrderConfirmed    = "order:confirmed"
	OrderNotifyMaxRetries = 5
)
