package public

import (
	"strconv"

	handlershared "github.com/coffee-bar/internal/http/handlers/shared"
	"github.com/coffee-bar/internal/http/response"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/view"

	"github.com/gin-gonic/gin"
)

// CheckoutResponse 结账结果
type CheckoutResponse struct {
	Message string        `json:"message"`
	Modal   string        `json:"modal"`
	Order   *models.Order `json:"order,omitempty"`
	Cart    view.CartView `json:"cart"`
}

// Checkout 结账
func (h *Handler) Checkout(c *gin.Context) {
	out, err := h.CheckoutService.Checkout(handlershared.RequestContext(c), handlershared.SessionID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, out.Message, CheckoutResponse{
		Message: out.Message,
		Modal:   out.Modal,
		Order:   out.Order,
		Cart:    h.cartView(out.Cart),
	})
}

// DismissCheckout 关闭确认弹窗
func (h *Handler) DismissCheckout(c *gin.Context) {
	response.Success(c, gin.H{"state": h.CheckoutService.Dismiss()})
}

// ListOrders 当前会话的订单
func (h *Handler) ListOrders(c *gin.Context) {
	if h.OrderService == nil {
		response.Success(c, []models.Order{})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	orders, err := h.OrderService.ListBySession(handlershared.RequestContext(c), handlershared.SessionID(c), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, orders)
}
