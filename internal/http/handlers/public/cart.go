package public

import (
	"encoding/json"
	"strings"

	"github.com/coffee-bar/internal/cart"
	handlershared "github.com/coffee-bar/internal/http/handlers/shared"
	"github.com/coffee-bar/internal/http/response"
	"github.com/coffee-bar/internal/view"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求，quantity 可为数字或字符串
type AddCartItemRequest struct {
	Index    *int            `json:"index" binding:"required"`
	Quantity json.RawMessage `json:"quantity"`
}

// AdjustCartItemRequest 调整数量请求
type AdjustCartItemRequest struct {
	Delta int `json:"delta"`
}

// AddCartItemResponse 加购结果
type AddCartItemResponse struct {
	Outcome        cart.AddOutcome `json:"outcome"`
	SuggestedInput int             `json:"suggested_input,omitempty"`
	Cart           view.CartView   `json:"cart"`
	Menu           []view.MenuCard `json:"menu"`
}

// GetMenu 菜单及剩余库存
func (h *Handler) GetMenu(c *gin.Context) {
	snapshot, err := h.CartService.Get(handlershared.RequestContext(c), handlershared.SessionID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view.BuildMenu(h.CartService.Catalog(), snapshot, h.Config.Shop.CurrencySymbol, nil))
}

// GetCart 购物车
func (h *Handler) GetCart(c *gin.Context) {
	snapshot, err := h.CartService.Get(handlershared.RequestContext(c), handlershared.SessionID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, h.cartView(snapshot))
}

// AddCartItem 加购
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "index is required", nil)
		return
	}
	result, snapshot, err := h.CartService.AddRaw(
		handlershared.RequestContext(c),
		handlershared.SessionID(c),
		*req.Index,
		rawQuantity(req.Quantity),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := AddCartItemResponse{
		Outcome: result.Outcome,
		Cart:    h.cartView(snapshot),
		Menu:    view.BuildMenu(h.CartService.Catalog(), snapshot, h.Config.Shop.CurrencySymbol, nil),
	}
	if result.Outcome == cart.AddOutcomeRejected {
		resp.SuggestedInput = result.SuggestedInput
	}
	response.SuccessWithMsg(c, string(result.Outcome), resp)
}

// AdjustCartItem 增减数量
func (h *Handler) AdjustCartItem(c *gin.Context) {
	var req AdjustCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "delta must be an integer", nil)
		return
	}
	snapshot, err := h.CartService.Adjust(handlershared.RequestContext(c), handlershared.SessionID(c), c.Param("name"), req.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, h.cartView(snapshot))
}

// RemoveCartItem 删除行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	snapshot, err := h.CartService.Remove(handlershared.RequestContext(c), handlershared.SessionID(c), c.Param("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, h.cartView(snapshot))
}

// EmptyCart 清空购物车
func (h *Handler) EmptyCart(c *gin.Context) {
	snapshot, err := h.CartService.Empty(handlershared.RequestContext(c), handlershared.SessionID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, h.cartView(snapshot))
}

func (h *Handler) cartView(snapshot cart.Cart) view.CartView {
	return view.BuildCart(snapshot, h.Config.Shop.CurrencySymbol)
}

// rawQuantity 数字原样保留，字符串取其内容，交由 ParseQuantity 严格校验
func rawQuantity(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return trimmed
}
