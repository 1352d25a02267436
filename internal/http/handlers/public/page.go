package public

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/coffee-bar/internal/cart"
	"github.com/coffee-bar/internal/checkout"
	"github.com/coffee-bar/internal/constants"
	handlershared "github.com/coffee-bar/internal/http/handlers/shared"
	"github.com/coffee-bar/internal/view"

	"github.com/gin-gonic/gin"
)

const themeCookieMaxAge = 365 * 24 * 3600

// Index 首页：菜单、购物车、弹窗
func (h *Handler) Index(c *gin.Context) {
	snapshot, err := h.CartService.Get(handlershared.RequestContext(c), handlershared.SessionID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	page := view.BuildPage(h.CartService.Catalog(), snapshot, view.Options{
		Title:    h.Config.Shop.Title,
		Currency: h.Config.Shop.CurrencySymbol,
		Theme:    currentTheme(c),
		Hint:     inputHint(c),
		Flow:     checkout.Resume(c.Query("modal")),
	})
	c.HTML(http.StatusOK, "index.html", page)
}

// AddFromForm 表单加购；超出库存时把建议值带回首页
func (h *Handler) AddFromForm(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		redirectHome(c, nil)
		return
	}
	result, _, err := h.CartService.AddRaw(handlershared.RequestContext(c), handlershared.SessionID(c), index, c.PostForm("qty"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if result.Outcome == cart.AddOutcomeRejected {
		redirectHome(c, url.Values{
			"input": {strconv.Itoa(index)},
			"value": {strconv.Itoa(result.SuggestedInput)},
		})
		return
	}
	redirectHome(c, nil)
}

// Increment 数量 +1
func (h *Handler) Increment(c *gin.Context) {
	h.adjustFromForm(c, 1)
}

// Decrement 数量 -1
func (h *Handler) Decrement(c *gin.Context) {
	h.adjustFromForm(c, -1)
}

func (h *Handler) adjustFromForm(c *gin.Context, delta int) {
	if _, err := h.CartService.Adjust(handlershared.RequestContext(c), handlershared.SessionID(c), c.Param("name"), delta); err != nil {
		h.renderError(c, err)
		return
	}
	redirectHome(c, nil)
}

// RemoveFromForm 删除行
func (h *Handler) RemoveFromForm(c *gin.Context) {
	if _, err := h.CartService.Remove(handlershared.RequestContext(c), handlershared.SessionID(c), c.Param("name")); err != nil {
		h.renderError(c, err)
		return
	}
	redirectHome(c, nil)
}

// EmptyFromForm 清空购物车
func (h *Handler) EmptyFromForm(c *gin.Context) {
	if _, err := h.CartService.Empty(handlershared.RequestContext(c), handlershared.SessionID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	redirectHome(c, nil)
}

// CheckoutFromForm 结账后带弹窗标识回到首页
func (h *Handler) CheckoutFromForm(c *gin.Context) {
	out, err := h.CheckoutService.Checkout(handlershared.RequestContext(c), handlershared.SessionID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	redirectHome(c, url.Values{"modal": {out.Modal}})
}

// CloseModal 关闭弹窗
func (h *Handler) CloseModal(c *gin.Context) {
	h.CheckoutService.Dismiss()
	redirectHome(c, nil)
}

// ToggleTheme 切换明暗主题，仅影响展示
func (h *Handler) ToggleTheme(c *gin.Context) {
	next := constants.ThemeDark
	if currentTheme(c) == constants.ThemeDark {
		next = constants.ThemeLight
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.ThemeCookieName, next, themeCookieMaxAge, "/", "", false, false)
	redirectHome(c, nil)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	code, msg := errorStatus(err)
	handlershared.RequestLog(c).Errorw("page_error", "code", code, "error", err)
	status := http.StatusInternalServerError
	if code < http.StatusInternalServerError {
		status = code
	}
	c.HTML(status, "error.html", gin.H{
		"Title":   h.Config.Shop.Title,
		"Message": msg,
	})
}

func currentTheme(c *gin.Context) string {
	theme, err := c.Cookie(constants.ThemeCookieName)
	if err != nil || theme != constants.ThemeDark {
		return constants.ThemeLight
	}
	return theme
}

func inputHint(c *gin.Context) *view.InputHint {
	index, err := strconv.Atoi(c.Query("input"))
	if err != nil {
		return nil
	}
	value, err := strconv.Atoi(c.Query("value"))
	if err != nil || value < 1 {
		return nil
	}
	return &view.InputHint{Index: index, Value: value}
}

func redirectHome(c *gin.Context, query url.Values) {
	target := "/"
	if len(query) > 0 {
		target = fmt.Sprintf("/?%s", query.Encode())
	}
	c.Redirect(http.StatusSeeOther, target)
}
