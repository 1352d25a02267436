// Package checkout 结账确认弹窗的两态流程
package checkout

import "github.com/coffee-bar/internal/constants"

// State 弹窗状态
type State string

const (
	// StateIdle 弹窗关闭
	StateIdle State = "idle"
	// StateConfirmationShown 弹窗展示结账文案
	StateConfirmationShown State = "confirmation_shown"
)

// Result 一次结账的结果
type Result struct {
	Message string
	// ClearCart 为 true 时调用方需要清空购物车
	ClearCart bool
	Modal     string
}

// Flow 结账状态机
type Flow struct {
	state   State
	message string
}

// NewFlow 创建处于 Idle 的流程
func NewFlow() *Flow {
	return &Flow{state: StateIdle}
}

// Resume 从弹窗标识恢复状态，未知标识视为 Idle
func Resume(modal string) *Flow {
	switch modal {
	case constants.ModalEmpty:
		return &Flow{state: StateConfirmationShown, message: constants.CheckoutMessageEmpty}
	case constants.ModalConfirmed:
		return &Flow{state: StateConfirmationShown, message: constants.CheckoutMessageConfirmed}
	default:
		return NewFlow()
	}
}

// Checkout 展示确认弹窗。弹窗已展示时再次结账会覆盖文案
func (f *Flow) Checkout(cartEmpty bool) Result {
	f.state = StateConfirmationShown
	if cartEmpty {
		f.message = constants.CheckoutMessageEmpty
		return Result{Message: f.message, Modal: constants.ModalEmpty}
	}
	f.message = constants.CheckoutMessageConfirmed
	return Result{Message: f.message, ClearCart: true, Modal: constants.ModalConfirmed}
}

// Dismiss 关闭弹窗
func (f *Flow) Dismiss() {
	f.state = StateIdle
	f.message = ""
}

// State 当前状态
func (f *Flow) State() State {
	return f.state
}

// Message 当前弹窗文案，Idle 时为空
func (f *Flow) Message() string {
	return f.message
}

// Visible 弹窗是否展示
func (f *Flow) Visible() bool {
	return f.state == StateConfirmationShown
}
