package sim

// HookPos 钩子调用位置
type HookPos int

// 钩子调用位置
const (
	HookPosAfterSolve HookPos = iota // 求解完成、看门狗检查之前
	HookPosAfterTick                 // 时间步结束
	HookPosTrigger                   // 看门狗触发，Item 为触发的看门狗
)

// HookCtx 钩子调用上下文
type HookCtx struct {
	Domain *Simulator // 调用钩子的仿真器
	Pos    HookPos    // 调用位置
	Item   any        // 与调用位置相关的对象
}

// Hook 挂载到仿真器上的回调
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc 函数形式的钩子
type HookFunc func(ctx HookCtx)

// Func 调用函数
func (f HookFunc) Func(ctx HookCtx) { f(ctx) }

// hookable 钩子列表
type hookable struct {
	hooks []Hook
}

// AcceptHook 注册钩子
func (h *hookable) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// Hooks 已注册的钩子
func (h *hookable) Hooks() []Hook { return h.hooks }

// InvokeHook 调用所有钩子
func (h *hookable) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
