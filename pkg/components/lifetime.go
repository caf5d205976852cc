package components

// Lifetime 按逻辑 tick 计数的生命周期
// 用于自动清理存在时间超过上限的实体(如子弹)
type Lifetime struct {
	MaxTicks int  // 最大生命周期(tick)
	Ticks    int  // 已存在的 tick 数
	Expired  bool // 是否已过期
}

// NewLifetime 创建最多存在 maxTicks 个 tick 的生命周期
func NewLifetime(maxTicks int) *Lifetime {
	return &Lifetime{MaxTicks: maxTicks}
}

// Tick 推进一个 tick，返回是否已过期
// 过期后保持过期状态
func (l *Lifetime) Tick() bool {
	if l.Expired {
		return true
	}
	l.Ticks++
	if l.Ticks >= l.MaxTicks {
		l.Expired = true
	}
	return l.Expired
}

// Remaining 剩余的 tick 数
func (l *Lifetime) Remaining() int {
	if l.Expired {
		return 0
	}
	return l.MaxTicks - l.Ticks
}
