package engine

import (
	"sync"
	"time"
)

// Clock 游戏循环使用的时间源
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock 使用系统单调时钟
type SystemClock struct{}

// Now 返回当前时间
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep 休眠 d
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// ManualClock 手动推进的时钟，用于确定性测试
// Sleep 不阻塞，而是直接把时间向前推进
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock 创建从 start 开始的时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance 把时间向前推进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleep 等同于 Advance
func (c *ManualClock) Sleep(d time.Duration) {
	if d > 0 {
		c.Advance(d)
	}
}
