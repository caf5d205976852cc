// Package logger 提供全局日志记录器
//
// 日志格式沿用 "[Tag] message" 的约定：每个模块通过 For("Tag") 取得带前缀的子记录器。
// 子记录器在创建时复制根记录器的级别和输出，因此应在 Setup 之后创建。
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options 日志配置
type Options struct {
	Level  string    // debug / info / warn / error，空字符串为 info
	Caller bool      // 是否输出调用位置
	Quiet  bool      // 丢弃所有输出
	Output io.Writer // 为 nil 时输出到 stderr
}

var (
	mu        sync.RWMutex
	root      = newRoot(os.Stderr)
	sessionID = uuid.NewString()
)

func newRoot(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           log.InfoLevel,
	})
}

// Setup 按配置重建根记录器
func Setup(opts Options) error {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = l
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Quiet {
		out = io.Discard
	}

	l := newRoot(out)
	l.SetLevel(level)
	l.SetReportCaller(opts.Caller)

	mu.Lock()
	root = l
	mu.Unlock()
	return nil
}

// SessionID 返回本进程的会话 ID
func SessionID() string {
	return sessionID
}

// Root 返回根记录器
func Root() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// For 返回带 "[tag]" 前缀的子记录器
func For(tag string) *log.Logger {
	return Root().WithPrefix("[" + tag + "]")
}

// Session 返回带会话 ID 字段的子记录器，用于启动和退出等进程级日志
func Session(tag string) *log.Logger {
	return For(tag).With("session", sessionID)
}
