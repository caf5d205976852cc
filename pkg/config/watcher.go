package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/decker502/survival/pkg/logger"
)

// Watcher 监听配置文件变化并重新加载
//
// 监听文件所在目录而不是文件本身，编辑器以替换方式保存时也能收到事件。
// 合法的新配置通过 Updates() 发布；非法配置只记录日志并被忽略。
// 通道容量为 1，消费者来不及读取时旧配置被新配置替换。
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan *Config
	done    chan struct{}
	wg      sync.WaitGroup
	log     *log.Logger
}

// NewWatcher 开始监听 path
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
		log:     logger.For("ConfigWatcher"),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates 返回新配置的通道，Close 之后通道被关闭
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close 停止监听并等待后台 goroutine 退出
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.updates)

	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", "err", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("ignoring invalid config reload", "path", w.path, "err", err)
		return
	}
	w.log.Info("config reloaded", "path", w.path)

	// 丢弃尚未被消费的旧配置
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	case <-w.done:
	}
}
