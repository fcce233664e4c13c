// Package safe_close coordinates graceful shutdown of multiple
// long-running goroutines behind a single close signal.
// safe_close 包用于协调多个常驻协程的优雅关闭
package safe_close

import (
	"sync"
)

type SafeClose struct {
	mu          sync.Mutex
	closed      bool
	closeSignal chan struct{}
	err         error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done exactly once
// when it has fully stopped, and should begin shutting down once
// closeSignal is closed.
// Attach 启动一个受管协程，f 停止后必须调用 done
func (sc *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	sc.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(sc.wg.Done)
	}
	go f(done, sc.closeSignal)
}

// SendCloseSignal 发出关闭信号，仅首个错误会被保留
func (sc *SafeClose) SendCloseSignal(err error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.closed {
		return
	}
	sc.closed = true
	sc.err = err
	close(sc.closeSignal)
}

// CloseSignal returns the channel closed by SendCloseSignal.
func (sc *SafeClose) CloseSignal() <-chan struct{} {
	return sc.closeSignal
}

// WaitClosed blocks until the close signal fires and every attached
// goroutine has called done, then returns the first close error.
// WaitClosed 等待所有受管协程退出并返回首个关闭错误
func (sc *SafeClose) WaitClosed() error {
	<-sc.closeSignal
	sc.wg.Wait()
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.err
}
