package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/automate-backend/internal/realtime"
)

// memoryBus delivers messages to forwarders in the same process. It is used
// when no redis address is configured.
type memoryBus struct {
	mu       sync.RWMutex
	handlers map[int]func(realtime.SSEMessage)
	nextID   int
	closed   bool
}

func NewMemoryBus() Bus {
	return &memoryBus{handlers: map[int]func(realtime.SSEMessage){}}
}

func (b *memoryBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("memory bus closed")
	}
	for _, h := range b.handlers {
		h(msg)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("memory bus closed")
	}
	id := b.nextID
	b.nextID++
	b.handlers[id] = onMsg
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = map[int]func(realtime.SSEMessage){}
	return nil
}
