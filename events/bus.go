package events

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DataChanged 用户的收支或提醒数据发生变化
const DataChanged = "data.changed"

// Event 领域事件
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     uint      `json:"user_id"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewDataChanged 构造 data.changed 事件
func NewDataChanged(userID uint, entity, action string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       DataChanged,
		UserID:     userID,
		Entity:     entity,
		Action:     action,
		OccurredAt: time.Now(),
	}
}

type Handler func(ctx context.Context, event Event) error

// Bus 进程内事件总线，Publish 在调用方 goroutine 中依次执行订阅者
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]map[uint64]Handler
	nextID   uint64
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]map[uint64]Handler)}
}

// Subscribe 注册订阅者，返回取消订阅函数（可重复调用）
func (b *Bus) Subscribe(eventType string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[uint64]Handler)
	}
	b.handlers[eventType][id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers[eventType], id)
		})
	}
}

// SubscriberCount 返回某类事件当前的订阅者数量
func (b *Bus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish 同步分发事件；订阅者的错误和 panic 只记录日志，不影响发布方
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.Type]))
	for _, h := range b.handlers[event.Type] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, h, event)
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("事件处理 panic: type=%s id=%s: %v", event.Type, event.ID, r)
		}
	}()
	if err := h(ctx, event); err != nil {
		log.Printf("事件处理失败: type=%s id=%s: %v", event.Type, event.ID, err)
	}
}
