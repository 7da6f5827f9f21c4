// Package lastwins отменяет предыдущее вычисление, когда по тому же ключу
// приходит новый запрос. Побеждает последний запрос.
package lastwins

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded причина отмены контекста вытесненного вычисления
var ErrSuperseded = errors.New("lastwins: superseded by a newer request")

type entry struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

// Guard хранит последнее вычисление для каждого ключа
type Guard struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]entry
}

// New создает Guard
func New() *Guard {
	return &Guard{entries: make(map[string]entry)}
}

// Acquire регистрирует новое вычисление по ключу и отменяет предыдущее.
// Возвращённый release нужно вызвать по завершении вычисления.
// Пустой ключ не участвует в вытеснении.
func (g *Guard) Acquire(ctx context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)
	if key == "" {
		return ctx, func() { cancel(nil) }
	}

	g.mu.Lock()
	g.seq++
	seq := g.seq
	if prev, ok := g.entries[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	g.entries[key] = entry{seq: seq, cancel: cancel}
	g.mu.Unlock()

	release := func() {
		g.mu.Lock()
		if cur, ok := g.entries[key]; ok && cur.seq == seq {
			delete(g.entries, key)
		}
		g.mu.Unlock()
		cancel(nil)
	}

	return ctx, release
}

// Superseded true, если контекст отменён более новым запросом
func Superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), ErrSuperseded)
}

// Len количество активных вычислений
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
