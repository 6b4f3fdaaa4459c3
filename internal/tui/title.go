package tui

import "sync"

// TitleBuffer collects window title changes until the next update flushes them
type TitleBuffer struct {
	mu      sync.Mutex
	pending *string
}

// Set queues title
func (b *TitleBuffer) Set(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = &title
}

// Take returns and clears the queued title
func (b *TitleBuffer) Take() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return "", false
	}
	title := *b.pending
	b.pending = nil
	return title, true
}
