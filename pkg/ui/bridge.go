package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/glidetype/pkg/suggest"
)

// DefaultMessageBuffer is the worker-to-UI channel depth. Suggestion
// updates supersede each other, so a shallow buffer with drop-oldest
// semantics is enough.
const DefaultMessageBuffer = 8

// Bridge carries messages from coordinator worker callbacks into the
// Bubble Tea program. Callbacks run on the coordinator's worker
// goroutine; the model drains the channel with WaitForMsgCmd.
type Bridge struct {
	msgCh     chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewBridge creates a bridge with the given channel buffer. A
// non-positive buffer uses DefaultMessageBuffer.
func NewBridge(buffer int) *Bridge {
	if buffer <= 0 {
		buffer = DefaultMessageBuffer
	}
	return &Bridge{
		msgCh: make(chan tea.Msg, buffer),
		done:  make(chan struct{}),
	}
}

// Send queues msg for the UI. When the channel is full an older
// message is dropped so the newest wins.
func (b *Bridge) Send(msg tea.Msg) {
	if b == nil || msg == nil {
		return
	}
	for {
		select {
		case b.msgCh <- msg:
			return
		case <-b.done:
			return
		default:
		}

		select {
		case <-b.msgCh:
		default:
		}
	}
}

// Display adapts Send to the coordinator's display callback signature.
func (b *Bridge) Display(words suggest.List, dismissPreview bool) {
	b.Send(DisplayMsg{Words: words, DismissPreview: dismissPreview})
}

// Finalize adapts the coordinator's finalize callback signature. Unlike
// display updates, a commit must not be lost, so this blocks until the
// UI drains a slot or the bridge is closed.
func (b *Bridge) Finalize(words suggest.List) {
	if b == nil {
		return
	}
	select {
	case b.msgCh <- FinalizeMsg{Words: words}:
	case <-b.done:
	}
}

// Messages returns the message channel. It is owned by the bridge and
// never closed; use Done to stop waiting.
func (b *Bridge) Messages() <-chan tea.Msg {
	if b == nil {
		return nil
	}
	return b.msgCh
}

// Done is closed when the bridge is shut down.
func (b *Bridge) Done() <-chan struct{} {
	if b == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return b.done
}

// Close releases waiters. Idempotent.
func (b *Bridge) Close() {
	if b == nil {
		return
	}
	b.closeOnce.Do(func() { close(b.done) })
}

// WaitForMsgCmd waits for the next bridge message.
func WaitForMsgCmd(b *Bridge) tea.Cmd {
	return func() tea.Msg {
		if b == nil {
			return nil
		}
		select {
		case msg := <-b.Messages():
			return msg
		case <-b.Done():
			return nil
		}
	}
}
