package gesture

import (
	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/trace"
)

// noop accepts every call and performs no work. It stands in for the real
// coordinator before initialization completes and after Destroy, so events
// arriving at the wrong time land somewhere safe.
type noop struct{}

// NewNoop returns the inert Coordinator.
func NewNoop() Coordinator { return noop{} }

func (noop) StartBatchInput()                  {}
func (noop) UpdateBatchInput(trace.Trace, int) {}
func (noop) CancelBatchInput()                 {}
func (noop) EndBatchInput(trace.Trace, int)    {}
func (noop) Destroy()                          {}

// GetSuggestedWords never invokes its callback.
func (noop) GetSuggestedWords(int, int, suggest.Callback) {}
