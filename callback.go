package painter

// DataCallback observes every header a packer writes.
//
// A callback is attached to at most one packer at a time. Embed a
// *CallbackHandle to implement the attachment bookkeeping:
//
//	type recorder struct {
//		*painter.CallbackHandle
//		headers []painter.Header
//	}
//
//	func (r *recorder) HeaderAdded(d *painter.DrawCommand, h *painter.Header, mapped []painter.GenericData) {
//		r.headers = append(r.headers, *h)
//	}
type DataCallback interface {
	// HeaderAdded is called after a header is written. mapped is the
	// header's words in the command store.
	HeaderAdded(draw *DrawCommand, header *Header, mapped []GenericData)

	handle() *CallbackHandle
}

// CallbackHandle records which packer a callback is attached to.
type CallbackHandle struct {
	owner *Packer
}

// NewCallbackHandle creates a detached handle.
func NewCallbackHandle() *CallbackHandle {
	return &CallbackHandle{}
}

// Attached reports whether the callback is attached to a packer.
func (h *CallbackHandle) Attached() bool { return h.owner != nil }

func (h *CallbackHandle) handle() *CallbackHandle { return h }

// CallbackFunc adapts a function to DataCallback.
type CallbackFunc struct {
	*CallbackHandle
	Fn func(draw *DrawCommand, header *Header, mapped []GenericData)
}

// NewCallbackFunc wraps fn in a detached callback.
func NewCallbackFunc(fn func(draw *DrawCommand, header *Header, mapped []GenericData)) *CallbackFunc {
	return &CallbackFunc{CallbackHandle: NewCallbackHandle(), Fn: fn}
}

// HeaderAdded calls Fn.
func (c *CallbackFunc) HeaderAdded(draw *DrawCommand, header *Header, mapped []GenericData) {
	c.Fn(draw, header, mapped)
}
