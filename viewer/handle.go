package viewer

import "sync"

// Handle is a transient, in-memory reference to document bytes for one
// viewing session. It is never persisted and never serialized to a
// shareable URL; closing it releases the bytes, and the content cannot be
// reopened without going back through the document gate.
type Handle struct {
	mu        sync.Mutex
	contentID string
	data      []byte
	closed    bool

	external    bool
	externalURL string
}

func newHandle(contentID string, data []byte) *Handle {
	return &Handle{contentID: contentID, data: data}
}

func newExternalHandle(contentID, url string) *Handle {
	return &Handle{contentID: contentID, external: true, externalURL: url}
}

// ContentID returns the content this handle was opened for.
func (h *Handle) ContentID() string {
	return h.contentID
}

// External reports whether the content is hosted on a third-party platform
// the gate cannot secure. External handles carry no bytes; render the
// ExternalURL in a restricted embed instead of the secure surface.
func (h *Handle) External() bool {
	return h.external
}

// ExternalURL returns the fallback URL for external content.
func (h *Handle) ExternalURL() string {
	return h.externalURL
}

// Bytes returns the document bytes, or an error once the handle is closed.
func (h *Handle) Bytes() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHandleClosed
	}
	return h.data, nil
}

// Len returns the byte length, zero once closed.
func (h *Handle) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0
	}
	return len(h.data)
}

// Close releases the bytes. Safe to call more than once.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.data = nil
}
