package combat

import "sync"

// Message is a renderable event. The core never formats text; Key names the
// event and Args carries the values a renderer needs.
type Message struct {
	Key    string         `json:"key"`
	Actor  string         `json:"actor,omitempty"`
	Target string         `json:"target,omitempty"`
	Args   map[string]any `json:"args,omitempty"`
}

// Notice addresses a Message to one combatant, or to everyone in the session
// when To is empty.
type Notice struct {
	Session string  `json:"session"`
	To      string  `json:"to,omitempty"`
	Message Message `json:"message"`
}

// Sink receives the notices of a session. Notify is called with the session
// lock held and must not call back into the session.
type Sink interface {
	Notify(n Notice)
}

// NopSink discards every notice.
type NopSink struct{}

func (NopSink) Notify(Notice) {}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notice)

func (f SinkFunc) Notify(n Notice) { f(n) }

// RecordingSink keeps every notice it receives.
type RecordingSink struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *RecordingSink) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the received notices.
func (r *RecordingSink) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Keys returns the message keys received so far, in order.
func (r *RecordingSink) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.notices))
	for i, n := range r.notices {
		keys[i] = n.Message.Key
	}
	return keys
}

// Reset forgets the received notices.
func (r *RecordingSink) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
