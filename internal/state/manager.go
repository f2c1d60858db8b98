package state

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Validator gates writes to one top-level key. Returning false rejects the
// write: state is unchanged, no history entry, no notification.
type Validator func(value any) bool

// Listener is notified after a committed change under its key or path.
type Listener func(newValue, oldValue any, key string)

// Entry is one committed change in the diagnostic history log.
// OldValue/NewValue are deep clones, never references into live state.
type Entry struct {
	Key       string    `json:"key"`
	OldValue  any       `json:"oldValue"`
	NewValue  any       `json:"newValue"`
	Timestamp time.Time `json:"timestamp"`
}

// historyLimit caps the log; the oldest entry is evicted on overflow.
const historyLimit = 100

type subscription struct {
	id int64
	fn Listener
}

// Manager owns the state tree and is the only way to mutate it.
//
// It is deliberately not a package-level singleton: construct one at
// application start and pass it to consumers. All methods are synchronous and
// single-goroutine; listeners run inline during the write that triggered them.
type Manager struct {
	state      map[string]any
	initial    map[string]any // pristine clone of the construction snapshot
	validators map[string]Validator
	listeners  map[string][]subscription
	nextSubID  int64
	history    []Entry
	logf       func(format string, args ...any)
	now        func() time.Time
}

// Option configures a Manager at construction.
type Option func(*Manager)

// WithLogf redirects diagnostics (validation rejections, listener panics).
// The default writes to stderr.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(m *Manager) { m.logf = logf }
}

// WithValidator registers (or overrides) the validator for one top-level key.
func WithValidator(key string, v Validator) Option {
	return func(m *Manager) { m.validators[key] = v }
}

// WithClock overrides the history timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager builds a manager around a deep clone of initial. The caller's
// snapshot is never mutated and is re-cloned on every Reset. A nil initial
// uses DefaultState().
func NewManager(initial map[string]any, opts ...Option) *Manager {
	if initial == nil {
		initial = DefaultState()
	}
	m := &Manager{
		state:      deepClone(initial).(map[string]any),
		initial:    deepClone(initial).(map[string]any),
		validators: defaultValidators(),
		listeners:  map[string][]subscription{},
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the current value at a top-level key, by reference.
// Callers must not mutate the returned value; use GetState for a safe copy.
func (m *Manager) Get(key string) any {
	return m.state[key]
}

// GetState returns a deep clone of the whole tree for inspection.
func (m *Manager) GetState() map[string]any {
	return deepClone(m.state).(map[string]any)
}

// Set commits value at a top-level key.
//
// Writes that are value-equal to the current value (see valueEqual) are
// no-ops: no validation, no history, no notification. Writes rejected by the
// key's validator are logged and silently dropped; callers that need to know
// must inspect state afterward.
func (m *Manager) Set(key string, value any) {
	oldValue := m.state[key]
	if valueEqual(oldValue, value) {
		return
	}
	if v, ok := m.validators[key]; ok && !v(value) {
		m.logf("state: rejected invalid value for %q: %v", key, value)
		return
	}

	m.state[key] = value
	m.appendHistory(key, oldValue, value)
	m.notify(key, value, oldValue)
}

// GetNested walks a dot-separated path into the tree, returning nil if any
// intermediate is missing or not a map.
func (m *Manager) GetNested(path string) any {
	return getPath(m.state, path)
}

// SetNested commits value at a dot-separated path, creating empty
// intermediate maps for missing segments.
//
// Unlike Set, nested writes bypass top-level validators and skip the
// equality short-circuit: they always commit and always notify listeners
// registered under the full path string. Nested writes are how entity
// collections are replaced wholesale, and a replacement always signals a
// refresh even when the data happens to be unchanged.
func (m *Manager) SetNested(path string, value any) {
	segs := strings.Split(path, ".")
	node := m.state
	for _, seg := range segs[:len(segs)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			// Auto-vivify missing (or non-map) intermediates.
			next = map[string]any{}
			node[seg] = next
		}
		node = next
	}

	leaf := segs[len(segs)-1]
	oldValue := node[leaf]
	node[leaf] = value
	m.appendHistory(path, oldValue, value)
	m.notify(path, value, oldValue)
}

// Subscribe registers a listener under a top-level key or dot path and
// returns its unsubscribe function. Unsubscribing removes exactly this
// registration and is safe to call more than once.
func (m *Manager) Subscribe(keyOrPath string, fn Listener) func() {
	m.nextSubID++
	id := m.nextSubID
	m.listeners[keyOrPath] = append(m.listeners[keyOrPath], subscription{id: id, fn: fn})

	return func() {
		subs := m.listeners[keyOrPath]
		for i, s := range subs {
			if s.id == id {
				m.listeners[keyOrPath] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		// No leaked empty sets.
		if len(m.listeners[keyOrPath]) == 0 {
			delete(m.listeners, keyOrPath)
		}
	}
}

// Reset replaces the tree with a fresh clone of the construction snapshot
// and notifies every subscribed key/path with (initialValue, previousValue),
// as if each had been individually set back. Validators are not re-run and
// no history entries are appended.
func (m *Manager) Reset() {
	oldState := m.state
	m.state = deepClone(m.initial).(map[string]any)

	for keyOrPath := range m.listeners {
		newValue := getPath(m.state, keyOrPath)
		oldValue := getPath(oldState, keyOrPath)
		m.notify(keyOrPath, newValue, oldValue)
	}
}

// History returns a copy of the diagnostic log, oldest first. Entry values
// are re-cloned on the way out, so mutating a returned entry never touches
// the log.
func (m *Manager) History() []Entry {
	out := make([]Entry, len(m.history))
	for i, e := range m.history {
		e.OldValue = deepClone(e.OldValue)
		e.NewValue = deepClone(e.NewValue)
		out[i] = e
	}
	return out
}

// ClearHistory truncates the diagnostic log.
func (m *Manager) ClearHistory() {
	m.history = m.history[:0]
}

func (m *Manager) appendHistory(key string, oldValue, newValue any) {
	m.history = append(m.history, Entry{
		Key:       key,
		OldValue:  deepClone(oldValue),
		NewValue:  deepClone(newValue),
		Timestamp: m.now(),
	})
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

// notify invokes every listener registered under key. Each invocation is
// isolated: a panicking listener is logged and the rest still run. Listeners
// run synchronously, so one that writes back into the manager causes
// re-entrant notification; avoiding cycles is the subscriber's concern.
func (m *Manager) notify(key string, newValue, oldValue any) {
	subs := m.listeners[key]
	if len(subs) == 0 {
		return
	}
	// Iterate a snapshot so re-entrant subscribes don't join the current
	// fan-out, but re-check membership so a re-entrant unsubscribe still
	// suppresses the call.
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)

	for _, s := range snapshot {
		if !m.subscribed(key, s.id) {
			continue
		}
		m.invoke(s, key, newValue, oldValue)
	}
}

func (m *Manager) subscribed(key string, id int64) bool {
	for _, s := range m.listeners[key] {
		if s.id == id {
			return true
		}
	}
	return false
}

func (m *Manager) invoke(s subscription, key string, newValue, oldValue any) {
	defer func() {
		if r := recover(); r != nil {
			m.logf("state: listener for %q panicked: %v", key, r)
		}
	}()
	s.fn(newValue, oldValue, key)
}

// getPath resolves a dot path against an arbitrary tree, nil on any miss.
func getPath(root map[string]any, path string) any {
	segs := strings.Split(path, ".")
	var cur any = root
	for _, seg := range segs {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = node[seg]
		if !ok {
			return nil
		}
	}
	return cur
}
