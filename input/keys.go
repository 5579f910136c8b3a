// Package input tracks held keys and turns them into the per-tick control
// snapshot the player controller consumes.
package input

import "sync"

// Snapshot is the control state sampled at the start of a tick.
type Snapshot struct {
	Left  bool
	Right bool
	Jump  bool
}

// Dir returns -1, 0 or +1. Opposing keys cancel out.
func (s Snapshot) Dir() float64 {
	d := 0.0
	if s.Left {
		d--
	}
	if s.Right {
		d++
	}
	return d
}

var (
	LeftKeys  = []string{"ArrowLeft", "a", "A", "PadLeft"}
	RightKeys = []string{"ArrowRight", "d", "D", "PadRight"}
	JumpKeys  = []string{"ArrowUp", "w", "W", " ", "PadJump"}
)

// KeyState is a key name to pressed map. Key events may arrive from another
// goroutine than the one that samples snapshots.
type KeyState struct {
	mu   sync.Mutex
	keys map[string]bool
}

func NewKeyState() *KeyState {
	return &KeyState{keys: make(map[string]bool)}
}

// Set records the latest state of key. The last write wins.
func (k *KeyState) Set(key string, pressed bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.keys == nil {
		k.keys = make(map[string]bool)
	}
	k.keys[key] = pressed
}

func (k *KeyState) Pressed(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key]
}

func (k *KeyState) anyLocked(keys []string) bool {
	for _, key := range keys {
		if k.keys[key] {
			return true
		}
	}
	return false
}

// Snapshot samples the bindings into a control snapshot.
func (k *KeyState) Snapshot() Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	return Snapshot{
		Left:  k.anyLocked(LeftKeys),
		Right: k.anyLocked(RightKeys),
		Jump:  k.anyLocked(JumpKeys),
	}
}

// Clear releases every key, e.g. when the window loses focus.
func (k *KeyState) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key := range k.keys {
		delete(k.keys, key)
	}
}
