package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/edwingeng/deque"

	"github.com/ardnew/dragon/level"
)

// FrameKind distinguishes board snapshots from dialogs.
type FrameKind int

// Frame kinds.
const (
	LEVEL FrameKind = iota
	DIALOG
)

func (k FrameKind) String() string {
	switch k {
	case LEVEL:
		return "LEVEL"
	case DIALOG:
		return "DIALOG"
	default:
		return fmt.Sprintf("FrameKind(%d)", int(k))
	}
}

func (k FrameKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *FrameKind) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "LEVEL":
		*k = LEVEL
	case "DIALOG":
		*k = DIALOG
	default:
		return ErrUnknownFrameKind.Wrap(fmt.Errorf("%q", b))
	}

	return nil
}

// Snapshot is a playable character's state in a frame.
type Snapshot struct {
	Position level.Position `json:"position"`
	Attack   int            `json:"attack"`
}

// DragonSnapshot is the dragon's state in a frame. Positions holds every
// candidate cell until one has been chosen.
type DragonSnapshot struct {
	Positions []level.Position `json:"positions"`
	HP        int              `json:"hp"`
}

// Frame is one entry of the render queue.
type Frame struct {
	Kind   FrameKind       `json:"kind"`
	Tiles  [][]level.Tile  `json:"tiles,omitempty"`
	Knight *Snapshot       `json:"knight,omitempty"`
	Mage   *Snapshot       `json:"mage,omitempty"`
	Dragon *DragonSnapshot `json:"dragon,omitempty"`
	Attack *level.Position `json:"attack,omitempty"`
	Probe  *level.Position `json:"probe,omitempty"`
	Dialog string          `json:"dialog,omitempty"`
}

// RenderQueue is a FIFO of frames safe for concurrent use.
type RenderQueue struct {
	mu sync.Mutex
	dq deque.Deque
}

// NewRenderQueue returns an empty queue.
func NewRenderQueue() *RenderQueue {
	return &RenderQueue{dq: deque.NewDeque()}
}

// Push appends f.
func (q *RenderQueue) Push(f Frame) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.dq.PushBack(f)
}

// Pop removes and returns the oldest frame.
func (q *RenderQueue) Pop() (Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.dq.Empty() {
		return Frame{}, false
	}

	f, _ := q.dq.PopFront().(Frame)

	return f, true
}

// Len returns the number of queued frames.
func (q *RenderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.dq.Len()
}

// Drain removes and returns every queued frame, oldest first.
func (q *RenderQueue) Drain() []Frame {
	q.mu.Lock()
	defer q.mu.Unlock()

	frames := make([]Frame, 0, q.dq.Len())
	for !q.dq.Empty() {
		if f, ok := q.dq.PopFront().(Frame); ok {
			frames = append(frames, f)
		}
	}

	return frames
}
