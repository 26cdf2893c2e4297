// Package gate holds the release checklist and the lock it controls.
//
// The ship stage unlocks only when all ten verification items are checked.
// Unlock is recomputed on every call, so unchecking any item re-locks it.
package gate

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/matheuskafuri/jobtrack/internal/store"
)

// Total is the number of checklist items.
const Total = 10

var (
	ErrUnknownItem    = errors.New("unknown checklist item")
	ErrNoPendingReset = errors.New("no reset requested")
)

// Item is one verification step.
type Item struct {
	ID    int
	Label string
	Tip   string
}

// Items is the fixed checklist, ids 1 through Total.
var Items = [Total]Item{
	{1, "Preferences persist after refresh", "Open preferences, save, restart, check the values remain."},
	{2, "Match score calculates correctly", "Verify scores change when you update preferences."},
	{3, "\"Show only matches\" toggle works", "Enable the toggle and check low-score jobs disappear."},
	{4, "Save job persists after refresh", "Save a job, restart, check the Saved view."},
	{5, "Apply opens in new tab", "Open a posting's apply link and verify the browser opens it."},
	{6, "Status update persists after refresh", "Change a status to Applied, restart, verify it remains."},
	{7, "Status filter works correctly", "Filter by Applied and ensure only applied jobs show."},
	{8, "Digest generates top 10 by score", "Open the digest and verify job count and relevance."},
	{9, "Digest persists for the day", "Restart and check the digest shows the same jobs."},
	{10, "No console errors on main pages", "Navigate through every view and check the log file stays clean."},
}

// ItemByID returns the checklist item with the given id.
func ItemByID(id int) (Item, bool) {
	if id < 1 || id > Total {
		return Item{}, false
	}
	return Items[id-1], true
}

// Checklist is the set of completed item ids as a bitset; bit i-1 is item i.
type Checklist uint16

const allItems Checklist = 1<<Total - 1

func (c Checklist) Has(id int) bool {
	return id >= 1 && id <= Total && c&(1<<(id-1)) != 0
}

// Toggle flips item id. Ids outside 1..Total are ignored.
func (c Checklist) Toggle(id int) Checklist {
	if id < 1 || id > Total {
		return c
	}
	return c ^ 1<<(id-1)
}

func (c Checklist) Count() int {
	return bits.OnesCount16(uint16(c & allItems))
}

// IDs lists completed items in ascending order.
func (c Checklist) IDs() []int {
	ids := make([]int, 0, c.Count())
	for id := 1; id <= Total; id++ {
		if c.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func fromIDs(ids []int) Checklist {
	var c Checklist
	for _, id := range ids {
		if id >= 1 && id <= Total {
			c |= 1 << (id - 1)
		}
	}
	return c
}

// Gate owns the persisted checklist. It is not safe for concurrent use.
type Gate struct {
	kv           store.KV
	state        Checklist
	resetPending bool
	subscribers  map[int]func(Checklist)
	nextSub      int
}

// New loads the persisted checklist, ignoring ids outside 1..Total.
func New(kv store.KV) *Gate {
	g := &Gate{kv: kv, subscribers: map[int]func(Checklist){}}
	var ids []int
	if store.LoadJSON(kv, store.KeyChecklist, &ids) {
		g.state = fromIDs(ids)
	}
	return g
}

// State returns the current checklist.
func (g *Gate) State() Checklist {
	return g.state
}

// IsUnlocked reports whether every item is checked.
func (g *Gate) IsUnlocked() bool {
	return g.state.Count() >= Total
}

// Progress returns completed and total item counts.
func (g *Gate) Progress() (done, total int) {
	return g.state.Count(), Total
}

// Toggle flips one item and disarms any pending reset.
func (g *Gate) Toggle(id int) error {
	if _, ok := ItemByID(id); !ok {
		return fmt.Errorf("%w: %d (valid: 1-%d)", ErrUnknownItem, id, Total)
	}
	g.resetPending = false
	return g.commit(g.state.Toggle(id))
}

// RequestReset arms a reset. Nothing changes until ConfirmReset.
func (g *Gate) RequestReset() {
	g.resetPending = true
}

// ResetPending reports whether a reset is armed.
func (g *Gate) ResetPending() bool {
	return g.resetPending
}

// CancelReset disarms a pending reset.
func (g *Gate) CancelReset() {
	g.resetPending = false
}

// ConfirmReset clears the checklist if a reset was requested.
func (g *Gate) ConfirmReset() error {
	if !g.resetPending {
		return ErrNoPendingReset
	}
	g.resetPending = false
	return g.commit(0)
}

// Subscribe registers fn to receive the checklist after every change. The
// returned function removes the subscription.
func (g *Gate) Subscribe(fn func(Checklist)) (unsubscribe func()) {
	id := g.nextSub
	g.nextSub++
	g.subscribers[id] = fn
	return func() { delete(g.subscribers, id) }
}

func (g *Gate) commit(next Checklist) error {
	if err := store.SaveJSON(g.kv, store.KeyChecklist, next.IDs()); err != nil {
		return fmt.Errorf("persisting checklist: %w", err)
	}
	g.state = next
	for _, fn := range g.subscribers {
		fn(next)
	}
	return nil
}
