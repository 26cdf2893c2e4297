// Package notify carries short-lived user-facing messages from the workspace
// to whichever front end is running.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// MaxTTL bounds how long a notification stays visible.
const MaxTTL = 3 * time.Second

// Notification is one transient message.
type Notification struct {
	ID        uuid.UUID
	Message   string
	CreatedAt time.Time
}

// Notifier receives messages as state changes.
type Notifier interface {
	Notify(msg string)
}

// Queue buffers notifications until the front end drains them.
type Queue struct {
	pending []Notification
}

func (q *Queue) Notify(msg string) {
	n := Notification{ID: uuid.New(), Message: msg, CreatedAt: time.Now()}
	slog.Debug("notification", "id", n.ID, "message", msg)
	q.pending = append(q.pending, n)
}

// Drain returns the buffered notifications and empties the queue.
func (q *Queue) Drain() []Notification {
	out := q.pending
	q.pending = nil
	return out
}

// Writer prints each message on its own line.
type Writer struct {
	W io.Writer
}

func (w Writer) Notify(msg string) {
	fmt.Fprintln(w.W, msg)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Notify(string) {}

// ClampTTL keeps d within (0, MaxTTL].
func ClampTTL(d time.Duration) time.Duration {
	if d <= 0 || d > MaxTTL {
		return MaxTTL
	}
	return d
}
