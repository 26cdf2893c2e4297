// Package workspace wires the posting catalog, the user's persisted state and
// the ranking engine into the single view that both front ends render.
package workspace

import (
	"fmt"
	"time"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/digest"
	"github.com/matheuskafuri/jobtrack/internal/filter"
	"github.com/matheuskafuri/jobtrack/internal/gate"
	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/notes"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/prefs"
	"github.com/matheuskafuri/jobtrack/internal/proof"
	"github.com/matheuskafuri/jobtrack/internal/rank"
	"github.com/matheuskafuri/jobtrack/internal/saved"
	"github.com/matheuskafuri/jobtrack/internal/status"
	"github.com/matheuskafuri/jobtrack/internal/store"
)

// Options configure a workspace.
type Options struct {
	CatalogSize int
	DigestSize  int
	Scoring     match.Options
	Notifier    notify.Notifier
}

// Workspace is one user's session state. It is not safe for concurrent use.
type Workspace struct {
	Catalog *catalog.Static
	Status  *status.Tracker
	Saved   *saved.Set
	Notes   *notes.Book
	Gate    *gate.Gate
	Digests *digest.Store
	Proof   *proof.Store

	prefs    *prefs.Store
	current  *prefs.Preferences
	scorer   match.Scorer
	notifier notify.Notifier
}

// New loads every persisted component from kv.
func New(kv store.KV, opts Options) *Workspace {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard{}
	}
	cat := catalog.Default(opts.CatalogSize)
	scorer := match.Scorer{Options: opts.Scoring}
	w := &Workspace{
		Catalog:  cat,
		Status:   status.NewTracker(kv, opts.Notifier, cat),
		Saved:    saved.New(kv, opts.Notifier),
		Notes:    notes.New(kv),
		Gate:     gate.New(kv),
		Digests:  digest.NewStore(kv, scorer, opts.DigestSize),
		Proof:    proof.NewStore(kv),
		prefs:    prefs.NewStore(kv),
		scorer:   scorer,
		notifier: opts.Notifier,
	}
	w.current = w.prefs.Load()
	return w
}

// Preferences returns the saved preferences, nil when none are saved.
func (w *Workspace) Preferences() *prefs.Preferences {
	return w.current
}

// HasPreferences reports whether the user has saved preferences.
func (w *Workspace) HasPreferences() bool {
	return w.current != nil
}

// SavePreferences replaces the stored preferences. Scores follow on the next
// View call.
func (w *Workspace) SavePreferences(p prefs.Preferences) error {
	if err := w.prefs.Save(p); err != nil {
		return err
	}
	w.current = w.prefs.Load()
	w.notifier.Notify("Preferences saved")
	return nil
}

// ClearPreferences removes the stored preferences.
func (w *Workspace) ClearPreferences() error {
	if err := w.prefs.Clear(); err != nil {
		return fmt.Errorf("clearing preferences: %w", err)
	}
	w.current = nil
	w.notifier.Notify("Preferences cleared")
	return nil
}

// Query is the dashboard state that shapes a View.
type Query struct {
	Filter      filter.State
	MatchesOnly bool
	Sort        rank.Strategy
}

// Scored returns every posting scored against the current preferences, in
// catalog order.
func (w *Workspace) Scored() []match.Scored {
	return w.scorer.ScoreAll(w.Catalog.All(), w.current)
}

// View scores, filters and sorts the catalog.
func (w *Workspace) View(q Query) []match.Scored {
	filtered := filter.Apply(w.Scored(), q.Filter, w.Status, q.MatchesOnly, w.current)
	return rank.Sort(filtered, q.Sort)
}

// Trace reports how many postings survive each filter stage for q.
func (w *Workspace) Trace(q Query) []filter.StageCount {
	return filter.Trace(w.Scored(), q.Filter, w.Status, q.MatchesOnly, w.current)
}

// Posting returns one scored posting by id.
func (w *Workspace) Posting(id int) (match.Scored, bool) {
	p, ok := w.Catalog.ByID(id)
	if !ok {
		return match.Scored{}, false
	}
	return match.Scored{Posting: p, Score: match.ScoreWithBreakdown(p, w.current, w.scorer.Options).Final}, true
}

// Breakdown explains the score of one posting.
func (w *Workspace) Breakdown(id int) (match.Breakdown, bool) {
	p, ok := w.Catalog.ByID(id)
	if !ok {
		return match.Breakdown{}, false
	}
	return match.ScoreWithBreakdown(p, w.current, w.scorer.Options), true
}

// SavedPostings returns the saved postings, scored, in catalog order.
func (w *Workspace) SavedPostings() []match.Scored {
	return w.scorer.ScoreAll(w.Saved.Postings(w.Catalog.All()), w.current)
}

// SetStatus validates id against the catalog before updating the tracker.
func (w *Workspace) SetStatus(id int, st status.Status) error {
	if _, ok := w.Catalog.ByID(id); !ok {
		return fmt.Errorf("no posting with id %d", id)
	}
	return w.Status.Set(id, st)
}

// ToggleSaved validates id against the catalog before toggling it.
func (w *Workspace) ToggleSaved(id int) (bool, error) {
	if _, ok := w.Catalog.ByID(id); !ok {
		return false, fmt.Errorf("no posting with id %d", id)
	}
	return w.Saved.Toggle(id)
}

// Digest returns today's digest, generating it on the first call of the day.
func (w *Workspace) Digest(now time.Time) (*digest.Digest, error) {
	return w.Digests.Generate(w.Catalog.All(), w.current, now)
}

// ProofStage reports the submission stage from the stored links and the gate.
func (w *Workspace) ProofStage() proof.Stage {
	return proof.Status(w.Proof.Load(), w.Gate.IsUnlocked())
}

// Summary is the at-a-glance state shown by the stats command and the TUI
// header.
type Summary struct {
	Postings  int
	Matches   int
	Saved     int
	Statuses  map[status.Status]int
	Checklist int
	Unlocked  bool
	Proof     proof.Stage
}

func (w *Workspace) Summary() Summary {
	all := w.Catalog.All()
	ids := make([]int, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	done, _ := w.Gate.Progress()
	s := Summary{
		Postings:  len(all),
		Saved:     len(w.Saved.Postings(all)),
		Statuses:  w.Status.Snapshot().Counts(ids),
		Checklist: done,
		Unlocked:  w.Gate.IsUnlocked(),
		Proof:     w.ProofStage(),
	}
	if w.current != nil {
		s.Matches = len(filter.Apply(w.Scored(), filter.State{}, nil, true, w.current))
	}
	return s
}
