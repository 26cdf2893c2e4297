// Package digest builds the once-a-day list of best matching postings.
//
// A digest is generated on demand and then locked for the local calendar day:
// later requests on the same day return the stored copy even if preferences
// or statuses changed in between.
package digest

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/prefs"
	"github.com/matheuskafuri/jobtrack/internal/rank"
	"github.com/matheuskafuri/jobtrack/internal/store"
)

// DefaultSize is the number of entries in a digest.
const DefaultSize = 10

// ErrNoPreferences is returned when a digest is requested before any
// preferences are saved.
var ErrNoPreferences = errors.New("no preferences saved")

const dateLayout = "2006-01-02"

// Digest is one day's snapshot.
type Digest struct {
	Date        string    `json:"date"`
	GeneratedAt time.Time `json:"generatedAt"`
	Size        int       `json:"size,omitempty"`
	Entries     []Entry   `json:"jobs"`
}

// Entry is a posting as it stood when the digest was generated.
type Entry struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Mode     string `json:"mode"`
	Salary   string `json:"salaryRange"`
	Score    int    `json:"matchScore"`
	ApplyURL string `json:"applyUrl"`
}

// Generate scores postings, keeps those at or above the preference threshold,
// and returns the top size by score. size <= 0 uses DefaultSize.
func Generate(postings []catalog.Posting, pr *prefs.Preferences, scorer match.Scorer, now time.Time, size int) (*Digest, error) {
	if pr == nil {
		return nil, ErrNoPreferences
	}
	if size <= 0 {
		size = DefaultSize
	}

	cutoff := pr.Threshold()
	var eligible []match.Scored
	for _, s := range scorer.ScoreAll(postings, pr) {
		if s.Score >= cutoff {
			eligible = append(eligible, s)
		}
	}
	ranked := rank.Sort(eligible, rank.Score)
	if len(ranked) > size {
		ranked = ranked[:size]
	}

	d := &Digest{
		Date:        now.Format(dateLayout),
		GeneratedAt: now.UTC(),
		Size:        size,
		Entries:     make([]Entry, 0, len(ranked)),
	}
	for _, s := range ranked {
		d.Entries = append(d.Entries, Entry{
			ID:       s.ID,
			Title:    s.Title,
			Company:  s.Company,
			Location: s.Location,
			Mode:     string(s.Mode),
			Salary:   s.SalaryRange,
			Score:    s.Score,
			ApplyURL: s.ApplyURL,
		})
	}
	return d, nil
}

// Empty reports whether no posting cleared the threshold.
func (d *Digest) Empty() bool {
	return len(d.Entries) == 0
}

// Heading is the title line shown above the list.
func (d *Digest) Heading() string {
	return fmt.Sprintf("Top %d Jobs For You — %s", d.size(), d.displayDate())
}

// size is the requested digest length; digests stored without one used the
// default.
func (d *Digest) size() int {
	if d.Size <= 0 {
		return DefaultSize
	}
	return d.Size
}

func (d *Digest) displayDate() string {
	t, err := time.Parse(dateLayout, d.Date)
	if err != nil {
		return d.Date
	}
	return t.Format("Monday, Jan 2 2006")
}

// Text renders the digest as plain text for copying.
func (d *Digest) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Jobs for %s\n\n", d.size(), d.displayDate())
	if d.Empty() {
		b.WriteString("No matching roles found today. Try adjusting your preferences or check back tomorrow.\n")
		return b.String()
	}
	for i, e := range d.Entries {
		fmt.Fprintf(&b, "%d. %s at %s [%d%% Match]\n", i+1, e.Title, e.Company, e.Score)
		fmt.Fprintf(&b, "   %s · %s · %s\n", e.Location, e.Mode, e.Salary)
		fmt.Fprintf(&b, "   Apply: %s\n\n", e.ApplyURL)
	}
	b.WriteString("This digest was generated based on your preferences.\n")
	return b.String()
}

// MailtoURL returns a mailto: link that drafts the digest as an email.
func (d *Digest) MailtoURL() string {
	q := url.Values{}
	q.Set("subject", "My 9AM Job Digest - "+d.Date)
	q.Set("body", d.Text())
	// mail clients expect %20 rather than + for spaces.
	return "mailto:?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// Store persists digests under a per-day key.
type Store struct {
	kv     store.KV
	scorer match.Scorer
	size   int
}

func NewStore(kv store.KV, scorer match.Scorer, size int) *Store {
	return &Store{kv: kv, scorer: scorer, size: size}
}

// Today returns the digest already generated for now's local date.
func (s *Store) Today(now time.Time) (*Digest, bool) {
	var d Digest
	if !store.LoadJSON(s.kv, store.DigestKey(now), &d) {
		return nil, false
	}
	return &d, true
}

// Generate returns today's digest, creating and persisting it on the first
// call of the day.
func (s *Store) Generate(postings []catalog.Posting, pr *prefs.Preferences, now time.Time) (*Digest, error) {
	if d, ok := s.Today(now); ok {
		return d, nil
	}
	d, err := Generate(postings, pr, s.scorer, now, s.size)
	if err != nil {
		return nil, err
	}
	if err := store.SaveJSON(s.kv, store.DigestKey(now), d); err != nil {
		return nil, fmt.Errorf("persisting digest: %w", err)
	}
	return d, nil
}
