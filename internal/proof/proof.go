// Package proof collects the submission artifacts and reports release status.
package proof

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/matheuskafuri/jobtrack/internal/store"
)

// Steps are the build milestones listed on the proof view.
var Steps = []string{
	"Project Setup & Design System",
	"Global Layout & Navigation",
	"Job Dashboard & Data",
	"Search & Filtering",
	"Saved Jobs & Persistence",
	"Daily Digest Engine",
	"Status Tracking System",
	"Quality Assurance Checklist",
}

// Links are the three submission artifacts.
type Links struct {
	Project    string `json:"project"`
	Repository string `json:"repository"`
	Deployment string `json:"deployment"`
}

// ValidURL reports whether s is an absolute http or https URL with a host.
func ValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Complete reports whether all three links are valid.
func (l Links) Complete() bool {
	return ValidURL(l.Project) && ValidURL(l.Repository) && ValidURL(l.Deployment)
}

func (l Links) anyValid() bool {
	return ValidURL(l.Project) || ValidURL(l.Repository) || ValidURL(l.Deployment)
}

// Stage is the overall submission state.
type Stage string

const (
	NotStarted Stage = "Not Started"
	InProgress Stage = "In Progress"
	Shipped    Stage = "Shipped"
)

// Status derives the submission stage from the links and the release gate.
func Status(l Links, unlocked bool) Stage {
	switch {
	case l.Complete() && unlocked:
		return Shipped
	case l.anyValid() || unlocked:
		return InProgress
	default:
		return NotStarted
	}
}

// Submission renders the final submission text.
func Submission(l Links) string {
	rule := strings.Repeat("-", 42)
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Job Notification Tracker — Final Submission")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Project:\n%s\n\n", l.Project)
	fmt.Fprintf(&b, "GitHub Repository:\n%s\n\n", l.Repository)
	fmt.Fprintf(&b, "Live Deployment:\n%s\n\n", l.Deployment)
	fmt.Fprintln(&b, "Core Features:")
	for _, f := range []string{"Intelligent match scoring", "Daily digest simulation", "Status tracking", "Test checklist enforced"} {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprint(&b, rule)
	return b.String()
}

// Store persists the links.
type Store struct {
	kv store.KV
}

func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the saved links, zero when none are saved.
func (s *Store) Load() Links {
	var l Links
	store.LoadJSON(s.kv, store.KeyProofLinks, &l)
	return l
}

func (s *Store) Save(l Links) error {
	l.Project = strings.TrimSpace(l.Project)
	l.Repository = strings.TrimSpace(l.Repository)
	l.Deployment = strings.TrimSpace(l.Deployment)
	if err := store.SaveJSON(s.kv, store.KeyProofLinks, l); err != nil {
		return fmt.Errorf("saving proof links: %w", err)
	}
	return nil
}
