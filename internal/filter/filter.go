// Package filter narrows a scored posting list by the dashboard criteria.
//
// Stages run in a fixed order and compose with AND. Each stage keeps the
// relative order of its input, so the pipeline never re-sorts and never grows
// the result.
package filter

import (
	"slices"
	"strings"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/prefs"
	"github.com/matheuskafuri/jobtrack/internal/status"
)

// All is the explicit "no filter" value of a slot.
const All = "All"

// Option lists offered by the dashboard for each slot.
var (
	Locations   = []string{"Bangalore", "Hyderabad", "Pune", "Chennai", "Delhi NCR", "Mumbai", "Remote"}
	Experiences = []string{"Fresher", "0-1 Years", "1-3 Years", "3-5 Years", "5+ Years"}
	Modes       = []string{"Remote", "Hybrid", "Onsite"}
	Statuses    = []string{"Not Applied", "Applied", "Selected", "Rejected"}
)

// State is the transient dashboard filter. Empty or "All" leaves a slot unset.
type State struct {
	Search     string
	Location   string
	Experience string
	Mode       string
	Status     string
}

// Active reports whether any structured slot is set.
func (s State) Active() bool {
	return isSet(s.Location) || isSet(s.Experience) || isSet(s.Mode) || isSet(s.Status)
}

// Clear resets the four structured slots, keeping the search text.
func (s State) Clear() State {
	return State{Search: s.Search}
}

// StatusSource answers the current status of a posting.
type StatusSource interface {
	Get(id int) status.Status
}

type stage struct {
	name string
	keep func(match.Scored) bool // nil when the stage is skipped
}

// Apply runs the full pipeline. statuses may be nil when no status slot is
// set; prefs may be nil, in which case the matches-only stage is skipped.
func Apply(scored []match.Scored, st State, statuses StatusSource, matchesOnly bool, pr *prefs.Preferences) []match.Scored {
	out := slices.Clone(scored)
	for _, s := range stages(st, statuses, matchesOnly, pr) {
		out = narrow(out, s.keep)
	}
	return out
}

// StageCount is the result size after one stage.
type StageCount struct {
	Stage string
	Count int
}

// Trace runs the pipeline and reports the size after every stage, skipped
// stages included.
func Trace(scored []match.Scored, st State, statuses StatusSource, matchesOnly bool, pr *prefs.Preferences) []StageCount {
	out := scored
	var counts []StageCount
	for _, s := range stages(st, statuses, matchesOnly, pr) {
		out = narrow(out, s.keep)
		counts = append(counts, StageCount{Stage: s.name, Count: len(out)})
	}
	return counts
}

func stages(st State, statuses StatusSource, matchesOnly bool, pr *prefs.Preferences) []stage {
	return []stage{
		{"search", searchStage(st.Search)},
		{"location", locationStage(st.Location)},
		{"experience", experienceStage(st.Experience)},
		{"mode", modeStage(st.Mode)},
		{"status", statusStage(st.Status, statuses)},
		{"matches", thresholdStage(matchesOnly, pr)},
	}
}

func narrow(in []match.Scored, keep func(match.Scored) bool) []match.Scored {
	if keep == nil {
		return in
	}
	out := make([]match.Scored, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

func searchStage(q string) func(match.Scored) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	return func(p match.Scored) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Company), q)
	}
}

func locationStage(v string) func(match.Scored) bool {
	if !isSet(v) {
		return nil
	}
	want := strings.ToLower(strings.TrimSpace(v))
	remote := catalog.ParseMode(want) == catalog.ModeRemote
	return func(p match.Scored) bool {
		if strings.Contains(strings.ToLower(p.Location), want) {
			return true
		}
		return remote && p.Mode == catalog.ModeRemote
	}
}

var expReplacer = strings.NewReplacer("years", "", "year", "", "+", "")

// normalizeExperience strips "year(s)" and "+" so "5+ Years" and "5" compare.
func normalizeExperience(s string) string {
	return strings.TrimSpace(expReplacer.Replace(strings.ToLower(s)))
}

func experienceStage(v string) func(match.Scored) bool {
	if !isSet(v) {
		return nil
	}
	want := normalizeExperience(v)
	return func(p match.Scored) bool {
		have := normalizeExperience(p.Experience)
		if want == "fresher" && strings.Contains(have, "0") {
			return true
		}
		return strings.Contains(have, want)
	}
}

func modeStage(v string) func(match.Scored) bool {
	if !isSet(v) {
		return nil
	}
	want := catalog.ParseMode(v)
	return func(p match.Scored) bool {
		return want != catalog.ModeUnknown && p.Mode == want
	}
}

func statusStage(v string, statuses StatusSource) func(match.Scored) bool {
	if !isSet(v) {
		return nil
	}
	want, err := status.Parse(v)
	if err != nil {
		return func(match.Scored) bool { return false }
	}
	if statuses == nil {
		statuses = status.Map{}
	}
	return func(p match.Scored) bool {
		return statuses.Get(p.ID) == want
	}
}

func thresholdStage(matchesOnly bool, pr *prefs.Preferences) func(match.Scored) bool {
	if !matchesOnly || pr == nil {
		return nil
	}
	cutoff := pr.Threshold()
	return func(p match.Scored) bool {
		return p.Score >= cutoff
	}
}
