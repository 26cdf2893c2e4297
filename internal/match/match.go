// Package match scores postings against the user's preferences.
package match

import (
	"regexp"
	"strings"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/prefs"
)

// Category weights. A fully matching, fresh LinkedIn posting sums to 100.
const (
	WeightRole        = 25
	WeightDescription = 15
	WeightLocation    = 15
	WeightMode        = 10
	WeightExperience  = 10
	WeightSkills      = 15
	BonusFresh        = 5
	BonusSource       = 5

	MaxScore = 100

	freshDays       = 2
	preferredSource = "linkedin"
)

var expRange = regexp.MustCompile(`\d+(-\d+)?`)

// Options tune scoring policy.
type Options struct {
	// UngatedBonuses applies the freshness and source bonuses even when no
	// category matched.
	UngatedBonuses bool
}

// Breakdown shows how each category contributed to the final score.
type Breakdown struct {
	Role        int
	Description int
	Location    int
	Mode        int
	Experience  int
	Skills      int
	Fresh       int
	Source      int
	Final       int
}

// Scored is a posting paired with its match score for the current preferences.
type Scored struct {
	catalog.Posting
	Score int
}

// Score computes the 0–100 match score. Nil preferences score 0.
func Score(p catalog.Posting, pr *prefs.Preferences) int {
	return ScoreWithBreakdown(p, pr, Options{}).Final
}

// ScoreWithBreakdown computes a match score with per-category details.
func ScoreWithBreakdown(p catalog.Posting, pr *prefs.Preferences, opts Options) Breakdown {
	var b Breakdown
	if pr == nil {
		return b
	}

	title := prefs.Normalize(p.Title)
	desc := prefs.Normalize(p.Description)
	keywords := pr.RoleKeywords.Normalized()

	if anyContained(keywords, title) {
		b.Role = WeightRole
	}
	if anyContained(keywords, desc) {
		b.Description = WeightDescription
	}
	if locationMatch(pr.PreferredLocations.Normalized(), prefs.Normalize(p.Location)) {
		b.Location = WeightLocation
	}
	if modeMatch(pr.PreferredModes.Normalized(), p.Mode) {
		b.Mode = WeightMode
	}
	if experienceMatch(prefs.Normalize(p.Experience), prefs.Normalize(pr.ExperienceLevel)) {
		b.Experience = WeightExperience
	}
	if skillOverlap(pr.Skills.Normalized(), p.Skills) {
		b.Skills = WeightSkills
	}

	running := b.Role + b.Description + b.Location + b.Mode + b.Experience + b.Skills

	// Bonuses only lift postings that are already relevant.
	if running > 0 || opts.UngatedBonuses {
		if p.PostedAge <= freshDays {
			b.Fresh = BonusFresh
		}
		if prefs.Normalize(p.Source) == preferredSource {
			b.Source = BonusSource
		}
	}

	b.Final = min(running+b.Fresh+b.Source, MaxScore)
	return b
}

// Scorer scores whole postings slices with a fixed policy.
type Scorer struct {
	Options Options
}

// ScoreAll pairs every posting with its score, preserving order.
func (s Scorer) ScoreAll(postings []catalog.Posting, pr *prefs.Preferences) []Scored {
	out := make([]Scored, len(postings))
	for i, p := range postings {
		out[i] = Scored{Posting: p, Score: ScoreWithBreakdown(p, pr, s.Options).Final}
	}
	return out
}

func anyContained(needles []string, haystack string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// locationMatch accepts partial names in either direction ("Delhi" vs
// "New Delhi").
func locationMatch(preferred []string, loc string) bool {
	for _, l := range preferred {
		if strings.Contains(loc, l) || strings.Contains(l, loc) {
			return true
		}
	}
	return false
}

func modeMatch(preferred []string, mode catalog.Mode) bool {
	if mode == catalog.ModeUnknown {
		return false
	}
	for _, m := range preferred {
		if catalog.ParseMode(m) == mode {
			return true
		}
	}
	return false
}

// experienceMatch compares leading numeric ranges ("3-5" in "3-5 years" and
// "3-5y"). Without a range in the preference it falls back to a plain
// substring check, so "fresher" matches "Fresher".
func experienceMatch(postingExp, prefExp string) bool {
	if prefExp == "" {
		return false
	}
	prefRange := expRange.FindString(prefExp)
	if prefRange == "" {
		return strings.Contains(postingExp, prefExp)
	}
	postingRange := expRange.FindString(postingExp)
	return postingRange != "" && postingRange == prefRange
}

func skillOverlap(preferred []string, skills []string) bool {
	for _, s := range skills {
		js := prefs.Normalize(s)
		for _, us := range preferred {
			if strings.Contains(js, us) || strings.Contains(us, js) {
				return true
			}
		}
	}
	return false
}
