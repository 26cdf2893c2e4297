package match

import (
	"testing"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/prefs"
)

func reactPosting() catalog.Posting {
	return catalog.Posting{
		ID:          1,
		Title:       "Senior React Developer",
		Company:     "Acme",
		Description: "We need a React expert with Node.js skills.",
		Location:    "Bangalore",
		Mode:        catalog.ModeHybrid,
		Experience:  "3-5 years",
		Skills:      []string{"React", "Node.js", "TypeScript"},
		Source:      "LinkedIn",
		PostedAge:   1,
	}
}

func reactPrefs() *prefs.Preferences {
	p := prefs.Preferences{
		RoleKeywords:       prefs.ParseList("React, Frontend"),
		PreferredLocations: prefs.ParseList("Bangalore, Pune"),
		PreferredModes:     prefs.List{"Hybrid"},
		ExperienceLevel:    "3-5y",
		Skills:             prefs.ParseList("React, CSS"),
	}.WithMinScore(40)
	return &p
}

func javaPrefs() *prefs.Preferences {
	return &prefs.Preferences{
		RoleKeywords:       prefs.ParseList("Java"),
		PreferredLocations: prefs.ParseList("Delhi"),
		PreferredModes:     prefs.List{"Onsite"},
		ExperienceLevel:    "0-1y",
		Skills:             prefs.ParseList("Java"),
	}
}

func TestPerfectMatchScores100(t *testing.T) {
	b := ScoreWithBreakdown(reactPosting(), reactPrefs(), Options{})
	want := Breakdown{
		Role: 25, Description: 15, Location: 15, Mode: 10,
		Experience: 10, Skills: 15, Fresh: 5, Source: 5, Final: 100,
	}
	if b != want {
		t.Errorf("breakdown = %+v, want %+v", b, want)
	}
}

func TestMismatchGatesBonuses(t *testing.T) {
	score := Score(reactPosting(), javaPrefs())
	if score != 0 {
		t.Errorf("expected gated bonuses to leave score at 0, got %d", score)
	}
}

func TestMismatchUngatedBonuses(t *testing.T) {
	b := ScoreWithBreakdown(reactPosting(), javaPrefs(), Options{UngatedBonuses: true})
	if b.Final != 10 {
		t.Errorf("expected 10 with ungated bonuses, got %d (%+v)", b.Final, b)
	}
}

func TestNilPreferencesScoreZero(t *testing.T) {
	for _, p := range catalog.Generate(20) {
		if got := Score(p, nil); got != 0 {
			t.Fatalf("Score(%d, nil) = %d, want 0", p.ID, got)
		}
	}
	if got := ScoreWithBreakdown(reactPosting(), nil, Options{UngatedBonuses: true}).Final; got != 0 {
		t.Errorf("ungated nil prefs = %d, want 0", got)
	}
}

func TestScoreRange(t *testing.T) {
	all := []*prefs.Preferences{
		reactPrefs(),
		javaPrefs(),
		{},
		{RoleKeywords: prefs.List{"developer, intern, engineer"}, Skills: prefs.List{"java, python, react"},
			PreferredLocations: prefs.List{"Remote, Bangalore"}, PreferredModes: prefs.List{"Remote", "Hybrid", "Onsite"}},
	}
	for _, pr := range all {
		for _, p := range catalog.Generate(60) {
			for _, opts := range []Options{{}, {UngatedBonuses: true}} {
				s := ScoreWithBreakdown(p, pr, opts).Final
				if s < 0 || s > 100 {
					t.Fatalf("score out of range: %d for posting %d", s, p.ID)
				}
			}
		}
	}
}

func TestBlankKeywordsAreNotWildcards(t *testing.T) {
	pr := &prefs.Preferences{
		RoleKeywords:       prefs.List{"  ,  "},
		Skills:             prefs.List{" "},
		PreferredLocations: prefs.List{""},
		ExperienceLevel:    "   ",
	}
	b := ScoreWithBreakdown(reactPosting(), pr, Options{})
	if b.Final != 0 {
		t.Errorf("blank preferences should not match anything, got %+v", b)
	}
}

func TestLocationBidirectional(t *testing.T) {
	p := reactPosting()
	p.Location = "New Delhi"

	pr := &prefs.Preferences{PreferredLocations: prefs.List{"delhi"}}
	if b := ScoreWithBreakdown(p, pr, Options{}); b.Location != WeightLocation {
		t.Errorf("preference contained in location should match: %+v", b)
	}

	p.Location = "Delhi"
	pr = &prefs.Preferences{PreferredLocations: prefs.List{"Delhi NCR"}}
	if b := ScoreWithBreakdown(p, pr, Options{}); b.Location != WeightLocation {
		t.Errorf("location contained in preference should match: %+v", b)
	}
}

func TestModeSpellings(t *testing.T) {
	p := reactPosting()
	p.Mode = catalog.ModeOnSite
	for _, spelling := range []string{"Onsite", "On-site", "ON SITE"} {
		pr := &prefs.Preferences{PreferredModes: prefs.List{spelling}}
		if b := ScoreWithBreakdown(p, pr, Options{}); b.Mode != WeightMode {
			t.Errorf("mode %q should match On-site: %+v", spelling, b)
		}
	}
	pr := &prefs.Preferences{PreferredModes: prefs.List{"Telepathic"}}
	if b := ScoreWithBreakdown(p, pr, Options{}); b.Mode != 0 {
		t.Errorf("unknown mode should not match: %+v", b)
	}
}

func TestModeAcceptsCommaString(t *testing.T) {
	p := reactPosting()
	pr := &prefs.Preferences{PreferredModes: prefs.ParseList("Remote, Hybrid")}
	if b := ScoreWithBreakdown(p, pr, Options{}); b.Mode != WeightMode {
		t.Errorf("comma-separated modes should match Hybrid: %+v", b)
	}
}

func TestExperienceMatch(t *testing.T) {
	tests := []struct {
		posting string
		pref    string
		want    bool
	}{
		{"3-5 years", "3-5y", true},
		{"3-5 years", "3-5 Years", true},
		{"3-5 years", "0-1y", false},
		{"0-1", "0-1 years", true},
		{"1-3", "1", false},
		{"fresher", "fresher", true},
		{"0-1", "fresher", false},
		{"fresher", "entry", false},
		{"5+ years", "5", true},
		{"", "3-5", false},
		{"3-5 years", "", false},
	}
	for _, tt := range tests {
		if got := experienceMatch(tt.posting, tt.pref); got != tt.want {
			t.Errorf("experienceMatch(%q, %q) = %v, want %v", tt.posting, tt.pref, got, tt.want)
		}
	}
}

func TestSkillOverlapBidirectional(t *testing.T) {
	skills := []string{"HTML/CSS", "Node.js"}
	if !skillOverlap([]string{"css"}, skills) {
		t.Error("css should overlap HTML/CSS")
	}
	if !skillOverlap([]string{"node.js backend"}, skills) {
		t.Error("skill contained in preference should overlap")
	}
	if skillOverlap([]string{"rust"}, skills) {
		t.Error("rust should not overlap")
	}
}

func TestSourceBonusCaseInsensitive(t *testing.T) {
	p := reactPosting()
	p.Source = "linkedin"
	if b := ScoreWithBreakdown(p, reactPrefs(), Options{}); b.Source != BonusSource {
		t.Errorf("lower-case linkedin should earn the bonus: %+v", b)
	}
	p.Source = "Naukri"
	if b := ScoreWithBreakdown(p, reactPrefs(), Options{}); b.Source != 0 {
		t.Errorf("other sources get no bonus: %+v", b)
	}
}

func TestFreshnessBoundary(t *testing.T) {
	p := reactPosting()
	p.PostedAge = 2
	if b := ScoreWithBreakdown(p, reactPrefs(), Options{}); b.Fresh != BonusFresh {
		t.Errorf("age 2 should be fresh: %+v", b)
	}
	p.PostedAge = 3
	if b := ScoreWithBreakdown(p, reactPrefs(), Options{}); b.Fresh != 0 {
		t.Errorf("age 3 should not be fresh: %+v", b)
	}
}

func TestScoreAllPreservesOrder(t *testing.T) {
	postings := catalog.Generate(10)
	scored := Scorer{}.ScoreAll(postings, reactPrefs())
	if len(scored) != len(postings) {
		t.Fatalf("expected %d scored, got %d", len(postings), len(scored))
	}
	for i := range postings {
		if scored[i].ID != postings[i].ID {
			t.Fatalf("order changed at %d", i)
		}
		if scored[i].Score != Score(postings[i], reactPrefs()) {
			t.Errorf("ScoreAll disagrees with Score for %d", postings[i].ID)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	p, pr := reactPosting(), reactPrefs()
	first := Score(p, pr)
	for i := 0; i < 10; i++ {
		if got := Score(p, pr); got != first {
			t.Fatalf("score changed between calls: %d vs %d", got, first)
		}
	}
}
