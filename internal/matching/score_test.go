package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizePreservesTechTokens(t *testing.T) {
	kw := Tokenize("Looking for C++ and C# developers with Node.js experience")
	assert.True(t, kw["c++"])
	assert.True(t, kw["c#"])
	assert.True(t, kw["node.js"])
	assert.True(t, kw["developers"])
	assert.True(t, kw["experience"])
}

func TestTokenizeShortSymbolTokens(t *testing.T) {
	kw := Tokenize("We need C# and C++ plus Node.js")
	assert.True(t, kw["c#"])
	assert.True(t, kw["c++"])
	assert.True(t, kw["node.js"])
	// Bare short words still drop.
	assert.False(t, kw["we"])
}

func TestTokenizeDropsStopWordsAndShortTokens(t *testing.T) {
	kw := Tokenize("and the for go ml ai work team")
	assert.Empty(t, kw)
}

func TestTokenizeTrimsTrailingDots(t *testing.T) {
	kw := Tokenize("We ship golang. Daily.")
	assert.True(t, kw["golang"])
	assert.True(t, kw["ship"])
	assert.True(t, kw["daily"])
}

func TestKeywordScoreBounds(t *testing.T) {
	profile := Tokenize("golang postgresql kubernetes grpc")

	score, matching, missing := KeywordScore(profile, "golang postgresql kubernetes grpc")
	assert.InDelta(t, 100.0, score, 0.1)
	assert.Len(t, matching, 4)
	assert.Empty(t, missing)

	score, matching, _ = KeywordScore(profile, "painting sculpture pottery")
	assert.Zero(t, score)
	assert.Empty(t, matching)
}

func TestKeywordScoreMissingCappedAndSorted(t *testing.T) {
	profile := Tokenize("golang")
	jobText := "alpha bravo charlie delta echo foxtrot hotel india juliet kilo " +
		"lima mike november oscar papa quebec romeo sierra tango uniform victor " +
		"whiskey xray yankee zulu golang"

	_, matching, missing := KeywordScore(profile, jobText)
	assert.Equal(t, []string{"golang"}, matching)
	assert.Len(t, missing, 20)
	assert.IsIncreasing(t, missing)
}

func TestCombinedScoreBlends(t *testing.T) {
	// Pure semantic hit.
	assert.InDelta(t, 70.0, CombinedScore(1.0, 0), 1e-9)
	// Pure keyword hit.
	assert.InDelta(t, 30.0, CombinedScore(0, 100), 1e-9)
	// Semantic outweighs keyword at equal strength.
	assert.Greater(t, CombinedScore(0.9, 10), CombinedScore(0.1, 90))
}

func TestRequiredCoverage(t *testing.T) {
	profile := Tokenize("golang postgresql docker")

	covered, full := RequiredCoverage(profile, []string{"golang", "postgresql"})
	assert.True(t, full)
	assert.ElementsMatch(t, []string{"golang", "postgresql"}, covered)

	covered, full = RequiredCoverage(profile, []string{"golang", "rust"})
	assert.False(t, full)
	assert.Equal(t, []string{"golang"}, covered)

	_, full = RequiredCoverage(profile, nil)
	assert.False(t, full)
}

func TestApplyBoost(t *testing.T) {
	assert.InDelta(t, 115.0, ApplyBoost(100, true), 1e-9)
	assert.InDelta(t, 100.0, ApplyBoost(100, false), 1e-9)
}

func TestPassesFiltersRemotePreference(t *testing.T) {
	remote := JobFacts{Remote: true}
	onsite := JobFacts{Remote: false, Location: "Berlin"}

	assert.True(t, PassesFilters(remote, Preferences{RemotePreference: "remote"}))
	assert.False(t, PassesFilters(onsite, Preferences{RemotePreference: "remote"}))
	assert.False(t, PassesFilters(remote, Preferences{RemotePreference: "onsite"}))
	assert.True(t, PassesFilters(remote, Preferences{RemotePreference: "any"}))
	assert.True(t, PassesFilters(onsite, Preferences{}))
}

func TestPassesFiltersLocation(t *testing.T) {
	job := JobFacts{Location: "Berlin, Germany"}

	assert.True(t, PassesFilters(job, Preferences{Locations: []string{"Berlin"}}))
	assert.False(t, PassesFilters(job, Preferences{Locations: []string{"London"}}))

	// Remote jobs ignore the location filter.
	assert.True(t, PassesFilters(JobFacts{Remote: true}, Preferences{Locations: []string{"London"}}))
	// Jobs without a stated location are not filtered on it.
	assert.True(t, PassesFilters(JobFacts{}, Preferences{Locations: []string{"London"}}))
}

func TestPassesFiltersSalary(t *testing.T) {
	require.False(t, PassesFilters(JobFacts{SalaryMax: 50000}, Preferences{MinSalary: 80000}))
	require.True(t, PassesFilters(JobFacts{SalaryMax: 90000}, Preferences{MinSalary: 80000}))
	// No stated salary passes.
	require.True(t, PassesFilters(JobFacts{}, Preferences{MinSalary: 80000}))
}
