// Package matching holds the pure scoring functions behind job-to-profile
// ranking: keyword overlap, the semantic/keyword blend, the required-skill
// boost and preference filters. No I/O happens here.
package matching

import "sort"

// Blend weights: semantic similarity carries most of the signal, keyword
// overlap corrects it when the embedding space smears distinct stacks
// together.
const (
	semanticWeight = 0.7
	keywordWeight  = 0.3

	// requiredBoost scales the combined score when the profile covers
	// every required skill on the posting.
	requiredBoost = 1.15

	// maxMissing caps the reported skills gap list.
	maxMissing = 20
)

// KeywordScore computes the Jaccard keyword overlap (0-100) between
// pre-tokenized profile keywords and job text. It also returns the matched
// keywords and the job keywords the profile lacks (capped, sorted).
func KeywordScore(profileKW map[string]bool, jobText string) (score float64, matching, missing []string) {
	jobKW := Tokenize(jobText)

	inter := 0
	for kw := range profileKW {
		if jobKW[kw] {
			inter++
			matching = append(matching, kw)
		}
	}
	for kw := range jobKW {
		if !profileKW[kw] {
			missing = append(missing, kw)
		}
	}

	union := len(profileKW) + len(jobKW) - inter
	if union > 0 {
		raw := float64(inter) / float64(union) * 100
		score = float64(int(raw*10+0.5)) / 10 // round to 1 decimal
	}

	sort.Strings(matching)
	sort.Strings(missing)
	if len(missing) > maxMissing {
		missing = missing[:maxMissing]
	}
	return score, matching, missing
}

// CombinedScore blends cosine similarity (0-1) with keyword overlap (0-100)
// into a single 0-100ish rank value.
func CombinedScore(semantic, keyword float64) float64 {
	return semanticWeight*semantic*100 + keywordWeight*keyword
}

// RequiredCoverage reports which required skills the profile covers and
// whether coverage is complete. An empty requirement list counts as not
// fully covered so the boost never applies to postings without one.
func RequiredCoverage(profileKW map[string]bool, required []string) (covered []string, full bool) {
	if len(required) == 0 {
		return nil, false
	}
	for _, skill := range required {
		if profileKW[skill] {
			covered = append(covered, skill)
		}
	}
	return covered, len(covered) == len(required)
}

// ApplyBoost scales the score when required coverage is complete.
func ApplyBoost(score float64, fullCoverage bool) float64 {
	if fullCoverage {
		return score * requiredBoost
	}
	return score
}

// Preferences are the user-side filters applied after scoring.
type Preferences struct {
	// RemotePreference is one of "remote", "onsite", "any".
	RemotePreference string
	// Locations are acceptable job locations. Empty means anywhere.
	Locations []string
	// MinSalary filters out jobs whose stated maximum is below it.
	// Zero disables the filter.
	MinSalary int
}

// JobFacts are the filterable facts about a posting.
type JobFacts struct {
	Remote    bool
	Location  string
	SalaryMax int
}

// PassesFilters reports whether a job survives the user's preferences.
// Jobs that omit a fact (no salary, no location) are never filtered on it.
func PassesFilters(job JobFacts, prefs Preferences) bool {
	switch prefs.RemotePreference {
	case "remote":
		if !job.Remote {
			return false
		}
	case "onsite":
		if job.Remote {
			return false
		}
	}

	if len(prefs.Locations) > 0 && job.Location != "" && !job.Remote {
		ok := false
		jobLoc := Tokenize(job.Location)
		for _, loc := range prefs.Locations {
			for kw := range Tokenize(loc) {
				if jobLoc[kw] {
					ok = true
				}
			}
		}
		if !ok {
			return false
		}
	}

	if prefs.MinSalary > 0 && job.SalaryMax > 0 && job.SalaryMax < prefs.MinSalary {
		return false
	}

	return true
}
