package ai

// Field weights for the extraction confidence score. Title and company carry
// most of the weight: a posting without them is unusable. Salary and posting
// date are frequently absent from legitimate postings, so they count little.
const (
	weightTitle       = 0.25
	weightCompany     = 0.25
	weightDescription = 0.20
	weightLocation    = 0.10
	weightSkills      = 0.10
	weightSalary      = 0.05
	weightPostedAt    = 0.05
)

// minDescriptionChars is the length below which a description is treated as
// a fragment rather than a real summary.
const minDescriptionChars = 80

// ConfidenceScore computes the heuristic extraction confidence for a parsed
// posting: weighted field coverage, degraded when the description is a
// fragment. Always in [0,1] and monotone in field coverage.
func ConfidenceScore(job *ExtractedJob) float64 {
	if job == nil {
		return 0
	}

	score := 0.0
	if job.Title != "" {
		score += weightTitle
	}
	if job.Company != "" {
		score += weightCompany
	}
	if job.Description != "" {
		score += weightDescription
	}
	if job.Location != "" || job.Remote {
		score += weightLocation
	}
	if len(job.RequiredSkills)+len(job.NiceToHaveSkills) > 0 {
		score += weightSkills
	}
	if job.SalaryMin > 0 || job.SalaryMax > 0 {
		score += weightSalary
	}
	if job.PostedAt != "" {
		score += weightPostedAt
	}

	if len(job.Description) > 0 && len(job.Description) < minDescriptionChars {
		score *= 0.8
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
