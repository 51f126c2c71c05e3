package ai

// ExtractedJob holds the structured fields pulled out of a raw posting.
// Zero values mean the field was absent from the source, never guessed.
type ExtractedJob struct {
	Company     string `json:"company_name"`
	Title       string `json:"role_title"`
	Location    string `json:"location"`
	Remote      bool   `json:"remote"`
	Description string `json:"description"`

	SalaryMin int    `json:"salary_min"`
	SalaryMax int    `json:"salary_max"`
	Currency  string `json:"currency"`

	RequiredSkills   []string `json:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`

	// PostedAt is the posting date as written in the source (ISO 8601
	// when the model can normalize it, otherwise verbatim).
	PostedAt string `json:"posted_at"`

	// Confidence is the heuristic coverage score, set by the extractor
	// after parsing. Not part of the model output.
	Confidence float64 `json:"-"`
}

// ParsedProfile is the structured form of a resume.
type ParsedProfile struct {
	Headline        string         `json:"headline"`
	Summary         string         `json:"summary"`
	YearsExperience float64        `json:"years_experience"`
	Skills          []ProfileSkill `json:"skills"`
	Locations       []string       `json:"locations"`
	MinSalary       int            `json:"min_salary"`
	MaxSalary       int            `json:"max_salary"`
	Currency        string         `json:"currency"`
}

// ProfileSkill is one skill from a parsed resume.
type ProfileSkill struct {
	Name        string  `json:"name"`
	Years       float64 `json:"years"`
	Proficiency int     `json:"proficiency"`
}

// StatusNoChange is returned by a Classifier when the message does not
// move the application forward.
const StatusNoChange = "NO_CHANGE"

// StatusUpdate is the classifier's verdict on an application update.
type StatusUpdate struct {
	Status  string `json:"status"`
	Summary string `json:"summary"`
}
