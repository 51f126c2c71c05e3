package dtos

type AccountUpdateRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ProfileUpdateRequest struct {
	Headline         string   `json:"headline"`
	Summary          string   `json:"summary"`
	YearsExperience  float64  `json:"years_experience"`
	Locations        []string `json:"locations"`
	RemotePreference string   `json:"remote_preference" binding:"omitempty,oneof=remote onsite any"`
	MinSalary        int      `json:"min_salary"`
	MaxSalary        int      `json:"max_salary"`
	Currency         string   `json:"currency"`
}

type SkillEntry struct {
	Name        string  `json:"name" binding:"required"`
	Proficiency int     `json:"proficiency" binding:"omitempty,min=1,max=5"`
	Years       float64 `json:"years"`
}

type SkillsUpdateRequest struct {
	Skills []SkillEntry `json:"skills" binding:"required,dive"`
}

type DigestPreferencesRequest struct {
	Frequency string `json:"frequency" binding:"required,oneof=daily weekly off"`
}
