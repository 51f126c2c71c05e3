package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	DigestFrequency string     `gorm:"default:'weekly'" json:"digest_frequency"`
	LastDigestAt    *time.Time `json:"last_digest_at"`

	// 'omitempty' keeps profile out of list responses unless preloaded.
	Profile *Profile    `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Skills  []UserSkill `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
}

type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Headline         string     `json:"headline"`
	Summary          string     `gorm:"type:text" json:"summary"`
	YearsExperience  float64    `json:"years_experience"`
	Locations        StringList `gorm:"type:jsonb" json:"locations"`
	RemotePreference string     `gorm:"default:'any'" json:"remote_preference"`
	MinSalary        int        `json:"min_salary"`
	MaxSalary        int        `json:"max_salary"`
	Currency         string     `json:"currency"`

	// Set when the profile embedding was last pushed to the vector index.
	EmbeddedAt *time.Time `json:"embedded_at"`
}

type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Canonical lowercased name.
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type UserSkill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  uint `gorm:"uniqueIndex:idx_user_skill;not null" json:"user_id"`
	SkillID uint `gorm:"uniqueIndex:idx_user_skill;not null" json:"skill_id"`
	Skill   Skill `json:"skill"`

	Proficiency int     `json:"proficiency"`
	Years       float64 `json:"years"`
}

type JobSkill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobID   uint `gorm:"uniqueIndex:idx_job_skill;not null" json:"job_id"`
	SkillID uint `gorm:"uniqueIndex:idx_job_skill;not null" json:"skill_id"`
	Skill   Skill `json:"skill"`

	Requirement string `gorm:"default:'required'" json:"requirement"`
	Weight      int    `gorm:"default:3" json:"weight"`
}

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Website string `json:"website"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint `json:"company_id"`
	// Association: GORM needs Preload() to fill this
	Company Company `json:"company"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `json:"location"`
	Remote      bool   `json:"remote"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
	Currency    string `json:"currency"`

	SourceURL      string `gorm:"uniqueIndex;not null" json:"source_url"`
	SourcePlatform string `json:"source_platform"`
	ContentHash    string `gorm:"index" json:"-"`

	Status               string   `gorm:"default:'active'" json:"status"`
	ExtractionConfidence float64  `json:"extraction_confidence"`
	RawExtraction        JSONText `gorm:"type:jsonb" json:"raw_extraction,omitempty"`

	PostedAt *time.Time `json:"posted_at"`
	// Set when the job embedding was last pushed to the vector index.
	IndexedAt *time.Time `json:"indexed_at"`

	Skills []JobSkill `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
}

type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"uniqueIndex:idx_user_job;not null" json:"user_id"`
	JobID  uint `gorm:"uniqueIndex:idx_user_job;not null" json:"job_id"`
	Job    Job  `json:"job"`

	ResumeID *uint `json:"resume_id"`

	Status           ApplicationStatus `gorm:"default:'saved'" json:"status"`
	Notes            string            `gorm:"type:text" json:"notes"`
	AutomationResult JSONText          `gorm:"type:jsonb" json:"automation_result,omitempty"`
	SubmittedAt      *time.Time        `json:"submitted_at"`

	Events []ApplicationEvent `gorm:"constraint:OnDelete:CASCADE" json:"events,omitempty"`
}

type ApplicationEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID uint      `gorm:"index" json:"application_id"`
	EventType     string    `json:"event_type"`
	Details       string    `gorm:"type:text" json:"details"`
	Payload       JSONText  `gorm:"type:jsonb" json:"payload,omitempty"`
}

type Resume struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"index;not null" json:"user_id"`

	Filename    string `gorm:"not null" json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	ObjectKey   string `gorm:"uniqueIndex;not null" json:"-"`

	ParseStatus   string     `gorm:"default:'pending'" json:"parse_status"`
	ParseError    string     `json:"parse_error,omitempty"`
	ExtractedText string     `gorm:"type:text" json:"-"`
	ParsedProfile JSONText   `gorm:"type:jsonb" json:"parsed_profile,omitempty"`
	ParsedAt      *time.Time `json:"parsed_at"`
}

type Digest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      uint      `gorm:"uniqueIndex:idx_user_period;not null" json:"user_id"`
	PeriodStart time.Time `gorm:"uniqueIndex:idx_user_period;not null" json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Status      string     `gorm:"default:'pending'" json:"status"`
	Subject     string     `json:"subject"`
	MatchCount  int        `json:"match_count"`
	UpdateCount int        `json:"update_count"`
	Content     JSONText   `gorm:"type:jsonb" json:"content,omitempty"`
	Error       string     `json:"error,omitempty"`
	SentAt      *time.Time `json:"sent_at"`
}

type APIToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID     uint       `gorm:"index;not null" json:"user_id"`
	TokenHash  string     `gorm:"uniqueIndex;not null" json:"-"`
	Label      string     `json:"label"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}
