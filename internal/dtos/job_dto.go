package dtos

type JobExtractionRequest struct {
	RawContent string `json:"raw_content" binding:"required"`
	URL        string `json:"url"`
}

type JobCreationRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Title       string `json:"role_title" binding:"required"`
	SourceURL   string `json:"source_url" binding:"required,url"`
	Description string `json:"description" binding:"required"`

	Location         string   `json:"location"`
	Remote           bool     `json:"remote"`
	SalaryMin        int      `json:"salary_min"`
	SalaryMax        int      `json:"salary_max"`
	Currency         string   `json:"currency"`
	SourcePlatform   string   `json:"source_platform"`
	RequiredSkills   []string `json:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
}

type JobIngestRequest struct {
	SourceURL      string `json:"source_url" binding:"required,url"`
	SourcePlatform string `json:"source_platform"`
	RawContent     string `json:"raw_content" binding:"required"`
}
