package dtos

type ApplicationCreateRequest struct {
	JobID    uint   `json:"job_id" binding:"required"`
	ResumeID *uint  `json:"resume_id"`
	Notes    string `json:"notes"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type ApplicationUpdateNoteRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type ApplicationSubmitRequest struct {
	ResumeID *uint `json:"resume_id"`
}
