package ai

// Prompt templates. Each one instructs the model to return bare JSON matching
// an explicit schema; the callers still run CleanJSON over the response
// because models wrap output in markdown fences anyway.

const JobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company_name": "Name of the company (e.g., Google, StartupInc)",
    "role_title": "Job title (e.g., Senior Backend Engineer)",
    "location": "Job location, or empty string if not stated",
    "remote": true or false,
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "salary_min": lower bound of the salary as an integer, or 0 if not stated,
    "salary_max": upper bound of the salary as an integer, or 0 if not stated,
    "currency": "ISO currency code like USD if a salary is stated, otherwise empty string",
    "required_skills": ["technologies or skills listed as requirements, e.g. Go, PostgreSQL"],
    "nice_to_have_skills": ["technologies or skills listed as preferred or bonus"],
    "posted_at": "posting date in YYYY-MM-DD if present, otherwise empty string"
}

### CONSTRAINT:
If a piece of information is missing, use the empty value for its type. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

const ResumeParsePrompt = `
You are an expert Resume Parsing Agent. Analyze the resume text below and extract a structured candidate profile.

### INSTRUCTIONS:
1. **Summarize** the candidate in one headline and a short summary paragraph.
2. **List** the candidate's skills with your best estimate of years used and proficiency.
3. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "headline": "One line, e.g. 'Senior Backend Engineer, 8y Go and distributed systems'",
    "summary": "3-5 sentence professional summary in third person",
    "years_experience": total professional years as a number,
    "skills": [{"name": "skill in lowercase", "years": number, "proficiency": 1-5}],
    "locations": ["cities or regions the candidate is located in or mentions preferring"],
    "min_salary": stated salary expectation lower bound as integer, or 0,
    "max_salary": stated salary expectation upper bound as integer, or 0,
    "currency": "ISO currency code or empty string"
}

### CONSTRAINT:
If a piece of information is missing, use the empty value for its type. Do not hallucinate or guess.

### RESUME:
%s
`

const StatusClassifyPrompt = `
You are tracking a job application that is currently in status "%s".
Analyze the update below and decide whether it changes the application status.

Valid statuses: applied, screening, interview, offer, rejected.
If the message does not clearly indicate a status change, answer NO_CHANGE.

Return valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "status": "one of: applied, screening, interview, offer, rejected, NO_CHANGE",
    "summary": "One sentence describing what the update says"
}

### SUBJECT:
%s

### BODY:
%s
`

const DigestIntroPrompt = `
You write short friendly openers for a weekly job-search digest email.
Given the highlights below, write 2-3 sentences that greet the reader and
tease the content. No subject line, no sign-off, no markdown, plain text only.

### HIGHLIGHTS:
%s
`
