package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seekwell-app/seekwell/internal/models"
)

func TestBuildProfileText(t *testing.T) {
	user := &models.User{
		Profile: &models.Profile{
			Headline:        "Senior Backend Engineer",
			Summary:         "Eight years building payment systems.",
			YearsExperience: 8,
		},
		Skills: []models.UserSkill{
			{Skill: models.Skill{Name: "go"}},
			{Skill: models.Skill{Name: "postgresql"}},
		},
	}

	text := BuildProfileText(user)
	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "payment systems")
	assert.Contains(t, text, "8 years of experience")
	assert.Contains(t, text, "go")
	assert.Contains(t, text, "postgresql")
}

func TestBuildProfileTextSkillsOnly(t *testing.T) {
	user := &models.User{
		Skills: []models.UserSkill{{Skill: models.Skill{Name: "kubernetes"}}},
	}
	assert.Equal(t, "kubernetes", BuildProfileText(user))
}

func TestPreferencesOfDefaults(t *testing.T) {
	prefs := preferencesOf(&models.User{})
	assert.Equal(t, "any", prefs.RemotePreference)
	assert.Empty(t, prefs.Locations)
	assert.Zero(t, prefs.MinSalary)
}

func TestPreferencesOfFromProfile(t *testing.T) {
	user := &models.User{Profile: &models.Profile{
		RemotePreference: "remote",
		Locations:        models.StringList{"Berlin", "Amsterdam"},
		MinSalary:        90000,
	}}
	prefs := preferencesOf(user)
	assert.Equal(t, "remote", prefs.RemotePreference)
	assert.Equal(t, []string{"Berlin", "Amsterdam"}, prefs.Locations)
	assert.Equal(t, 90000, prefs.MinSalary)
}

func TestRequiredSkillNames(t *testing.T) {
	job := &models.Job{Skills: []models.JobSkill{
		{Requirement: models.RequirementRequired, Skill: models.Skill{Name: "go"}},
		{Requirement: models.RequirementNiceToHave, Skill: models.Skill{Name: "rust"}},
		{Requirement: models.RequirementRequired, Skill: models.Skill{Name: "sql"}},
	}}
	assert.Equal(t, []string{"go", "sql"}, requiredSkillNames(job))
}

func TestMergeSkillLists(t *testing.T) {
	got := mergeSkillLists([]string{"go", "sql"}, []string{"sql", "docker"})
	assert.Equal(t, []string{"docker", "go", "sql"}, got)
}

func TestJobText(t *testing.T) {
	job := &models.Job{
		Title:       "Platform Engineer",
		Description: "Build the deploy pipeline.",
		Location:    "Remote",
		Company:     models.Company{Name: "Acme"},
		Skills: []models.JobSkill{
			{Skill: models.Skill{Name: "terraform"}},
		},
	}
	text := JobText(job)
	assert.Contains(t, text, "Platform Engineer")
	assert.Contains(t, text, "Acme")
	assert.Contains(t, text, "deploy pipeline")
	assert.Contains(t, text, "terraform")
}
