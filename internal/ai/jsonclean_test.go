package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONFenced(t *testing.T) {
	raw := "```json\n{\"role_title\": \"Engineer\"}\n```"
	var job ExtractedJob
	require.NoError(t, json.Unmarshal([]byte(CleanJSON(raw)), &job))
	assert.Equal(t, "Engineer", job.Title)
}

func TestCleanJSONBareFence(t *testing.T) {
	raw := "```\n{\"company_name\": \"Stripe\"}\n```"
	assert.Equal(t, `{"company_name": "Stripe"}`, CleanJSON(raw))
}

func TestCleanJSONLeadingProse(t *testing.T) {
	raw := "Here is the extracted data:\n{\"role_title\": \"Engineer\"}\nLet me know if you need anything else."
	assert.Equal(t, `{"role_title": "Engineer"}`, CleanJSON(raw))
}

func TestCleanJSONAlreadyClean(t *testing.T) {
	raw := `{"location": "Remote"}`
	assert.Equal(t, raw, CleanJSON(raw))
}

func TestRepairJSONTrailingCommas(t *testing.T) {
	raw := `{"skills": ["go", "sql",], "years": 5,}`
	repaired := RepairJSON(raw)

	var out struct {
		Skills []string `json:"skills"`
		Years  int      `json:"years"`
	}
	require.NoError(t, json.Unmarshal([]byte(repaired), &out))
	assert.Equal(t, []string{"go", "sql"}, out.Skills)
	assert.Equal(t, 5, out.Years)
}

func TestRepairJSONKeepsCommasInsideStrings(t *testing.T) {
	raw := `{"summary": "Go, SQL, and more,"}`
	assert.Equal(t, raw, RepairJSON(raw))
}

func TestRepairJSONValidInputUntouched(t *testing.T) {
	raw := `{"a": [1, 2, 3], "b": {"c": "d"}}`
	assert.Equal(t, raw, RepairJSON(raw))
}
