package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seekwell-app/seekwell/internal/automation"
	"github.com/seekwell-app/seekwell/internal/models"
)

func TestAutomationFailureEvent(t *testing.T) {
	t.Run("missing fields carry a JSON payload", func(t *testing.T) {
		err := &automation.MissingFieldsError{Fields: []string{"phone", "visa_status"}}
		eventType, details, payload := automationFailureEvent(err)

		assert.Equal(t, models.EventAutomationMissing, eventType)
		assert.Equal(t, "missing fields: phone, visa_status", details)
		assert.JSONEq(t, `{"missing_fields":["phone","visa_status"]}`, string(payload))
	})

	t.Run("hard failure carries the error detail", func(t *testing.T) {
		eventType, details, payload := automationFailureEvent(errors.New("form not found"))

		assert.Equal(t, models.EventAutomationFailed, eventType)
		assert.Equal(t, "form not found", details)
		assert.JSONEq(t, `{"error":"form not found"}`, string(payload))
	})
}
