package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasminify/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		expected string
	}{
		{
			name:     "error with path",
			issue:    Error("paths./pets.get", "missing required 'responses'"),
			expected: "✗ paths./pets.get: missing required 'responses'",
		},
		{
			name:     "warning with path",
			issue:    Warning("paths", "duplicate operationId: listPets"),
			expected: "⚠ paths: duplicate operationId: listPets",
		},
		{
			name:     "info without path",
			issue:    Issue{Message: "defaulting to OAS 3.x", Severity: severity.SeverityInfo},
			expected: "ℹ defaulting to OAS 3.x",
		},
		{
			name: "operation context appended",
			issue: Issue{
				Path:     "paths./pets/{petId}.get.parameters",
				Message:  "missing required path parameter '{petId}'",
				Severity: severity.SeverityError,
				Method:   "GET",
				Template: "/pets/{petId}",
			},
			expected: "✗ paths./pets/{petId}.get.parameters (GET /pets/{petId}): missing required path parameter '{petId}'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.issue.String())
		})
	}
}

func TestErrorf(t *testing.T) {
	i := Errorf("components.schemas.Pet", "unresolved $ref: %q", "#/components/schemas/Tag")
	assert.Equal(t, severity.SeverityError, i.Severity)
	assert.Equal(t, `unresolved $ref: "#/components/schemas/Tag"`, i.Message)
}

func TestMessages(t *testing.T) {
	assert.Nil(t, Messages(nil))

	list := []Issue{
		Error("a", "first"),
		Warning("b", "second"),
	}
	msgs := Messages(list)
	assert.Equal(t, []string{"✗ a: first", "⚠ b: second"}, msgs)
}

func TestCountBlocking(t *testing.T) {
	list := []Issue{
		Error("a", "blocks"),
		Warning("b", "does not"),
		{Path: "c", Message: "info", Severity: severity.SeverityInfo},
	}
	assert.Equal(t, 1, CountBlocking(list))
	assert.Equal(t, 0, CountBlocking(nil))
}
