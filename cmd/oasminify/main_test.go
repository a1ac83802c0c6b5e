package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `openapi: 3.0.3
info:
  title: Ticket API
  version: 1.0.0
paths:
  /tickets:
    get:
      operationId: listTickets
      summary: List tickets
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Ticket'
    post:
      operationId: createTicket
      responses:
        '201':
          description: Created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Ticket'
components:
  schemas:
    Ticket:
      type: object
      properties:
        id:
          type: string
        assignee:
          $ref: '#/components/schemas/User'
    User:
      type: object
      properties:
        name:
          type: string
`

func writeTestSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunVersionAndHelp(t *testing.T) {
	assert.Equal(t, exitOK, run([]string{"version"}))
	assert.Equal(t, exitOK, run([]string{"--version"}))
	assert.Equal(t, exitOK, run([]string{"help"}))
	assert.Equal(t, exitOK, run([]string{"-h"}))
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"unknown command", []string{"shrink"}},
		{"minify without input", []string{"minify", "--operations", "listTickets"}},
		{"minify without selectors", []string{"minify", "-i", "api.yaml"}},
		{"minify empty selectors", []string{"minify", "-i", "api.yaml", "--operations", " , "}},
		{"minify bad flag", []string{"minify", "--bogus"}},
		{"validate without file", []string{"validate"}},
		{"validate extra args", []string{"validate", "a.yaml", "b.yaml"}},
		{"operations without file", []string{"operations"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, exitUsage, run(tt.args))
		})
	}
}

func TestRunMinifyToFile(t *testing.T) {
	spec := writeTestSpec(t, testSpec)
	out := filepath.Join(t.TempDir(), "minimal.yaml")

	code := run([]string{"minify", "-i", spec, "--operations", "createTicket", "-o", out})
	require.Equal(t, exitOK, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "createTicket")
	assert.Contains(t, string(data), "Ticket")
	assert.NotContains(t, string(data), "listTickets")
}

func TestRunMinifyFailures(t *testing.T) {
	spec := writeTestSpec(t, testSpec)

	t.Run("missing input file", func(t *testing.T) {
		assert.Equal(t, exitError, run([]string{"minify", "-i", "no-such.yaml", "--operations", "x"}))
	})
	t.Run("no matching operations", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "minimal.yaml")
		assert.Equal(t, exitError, run([]string{"minify", "-i", spec, "--operations", "zzzz", "-o", out}))
		assert.NoFileExists(t, out)
	})
	t.Run("min reduction not met", func(t *testing.T) {
		assert.Equal(t, exitError, run([]string{
			"minify", "-i", spec, "--operations", "listTickets,createTicket", "--min-reduction", "99.9",
			"-o", filepath.Join(t.TempDir(), "minimal.yaml"),
		}))
	})
}

func TestRunValidate(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		spec := writeTestSpec(t, testSpec)
		assert.Equal(t, exitOK, run([]string{"validate", spec}))
	})
	t.Run("invalid document", func(t *testing.T) {
		spec := writeTestSpec(t, "openapi: 3.0.3\ninfo:\n  title: Broken\npaths: {}\n")
		assert.Equal(t, exitError, run([]string{"validate", "-q", spec}))
	})
	t.Run("missing file", func(t *testing.T) {
		assert.Equal(t, exitError, run([]string{"validate", "no-such.yaml"}))
	})
}

func TestRunOperations(t *testing.T) {
	spec := writeTestSpec(t, testSpec)

	assert.Equal(t, exitOK, run([]string{"operations", spec}))
	assert.Equal(t, exitOK, run([]string{"operations", "--match", "createTicket", spec}))
	assert.Equal(t, exitError, run([]string{"operations", "--match", "zzzz", spec}))
}

func TestSplitSelectors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "createTicket", []string{"createTicket"}},
		{"multiple with spaces", " createTicket , GET:/tickets ", []string{"createTicket", "GET:/tickets"}},
		{"empty entries dropped", ",,a,", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitSelectors(tt.input))
		})
	}
}
