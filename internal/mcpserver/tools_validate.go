package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasminify/validator"
)

type validateInput struct {
	Spec                specInput `json:"spec"                            jsonschema:"The OAS document to validate"`
	LenientDuplicateIDs bool      `json:"lenient_duplicate_ids,omitempty" jsonschema:"Downgrade duplicate-operationId findings to warnings"`
	AllowExternalRefs   bool      `json:"allow_external_refs,omitempty"   jsonschema:"Permit external $ref values"`
}

type validateIssue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	Version      string          `json:"version"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result := validator.Validate(doc,
		validator.WithLenientDuplicateIDs(input.LenientDuplicateIDs),
		validator.WithAllowExternalRefs(input.AllowExternalRefs),
	)

	output := validateOutput{
		Valid:        result.Valid,
		Version:      doc.Version.String(),
		ErrorCount:   len(result.Errors),
		WarningCount: len(result.Warnings),
	}
	output.Errors = makeSlice[validateIssue](len(result.Errors))
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, validateIssue{Path: e.Path, Message: e.Message})
	}
	output.Warnings = makeSlice[validateIssue](len(result.Warnings))
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, validateIssue{Path: w.Path, Message: w.Message})
	}
	return nil, output, nil
}
