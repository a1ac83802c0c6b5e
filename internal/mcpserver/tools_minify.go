package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasminify/minifier"
)

type minifyInput struct {
	Spec                specInput `json:"spec"                            jsonschema:"The OAS document to minify"`
	Operations          []string  `json:"operations"                      jsonschema:"Operation selectors: operationId, 'METHOD /path', 'METHOD:/path', bare path, or free text"`
	Output              string    `json:"output,omitempty"                jsonschema:"Write the minimal document to this path (0600) instead of returning it inline. JSON when the extension is .json, YAML otherwise."`
	NoDescriptions      bool      `json:"no_descriptions,omitempty"       jsonschema:"Strip description fields from extracted schemas"`
	NoExamples          bool      `json:"no_examples,omitempty"           jsonschema:"Strip example fields from extracted schemas"`
	NoSecurity          bool      `json:"no_security,omitempty"           jsonschema:"Do not copy security schemes and requirements into the output"`
	LenientDuplicateIDs bool      `json:"lenient_duplicate_ids,omitempty" jsonschema:"Downgrade duplicate-operationId findings to warnings"`
	AllowExternalRefs   bool      `json:"allow_external_refs,omitempty"   jsonschema:"Permit external $ref values (they are still never followed)"`
}

type minifyMetrics struct {
	OriginalLines    int     `json:"original_lines"`
	MinifiedLines    int     `json:"minified_lines"`
	ReductionPercent float64 `json:"reduction_percent"`
	Operations       int     `json:"operations"`
	Schemas          int     `json:"schemas"`
}

type minifyOutput struct {
	Success    bool           `json:"success"`
	Operations []string       `json:"operations,omitempty"`
	Schemas    []string       `json:"schemas,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
	Metrics    *minifyMetrics `json:"metrics,omitempty"`
	Cycles     [][]string     `json:"cycles,omitempty"`
	Document   string         `json:"document,omitempty"`
	WrittenTo  string         `json:"written_to,omitempty"`
}

func handleMinify(_ context.Context, _ *mcp.CallToolRequest, input minifyInput) (*mcp.CallToolResult, minifyOutput, error) {
	if len(input.Operations) == 0 {
		return errResult(fmt.Errorf("operations is required")), minifyOutput{}, nil
	}
	data, sourcePath, err := input.Spec.load()
	if err != nil {
		return errResult(err), minifyOutput{}, nil
	}

	result := minifier.MinifyBytes(data, sourcePath, input.Operations,
		minifier.WithIncludeDescriptions(!input.NoDescriptions),
		minifier.WithIncludeExamples(!input.NoExamples),
		minifier.WithPreserveSecurity(!input.NoSecurity),
		minifier.WithLenientDuplicateIDs(input.LenientDuplicateIDs),
		minifier.WithAllowExternalRefs(input.AllowExternalRefs),
	)

	output := minifyOutput{
		Success:    result.Success,
		Operations: result.Operations,
		Schemas:    result.Schemas,
		Errors:     result.Errors,
		Warnings:   result.Warnings,
	}
	if result.Analysis != nil {
		output.Cycles = result.Analysis.Cycles
	}
	if result.Metrics != nil {
		output.Metrics = &minifyMetrics{
			OriginalLines:    result.Metrics.OriginalLines,
			MinifiedLines:    result.Metrics.MinifiedLines,
			ReductionPercent: result.Metrics.ReductionPercent,
			Operations:       result.Metrics.MinifiedOperations,
			Schemas:          result.Metrics.MinifiedSchemas,
		}
	}
	if !result.Success {
		return nil, output, nil
	}

	if input.Output != "" {
		if err := minifier.WriteResult(result, input.Output); err != nil {
			return errResult(err), minifyOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}

	text, err := minifier.MarshalResult(result, sourcePath)
	if err != nil {
		return errResult(err), minifyOutput{}, nil
	}
	output.Document = string(text)
	return nil, output, nil
}
