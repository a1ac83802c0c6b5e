package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasminify/selector"
)

type operationsInput struct {
	Spec      specInput `json:"spec"                jsonschema:"The OAS document to inspect"`
	Selectors []string  `json:"selectors,omitempty" jsonschema:"Optional selector strings; when set, only matching operations are returned"`
}

type operationSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Display     string   `json:"display"`
}

type operationsOutput struct {
	Version    string             `json:"version"`
	Count      int                `json:"count"`
	Operations []operationSummary `json:"operations,omitempty"`
}

func handleOperations(_ context.Context, _ *mcp.CallToolRequest, input operationsInput) (*mcp.CallToolResult, operationsOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}

	var descs []selector.Descriptor
	if len(input.Selectors) > 0 {
		descs = selector.Select(doc, input.Selectors)
	} else {
		for _, op := range doc.Operations() {
			descs = append(descs, selector.Descriptor{
				Method:      op.Method,
				Path:        op.Path,
				OperationID: op.OperationID,
				Operation:   op,
			})
		}
	}

	output := operationsOutput{
		Version: doc.Version.String(),
		Count:   len(descs),
	}
	output.Operations = makeSlice[operationSummary](len(descs))
	for _, d := range descs {
		output.Operations = append(output.Operations, operationSummary{
			Method:      d.Method,
			Path:        d.Path,
			OperationID: d.OperationID,
			Summary:     d.Operation.Summary,
			Tags:        d.Operation.Tags,
			Display:     d.String(),
		})
	}
	return nil, output, nil
}
