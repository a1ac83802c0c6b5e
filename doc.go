// Package oasminify extracts minimal, self-contained OpenAPI Specification
// documents from large ones, given a list of operations to keep.
//
// Agents and tooling that consume machine-readable API contracts often choke
// on multi-thousand-line documents. oasminify selects exactly the operations
// you ask for plus every schema those operations transitively reference, and
// reassembles them into a new document that is structurally valid on its own.
//
// # Overview
//
// The library consists of the following packages:
//
//   - document: load OAS documents (YAML or JSON), detect the dialect
//     version (2.0 vs 3.x), and expose a version-transparent view of the
//     schema container and path items
//   - selector: resolve user-supplied operation identifiers (operationId,
//     "METHOD /path", bare paths, or free text) into concrete operations
//   - resolver: compute the transitive closure of schema names required by
//     a set of operations, including cyclic and polymorphic schemas
//   - extractor: deep-copy only the required schema definitions
//   - assembler: recombine selected operations and extracted schemas into a
//     minimal document
//   - validator: check input and output documents for structural consistency
//   - minifier: the pipeline orchestrator tying the above together
//
// Both OAS 2.0 (Swagger) and OAS 3.x documents are supported; the engine
// addresses #/definitions/X and #/components/schemas/X transparently.
//
// # Quick Start
//
// Minify a specification for a single operation:
//
//	import "github.com/erraggy/oasminify/minifier"
//
//	result := minifier.Minify("openapi.yaml", []string{"createIssue"})
//	if !result.Success {
//		for _, e := range result.Errors {
//			fmt.Println(e)
//		}
//		os.Exit(1)
//	}
//	fmt.Printf("kept %d operations, %d schemas (%.1f%% smaller)\n",
//		len(result.Operations), len(result.Schemas), result.Metrics.ReductionPercent)
//	if err := minifier.WriteResult(result, "minimal.yaml"); err != nil {
//		log.Fatal(err)
//	}
//
// Operation selectors may be operationIds ("createIssue"), method and path
// pairs ("POST:/issues" or "POST /issues"), bare paths ("/issues", selecting
// every method), or free text matched fuzzily against operation metadata.
//
// # Guarantees
//
// Every document the minifier emits satisfies:
//
//   - Self-containment: every internal $ref resolves within the emitted
//     document; there are never dangling references
//   - Closure exactness: the emitted schema set is exactly the transitive
//     closure of the selected operations' schema references
//   - Selection exactness: paths contain only the selected (path, method)
//     pairs, with path-level shared parameters preserved
//
// Cyclic schema references (A -> B -> A) are handled without error; both
// schemas land in the output exactly once. Detected cycles are reported in
// Result.Analysis for diagnostic purposes.
//
// # Command-Line Interface
//
// In addition to the library packages, oasminify provides a CLI:
//
//	# Minify a spec down to two operations
//	oasminify minify -i api.yaml --operations createTask,updateTask -o minimal.yaml
//
//	# Validate a spec
//	oasminify validate openapi.yaml
//
//	# List the operations a spec defines
//	oasminify operations openapi.yaml
//
//	# Serve the minifier as MCP tools over stdio
//	oasminify mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/oasminify/cmd/oasminify@latest
//
// Exit codes: 0 on success, 1 on any pipeline failure (parse error,
// validation failure, empty selection), 2 on usage errors.
//
// # Error Handling
//
// The orchestrator never lets failures escape as panics: every stage failure
// is accumulated into Result.Errors, and callers always receive a structured
// Result. Programmatic error categories (parse, validation, selection,
// configuration) are available in the oaserrors package for use with
// errors.Is and errors.As.
package oasminify
