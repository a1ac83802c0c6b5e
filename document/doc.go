// Package document loads OpenAPI Specification documents and normalizes the
// two historical dialects (OAS 2.0 "Swagger" and OAS 3.x) into a single
// addressing scheme.
//
// A loaded Document wraps the generic parsed tree and pre-classifies its
// path items and operations into typed views, so downstream packages never
// re-derive their own notion of "is this node an operation" from untyped map
// lookups. The document is immutable by convention once loaded; minification
// always builds a new tree.
//
// Version transparency is the point of this package: callers use Schemas()
// and SchemaRefName() without caring whether the underlying container is
// components.schemas or definitions.
package document
