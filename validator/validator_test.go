package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasminify/document"
)

func load(t *testing.T, text string) *document.Document {
	t.Helper()
	doc, err := document.LoadBytes([]byte(text), "test.yaml")
	require.NoError(t, err)
	return doc
}

func hasFinding(t *testing.T, findings []Issue, fragment string) bool {
	t.Helper()
	for _, issue := range findings {
		if strings.Contains(issue.String(), fragment) {
			return true
		}
	}
	return false
}

const validV3 = `
openapi: 3.0.3
info: {title: Store, version: "1.0"}
paths:
  /pets/{petId}:
    get:
      operationId: getPet
      parameters:
        - name: petId
          in: path
          required: true
          schema: {type: string}
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet: {type: object}
`

func TestValidateCleanDocument(t *testing.T) {
	res := Validate(load(t, validV3))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Nil(t, res.Messages())
}

func TestTopLevelChecks(t *testing.T) {
	t.Run("missing version tag", func(t *testing.T) {
		res := Validate(load(t, `
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200': {description: ok}
`))
		// A missing version key defaults the dialect to 3.x but is still
		// a structural finding.
		assert.False(t, res.Valid)
		assert.True(t, hasFinding(t, res.Errors, "missing 'openapi'"))
	})

	t.Run("missing info fields", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {}
paths:
  /a:
    get:
      responses:
        '200': {description: ok}
`))
		assert.True(t, hasFinding(t, res.Errors, "info.title"))
		assert.True(t, hasFinding(t, res.Errors, "info.version"))
	})

	t.Run("empty paths", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths: {}
`))
		assert.True(t, hasFinding(t, res.Errors, "'paths' must not be empty"))
	})

	t.Run("missing paths", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
`))
		assert.True(t, hasFinding(t, res.Errors, "missing or invalid 'paths'"))
	})
}

func TestOperationChecks(t *testing.T) {
	t.Run("missing responses", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      operationId: getA
`))
		assert.True(t, hasFinding(t, res.Errors, "must have responses"))
	})

	t.Run("invalid response code", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '999': {description: nope}
        'default': {description: ok}
        '200': {description: ok}
`))
		assert.True(t, hasFinding(t, res.Errors, `invalid response code "999"`))
		assert.False(t, hasFinding(t, res.Errors, `"default"`))
		assert.False(t, hasFinding(t, res.Errors, `"200"`))
	})

	t.Run("response missing description", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200':
          content: {}
`))
		assert.True(t, hasFinding(t, res.Errors, "missing 'description'"))
	})

	t.Run("duplicate operationId strict vs lenient", func(t *testing.T) {
		doc := load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      operationId: sameId
      responses:
        '200': {description: ok}
  /b:
    get:
      operationId: sameId
      responses:
        '200': {description: ok}
`)
		strict := Validate(doc)
		assert.False(t, strict.Valid)
		assert.True(t, hasFinding(t, strict.Errors, "duplicate operationId"))

		lenient := Validate(doc, WithLenientDuplicateIDs(true))
		assert.True(t, lenient.Valid)
		assert.True(t, hasFinding(t, lenient.Warnings, "duplicate operationId"))
	})

	t.Run("duplicate parameters", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      parameters:
        - {name: q, in: query, schema: {type: string}}
        - {name: q, in: query, schema: {type: string}}
      responses:
        '200': {description: ok}
`))
		assert.True(t, hasFinding(t, res.Errors, "duplicate parameters"))
	})

	t.Run("path variable without parameter", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /pets/{petId}:
    get:
      responses:
        '200': {description: ok}
`))
		assert.True(t, hasFinding(t, res.Errors, "missing required path parameter {petId}"))
	})

	t.Run("path variable covered by path-level parameter", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /pets/{petId}:
    parameters:
      - {name: petId, in: path, required: true, schema: {type: string}}
    get:
      responses:
        '200': {description: ok}
`))
		assert.True(t, res.Valid)
	})

	t.Run("path parameter not required", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /pets/{petId}:
    get:
      parameters:
        - {name: petId, in: path, schema: {type: string}}
      responses:
        '200': {description: ok}
`))
		assert.True(t, hasFinding(t, res.Errors, `path parameter "petId" must be required`))
	})

	t.Run("requestBody without content", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    post:
      requestBody: {}
      responses:
        '201': {description: created}
`))
		assert.True(t, hasFinding(t, res.Errors, "requestBody without 'content'"))
	})

	t.Run("invalid field under path item", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    fetch:
      responses:
        '200': {description: ok}
    x-internal: true
    get:
      responses:
        '200': {description: ok}
`))
		assert.True(t, hasFinding(t, res.Errors, `invalid field "fetch"`))
		assert.False(t, hasFinding(t, res.Errors, "x-internal"))
	})

	t.Run("undefined security scheme", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
security:
  - rootKey: []
paths:
  /a:
    get:
      security:
        - opKey: []
      responses:
        '200': {description: ok}
`))
		assert.True(t, hasFinding(t, res.Errors, `security scheme "rootKey" not defined`))
		assert.True(t, hasFinding(t, res.Errors, `security scheme "opKey" not defined`))
	})

	t.Run("defined security scheme accepted", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      security:
        - apiKey: []
      responses:
        '200': {description: ok}
components:
  securitySchemes:
    apiKey: {type: apiKey, in: header, name: X-API-Key}
`))
		assert.True(t, res.Valid)
	})
}

func TestV2BodyParameter(t *testing.T) {
	res := Validate(load(t, `
swagger: "2.0"
info: {title: t, version: "1"}
paths:
  /a:
    post:
      parameters:
        - {name: body, in: body}
      responses:
        '201': {description: created}
`))
	assert.True(t, hasFinding(t, res.Errors, "body parameter missing 'schema'"))
}

func TestRefChecks(t *testing.T) {
	t.Run("unresolved internal ref", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Missing'
`))
		assert.True(t, hasFinding(t, res.Errors, "unresolved $ref: #/components/schemas/Missing"))
	})

	t.Run("external ref rejected by default", func(t *testing.T) {
		doc := load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: 'other.yaml#/components/schemas/Pet'
`)
		res := Validate(doc)
		assert.True(t, hasFinding(t, res.Errors, "external $ref not allowed"))

		allowed := Validate(doc, WithAllowExternalRefs(true))
		assert.True(t, allowed.Valid)
	})

	t.Run("escaped pointer tokens resolve", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/paths/~1a/get/responses/200/description'
`))
		assert.False(t, hasFinding(t, res.Errors, "unresolved"))
	})
}

func TestDiscriminatorChecks(t *testing.T) {
	t.Run("property in own properties", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200': {description: ok}
components:
  schemas:
    Pet:
      discriminator: {propertyName: kind}
      properties:
        kind: {type: string}
`))
		assert.True(t, res.Valid)
	})

	t.Run("property via composed branch", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200': {description: ok}
components:
  schemas:
    Base:
      properties:
        kind: {type: string}
    Cat:
      discriminator: {propertyName: kind}
      allOf:
        - $ref: '#/components/schemas/Base'
        - type: object
`))
		assert.True(t, res.Valid)
	})

	t.Run("missing property", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200': {description: ok}
components:
  schemas:
    Pet:
      discriminator: {propertyName: kind}
      properties:
        name: {type: string}
`))
		assert.True(t, hasFinding(t, res.Errors, `discriminator property "kind" not found`))
	})

	t.Run("missing propertyName", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200': {description: ok}
components:
  schemas:
    Pet:
      discriminator: {}
      properties:
        kind: {type: string}
`))
		assert.True(t, hasFinding(t, res.Errors, "missing 'propertyName'"))
	})

	t.Run("mapping target must resolve", func(t *testing.T) {
		res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        '200': {description: ok}
components:
  schemas:
    Pet:
      discriminator:
        propertyName: kind
        mapping:
          cat: '#/components/schemas/Cat'
      properties:
        kind: {type: string}
`))
		assert.True(t, hasFinding(t, res.Errors, "mapping target not found: #/components/schemas/Cat"))
	})
}

func TestMessagesOrdering(t *testing.T) {
	res := Validate(load(t, `
openapi: 3.0.0
info: {title: t, version: "1"}
paths:
  /a:
    get:
      operationId: dup
      responses:
        '200': {description: ok}
  /b:
    get:
      operationId: dup
      responses:
        '200': {description: ok}
`), WithLenientDuplicateIDs(true))

	msgs := res.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "⚠")
}
