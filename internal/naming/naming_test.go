package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"simple collection", "get", "/pets", "Get Pets"},
		{"path parameter", "get", "/pets/{petId}", "Get Pets By Pet Id"},
		{"nested resources", "post", "/users/{userId}/orders", "Post Users By User Id Orders"},
		{"kebab segment", "get", "/order-items", "Get Order Items"},
		{"uppercase method", "DELETE", "/pets/{petId}", "Delete Pets By Pet Id"},
		{"root path", "get", "/", "Get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.method, tt.path))
		})
	}
}

func TestSyntheticID(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"simple collection", "get", "/pets", "getPets"},
		{"path parameter", "get", "/pets/{petId}", "getPetsByPetId"},
		{"snake segment", "post", "/user_sessions", "postUserSessions"},
		{"root path", "get", "/", "get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SyntheticID(tt.method, tt.path))
		})
	}
}
