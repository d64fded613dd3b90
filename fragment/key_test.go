package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocutover/open-api-specs/oaserrors"
)

func TestParseOperationKey_Equivalence(t *testing.T) {
	want := OperationKey{Method: "get", Path: "/api/endpoint"}
	descriptors := []string{
		"GET /endpoint",
		"get /endpoint",
		"GET /api/endpoint",
		"/api/endpoint/get",
		"/API/Endpoint/GET",
		"/endpoint/get",
		"endpoint/get",
		"  GET /endpoint/  ",
	}
	for _, d := range descriptors {
		t.Run(d, func(t *testing.T) {
			got, err := ParseOperationKey(d, DefaultAPIPrefix)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, "/api/endpoint/get", got.String())
		})
	}
}

func TestParseOperationKey_Invalid(t *testing.T) {
	tests := []string{
		"",
		"FETCH /endpoint",
		"/api/endpoint",
		"GET /a /b",
	}
	for _, d := range tests {
		t.Run(d, func(t *testing.T) {
			_, err := ParseOperationKey(d, DefaultAPIPrefix)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestNewOperationKey(t *testing.T) {
	tests := []struct {
		name, method, path, prefix string
		want                       OperationKey
	}{
		{"adds prefix", "POST", "/widgets/{id}", "/api", OperationKey{"post", "/api/widgets/{id}"}},
		{"keeps existing prefix", "get", "/api/widgets", "/api", OperationKey{"get", "/api/widgets"}},
		{"prefix lookalike is not prefix", "get", "/apiary", "/api", OperationKey{"get", "/api/apiary"}},
		{"root path", "get", "/", "/api", OperationKey{"get", "/api"}},
		{"no prefix", "get", "widgets/", "", OperationKey{"get", "/widgets"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewOperationKey(tt.method, tt.path, tt.prefix))
		})
	}
}

func TestIsMethod(t *testing.T) {
	for _, m := range []string{"get", "POST", "Patch", "put", "delete"} {
		assert.True(t, IsMethod(m), m)
	}
	for _, m := range []string{"head", "options", "schemas", ""} {
		assert.False(t, IsMethod(m), m)
	}
}
