package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := Get()
	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)

	for _, endpoint := range data.Endpoints {
		assert.True(t, endpoint.Skip || len(endpoint.Permissions) > 0, "%s %s has neither skip nor roles", endpoint.Method, endpoint.Path)
	}
}

func TestFindPermissions(t *testing.T) {
	data, err := Parse([]byte(`{"endpoints":[
		{"path":"/v1/bookings","method":"POST","permissions":["guest"]},
		{"path":"/v1/products","method":"GET","skip":true},
		{"path":"/v1/withdrawals/{id}/decision","method":"POST","permissions":["admin"]}
	]}`))
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		method   string
		expected Permission
	}{
		{
			name:     "sub-router pattern with trailing slash",
			path:     "/v1/bookings/",
			method:   "POST",
			expected: Permission{Path: "/v1/bookings", Method: "POST", Permissions: []string{"guest"}},
		},
		{
			name:     "public endpoint",
			path:     "/v1/products",
			method:   "GET",
			expected: Permission{Path: "/v1/products", Method: "GET", Skip: true},
		},
		{
			name:     "parameterised pattern",
			path:     "/v1/withdrawals/{id}/decision",
			method:   "post",
			expected: Permission{Path: "/v1/withdrawals/{id}/decision", Method: "POST", Permissions: []string{"admin"}},
		},
		{
			name:     "method mismatch",
			path:     "/v1/products",
			method:   "DELETE",
			expected: Permission{},
		},
		{
			name:     "unknown route",
			path:     "/v1/unknown",
			method:   "GET",
			expected: Permission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, data.FindPermissions(tt.path, tt.method))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{`))
	assert.Error(t, err)
}
