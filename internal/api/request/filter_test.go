package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParams_Search(t *testing.T) {
	r := httptest.NewRequest("GET", "/sites/?q=ashburn&limit=10", nil)
	p := ParseListParams(r)
	assert.Equal(t, "ashburn", p.Search)
	assert.Equal(t, 10, p.Limit)
}

func TestOptionalIDParam_Absent(t *testing.T) {
	r := httptest.NewRequest("GET", "/racks/", nil)
	id, err := OptionalIDParam(r, "site_id")
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestOptionalIDParam_Valid(t *testing.T) {
	r := httptest.NewRequest("GET", "/racks/?site_id=12", nil)
	id, err := OptionalIDParam(r, "site_id")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(12), *id)
}

func TestOptionalIDParam_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"non-numeric", "abc"},
		{"zero", "0"},
		{"negative", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/racks/?site_id="+tt.value, nil)
			_, err := OptionalIDParam(r, "site_id")
			assert.Error(t, err)
		})
	}
}

func TestOptionalIntParam_Valid(t *testing.T) {
	r := httptest.NewRequest("GET", "/vlans/?vid=100", nil)
	v, err := OptionalIntParam(r, "vid")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 100, *v)
}

func TestOptionalIntParam_Invalid(t *testing.T) {
	r := httptest.NewRequest("GET", "/vlans/?vid=abc", nil)
	_, err := OptionalIntParam(r, "vid")
	assert.Error(t, err)
}
