package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name    Optional[string]   `json:"name"`
	Logo    Optional[string]   `json:"logo_name"`
	Tags    Optional[[]string] `json:"tags"`
	Visible Optional[bool]     `json:"is_discoverable"`
}

func TestOptional_UnsetNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"ABC","logo_name":null,"tags":["a","b"]}`), &p))

	assert.True(t, p.Name.Set)
	assert.False(t, p.Name.Null)
	assert.Equal(t, "ABC", p.Name.Value)

	assert.True(t, p.Logo.Set)
	assert.True(t, p.Logo.Null)
	assert.Empty(t, p.Logo.Value)

	assert.Equal(t, []string{"a", "b"}, p.Tags.Value)

	assert.False(t, p.Visible.Set)
}

func TestOptional_InvalidValue(t *testing.T) {
	var p patch
	assert.Error(t, json.Unmarshal([]byte(`{"is_discoverable":"yes"}`), &p))
}

func TestOptional_Marshal(t *testing.T) {
	b, err := json.Marshal(patch{Name: Optional[string]{Set: true, Value: "x"}, Logo: Optional[string]{Set: true, Null: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","logo_name":null,"tags":null,"is_discoverable":null}`, string(b))
}
