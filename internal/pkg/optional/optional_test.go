package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Manager     String `json:"manager"`
	Description String `json:"description"`
}

func TestString_UnmarshalJSON(t *testing.T) {
	t.Run("absent key", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Manager.Set)
		assert.Nil(t, p.Manager.Ptr())
	})

	t.Run("explicit null", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"manager":null}`), &p))
		assert.True(t, p.Manager.Set)
		assert.False(t, p.Manager.Valid)
		assert.False(t, p.Description.Set)
	})

	t.Run("empty string clears", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"manager":""}`), &p))
		assert.True(t, p.Manager.Set)
		assert.False(t, p.Manager.Valid)
	})

	t.Run("value", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"manager":"abc","description":"Core team"}`), &p))
		assert.True(t, p.Manager.Valid)
		require.NotNil(t, p.Manager.Ptr())
		assert.Equal(t, "abc", *p.Manager.Ptr())
		assert.Equal(t, "Core team", p.Description.Value)
	})

	t.Run("wrong type", func(t *testing.T) {
		var p patch
		assert.Error(t, json.Unmarshal([]byte(`{"manager":42}`), &p))
	})
}

func TestString_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(patch{Manager: Of("abc"), Description: Null()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"manager":"abc","description":null}`, string(out))
}
