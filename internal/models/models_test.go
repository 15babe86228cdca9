package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantBelongsTo(t *testing.T) {
	owner := uint64(1)

	assert.True(t, TenantBelongsTo(&Tenant{OwnerID: &owner}, 1))
	assert.False(t, TenantBelongsTo(&Tenant{OwnerID: &owner}, 2))
	assert.False(t, TenantBelongsTo(&Tenant{}, 1))
	assert.False(t, TenantBelongsTo(nil, 1))
}

func TestTemplateBelongsTo(t *testing.T) {
	owner := uint64(1)
	template := &TemplateSetting{Tenant: &Tenant{OwnerID: &owner}}

	assert.True(t, TemplateBelongsTo(template, 1))
	assert.False(t, TemplateBelongsTo(template, 2))
	assert.False(t, TemplateBelongsTo(&TemplateSetting{}, 1))
}

func TestJSONMap_Scan(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"theme":{"color":"blue"},"copies":2,"id":9007199254740993}`)))
	assert.Equal(t, "blue", m["theme"].(map[string]interface{})["color"])
	assert.Equal(t, json.Number("2"), m["copies"])
	assert.Equal(t, json.Number("9007199254740993"), m["id"])

	v, err := m.Value()
	require.NoError(t, err)
	assert.Contains(t, v, `"id":9007199254740993`)

	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)

	assert.Error(t, m.Scan([]byte(`[1,2]`)))
}

func TestJSONMap_ValueOfNil(t *testing.T) {
	var m JSONMap
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}
