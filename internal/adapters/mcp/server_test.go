package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAreas(t *testing.T) {
	areas, err := splitAreas(map[string]interface{}{"areas": "Germany, Portugal ,Cyprus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Germany", "Portugal", "Cyprus"}, areas)
}

func TestSplitAreas_Missing(t *testing.T) {
	_, err := splitAreas(map[string]interface{}{})
	assert.Error(t, err)

	_, err = splitAreas(map[string]interface{}{"areas": " , "})
	assert.Error(t, err)
}
