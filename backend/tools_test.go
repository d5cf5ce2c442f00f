package backend

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const steelProperties = `Yield_Strength = 36000
Ultimate_Tensile_Strength = 58000

Youngs_Modulus = 29000000
Max_Elongation = 0.21
Notes = n/a
just some text
`

func TestParseProperties(t *testing.T) {
	set, err := ParseProperties(strings.NewReader(steelProperties))
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		KeyYieldStrength:           36000,
		KeyUltimateTensileStrength: 58000,
		KeyYoungsModulus:           29000000,
		KeyMaxElongation:           0.21,
	}, set.Values)

	// 空行不算错误，"Notes = n/a" 和 "just some text" 被跳过
	require.Len(t, set.Skipped, 2)
	assert.Equal(t, 6, set.Skipped[0].Line)
	assert.Equal(t, 7, set.Skipped[1].Line)
}

func TestParseProperties_Whitespace(t *testing.T) {
	set, err := ParseProperties(strings.NewReader("  Youngs_Modulus=2.9e7  \r\nMax_Elongation =0.21"))
	require.NoError(t, err)
	assert.Equal(t, 2.9e7, set.Values[KeyYoungsModulus])
	assert.Equal(t, 0.21, set.Values[KeyMaxElongation])
	assert.Empty(t, set.Skipped)
}

func TestPropertiesFromMap_Missing(t *testing.T) {
	_, err := PropertiesFromMap(map[string]float64{KeyYieldStrength: 1})

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), KeyMaxElongation)
}

func TestLoadProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steel.txt")
	require.NoError(t, os.WriteFile(path, []byte(steelProperties), 0644))

	props, set, err := LoadProperties(path)
	require.NoError(t, err)
	assert.Equal(t, steel(), props)
	assert.Len(t, set.Skipped, 2)
}

func TestLoadProperties_NotFound(t *testing.T) {
	_, _, err := LoadProperties(filepath.Join(t.TempDir(), "missing.txt"))

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMaterialValidate(t *testing.T) {
	assert.NoError(t, steel().Validate())
	assert.NoError(t, NewDefaultMaterial().Validate())

	bad := steel()
	bad.UltimateTensileStrength = 30000
	bad.YoungsModulus = -1
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than yield")
	assert.Contains(t, err.Error(), "young's modulus must be positive")
}
