package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeOrdering(t *testing.T) {
	assert.True(t, GradeAPlus.Better(GradeA))
	assert.True(t, GradeA.Better(GradeB))
	assert.True(t, GradeB.Better(GradeC))
	assert.True(t, GradeC.Better(GradeD))
	assert.True(t, GradeD.Better(GradeF))
	assert.False(t, GradeF.Better(GradeF))
}

func TestGradeDowngrade(t *testing.T) {
	assert.Equal(t, GradeA, GradeAPlus.Downgrade())
	assert.Equal(t, GradeB, GradeA.Downgrade())
	assert.Equal(t, GradeF, GradeD.Downgrade())
	assert.Equal(t, GradeF, GradeF.Downgrade())
}

func TestMinGrade(t *testing.T) {
	assert.Equal(t, GradeB, MinGrade(GradeA, GradeB))
	assert.Equal(t, GradeB, MinGrade(GradeB, GradeAPlus))
	assert.Equal(t, GradeF, MinGrade(GradeF, GradeF))
}

func TestParseGrade(t *testing.T) {
	for _, s := range []string{"A+", "A", "B", "C", "D", "F"} {
		g, err := ParseGrade(s)
		require.NoError(t, err)
		assert.Equal(t, s, g.String())
	}

	_, err := ParseGrade("E")
	assert.Error(t, err)
}

func TestGradeJSON(t *testing.T) {
	b, err := json.Marshal(GradeAPlus)
	require.NoError(t, err)
	assert.Equal(t, `"A+"`, string(b))

	var g Grade
	require.NoError(t, json.Unmarshal([]byte(`"C"`), &g))
	assert.Equal(t, GradeC, g)

	assert.Error(t, json.Unmarshal([]byte(`"Z"`), &g))
}
