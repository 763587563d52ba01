package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictFor(t *testing.T) {
	cases := []struct {
		name  string
		score float64
		want  Verdict
	}{
		{"exactly at threshold", 90, VerdictCredible},
		{"above threshold", 100, VerdictCredible},
		{"just below threshold", 89.9, VerdictNotCredible},
		{"zero", 0, VerdictNotCredible},
		{"negative", -5, VerdictNotCredible},
		{"NaN", math.NaN(), VerdictError},
		{"positive infinity", math.Inf(1), VerdictError},
		{"negative infinity", math.Inf(-1), VerdictError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerdictFor(tc.score))
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(math.NaN()))
	assert.Equal(t, 0, ClampScore(math.Inf(1)))
	assert.Equal(t, 0, ClampScore(-12))
	assert.Equal(t, 100, ClampScore(150))
	assert.Equal(t, 95, ClampScore(95))
	assert.Equal(t, 88, ClampScore(87.5))
}
