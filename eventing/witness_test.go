package eventing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyWitnessTransform(t *testing.T) {
	current := []string{"W1", "W2", "W3"}
	next, err := ApplyWitnessTransform(current, []string{"W2"}, []string{"W4"})
	require.NoError(t, err)
	require.Equal(t, []string{"W1", "W3", "W4"}, next)
}

func TestApplyWitnessTransformRejectsUnknownCut(t *testing.T) {
	_, err := ApplyWitnessTransform([]string{"W1"}, []string{"W9"}, nil)
	require.ErrorIs(t, err, ErrBadWitnessCut)
}

func TestApplyWitnessTransformRejectsCollidingAdd(t *testing.T) {
	_, err := ApplyWitnessTransform([]string{"W1", "W2"}, nil, []string{"W2"})
	require.ErrorIs(t, err, ErrBadWitnessAdd)
}

func TestCheckToadBounds(t *testing.T) {
	require.NoError(t, CheckToadBounds(0, nil))
	require.Error(t, CheckToadBounds(1, nil))
	require.NoError(t, CheckToadBounds(2, []string{"a", "b", "c"}))
	require.Error(t, CheckToadBounds(4, []string{"a", "b", "c"}))
	require.Error(t, CheckToadBounds(0, []string{"a"}))
}
