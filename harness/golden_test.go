package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden(t *testing.T) {
	s, err := LoadScenarioFile("testdata/counter_basic.yaml")
	require.NoError(t, err)

	res, err := RunWithGolden(t, s, counterReducer(t))
	require.NoError(t, err)
	assert.True(t, res.Pass, "errors: %v", res.Errors)
}
