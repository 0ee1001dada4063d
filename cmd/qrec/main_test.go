package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/qrec/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.PathEnvVar, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTrainCommand(t *testing.T) {
	out, err := execute(t, "train", "--seed", "42", "--epochs", "200")
	require.NoError(t, err)

	assert.Contains(t, out, "Ratings:")
	assert.Contains(t, out, "Q-table:")
	assert.Contains(t, out, "to user 1")
	assert.Contains(t, out, "to user 3")
	assert.Contains(t, out, "User 2 feedback: {1: 0, 2: 1, 3: 1}")
}

func TestTrainCommandDeterministic(t *testing.T) {
	a, err := execute(t, "train", "--seed", "9", "--epochs", "50")
	require.NoError(t, err)
	b, err := execute(t, "train", "--seed", "9", "--epochs", "50")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTrainCommandZeroEpochs(t *testing.T) {
	out, err := execute(t, "train", "--seed", "1", "--epochs", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommend item 1 to user 1")
	assert.Contains(t, out, "Recommend item 1 to user 2")
	assert.Contains(t, out, "Recommend item 1 to user 3")
}

func TestTrainCommandDataFile(t *testing.T) {
	out, err := execute(t, "train", "--seed", "4", "--epochs", "10", "--data", filepath.Join("testdata", "ratings.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Recommend item")
}

func TestTrainCommandRejectsConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative_epochs", args: []string{"train", "--epochs", "-1"}},
		{name: "exploration_above_one", args: []string{"train", "--exploration-rate", "1.5"}},
		{name: "missing_data", args: []string{"train", "--data", filepath.Join("testdata", "missing.json")}},
		{name: "bad_log_level", args: []string{"train", "--log-level", "loud"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "bench", "--seed", "1", "--runs", "8", "--workers", "2", "--epochs", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "User 1: top-rated item 1")
	assert.Contains(t, out, "over 8 runs")
	assert.Contains(t, out, "Tables with negative entries: 0")

	_, err = execute(t, "bench", "--runs", "0")
	assert.Error(t, err)
}
