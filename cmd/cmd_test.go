package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlan = `launchers:
  - {row: 1, col: 3}
waves:
  - duration: 3000
    operations:
      - {type: fire, time: "1000", row: 2, targetCol: 9}
      - {type: fire, time: "2000", row: 2, targetCol: 9}
      - {type: plant, time: "100", row: 1, targetCol: 2}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath, outFormat, historyID, historySince, serveAddr = "", "text", "", "", ""
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestSolveCommandJSON(t *testing.T) {
	plan := writeFile(t, t.TempDir(), "plan.yaml", testPlan)
	out, err := run(t, "solve", plan, "--format", "json")
	require.NoError(t, err)

	var rep struct {
		Assignments []struct {
			Type    string `json:"type"`
			Success bool   `json:"success"`
		} `json:"assignments"`
		NextAvailable []struct {
			Position string `json:"position"`
			Time     int    `json:"time"`
		} `json:"nextAvailable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Assignments, 3)
	assert.True(t, rep.Assignments[0].Success)
	assert.False(t, rep.Assignments[1].Success)
	assert.False(t, rep.Assignments[2].Success)
	require.Len(t, rep.NextAvailable, 8)
	assert.Equal(t, "1-3", rep.NextAvailable[0].Position)
	assert.Equal(t, 4475, rep.NextAvailable[0].Time)
}

func TestSolveCommandWithHistory(t *testing.T) {
	dir := t.TempDir()
	plan := writeFile(t, dir, "level.yaml", testPlan)
	cfg := writeFile(t, dir, "config.yaml", "logging:\n  enabled: true\n  path: "+filepath.Join(dir, "solves.jsonl")+"\n")

	out, err := run(t, "-c", cfg, "solve", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "prefix 1")

	out, err = run(t, "-c", cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "level")
	assert.Contains(t, out, "1/2")

	_, err = run(t, "-c", cfg, "history", "--id", "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestHistoryRequiresLog(t *testing.T) {
	_, err := run(t, "history")
	assert.ErrorContains(t, err, "disabled")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "check", writeFile(t, dir, "plan.yaml", testPlan))
	require.NoError(t, err)
	assert.Contains(t, out, "wave 1 op 3: plant at 100")
	assert.Contains(t, out, "1 conflicting")
	assert.Contains(t, out, "final launchers: 1-3\n")

	bad := writeFile(t, dir, "bad.yaml", "launchers: [{row: 9, col: 3}]\nwaves: []\n")
	_, err = run(t, "check", bad)
	assert.Error(t, err)
}

func TestTravelCommand(t *testing.T) {
	out, err := run(t, "travel", "--col", "1", "--target", "9")
	require.NoError(t, err)
	assert.Equal(t, "359\n", out)

	_, err = run(t, "travel", "--col", "12")
	assert.Error(t, err)
}
