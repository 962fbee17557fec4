package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.toml")
	st, err := store.Open(path)
	require.NoError(t, err)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st.SubmitScore(1200, 3, 25, at)
	st.SubmitScore(400, 1, 8, at)
	st.Unlock("first_clear")
	require.NoError(t, st.Save())
	return path
}

func exec(t *testing.T, path, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(config.Config{DataPath: path, Args: args}, strings.NewReader(input), &out)
	return out.String(), err
}

func TestUsage(t *testing.T) {
	_, err := exec(t, "", "")
	assert.ErrorIs(t, err, errUsage)

	_, err = exec(t, "", "", "bogus")
	assert.ErrorIs(t, err, errUsage)

	_, err = exec(t, "", "", "reset", "everything")
	assert.ErrorIs(t, err, errUsage)
}

func TestScores(t *testing.T) {
	out, err := exec(t, seeded(t), "", "scores")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "1200")
	assert.Contains(t, lines[2], "400")

	out, err = exec(t, "", "", "scores")
	require.NoError(t, err)
	assert.Equal(t, "no finished games\n", out)
}

func TestAchievements(t *testing.T) {
	out, err := exec(t, seeded(t), "", "achievements")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 14 unlocked")
	assert.Contains(t, out, "[x]  🌟 First Clear")
	assert.Contains(t, out, "[ ]  🎯 Four in a Row")
}

func TestResetNeedsConfirmation(t *testing.T) {
	path := seeded(t)

	out, err := exec(t, path, "n\n", "reset", "records")
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	st, err := store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1200, st.HighScore())

	out, err = exec(t, path, "y\n", "reset", "records")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure?")
	assert.Contains(t, out, "done")

	st, err = store.Open(path)
	require.NoError(t, err)
	assert.Zero(t, st.HighScore())
	assert.Empty(t, st.TopScores())
	assert.Equal(t, []string{"first_clear"}, st.Unlocked(), "achievements are kept")

	_, err = exec(t, path, "yes", "reset", "achievements")
	require.NoError(t, err)
	st, err = store.Open(path)
	require.NoError(t, err)
	assert.Empty(t, st.Unlocked())
}

func TestExportSounds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cues")

	out, err := exec(t, "", "", "sounds", dir, "harddrop", "gameover")
	require.NoError(t, err)
	assert.Contains(t, out, "900ms")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	data, err := os.ReadFile(filepath.Join(dir, "harddrop.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))

	_, err = exec(t, "", "", "sounds", dir, "kaboom")
	assert.ErrorContains(t, err, `unknown sound "kaboom"`)

	_, err = exec(t, "", "", "sounds")
	assert.ErrorIs(t, err, errUsage)
}
