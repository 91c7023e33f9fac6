package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC)

const testRunID = "3f1c2a9e-5b7d-4c1e-9a2b-6d8e0f1a2b3c"

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		RunID:      testRunID,
		Command:    "statements",
		Variant:    "primary",
		Ledgers:    120,
		Mapped:     117,
		Unmapped:   3,
		Issues:     9,
		CommitHash: "abc1234",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "statements", entries[0].Command)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Variant = "comparison"
	e2.HasDifference = true
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "primary", entries[0].Variant)
	assert.Equal(t, "comparison", entries[1].Variant)
	assert.True(t, entries[1].HasDifference)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	got.Timestamp = original.Timestamp
	assert.Equal(t, original, got)
}

func TestRead_NotFound(t *testing.T) {
	dir := t.TempDir()
	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "run-log.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.ErrorContains(t, err, "expected 10 fields")

	row := MarshalEntry(testEntry())
	row[colRunID] = "not-a-uuid"
	_, err = UnmarshalEntry(row)
	assert.ErrorContains(t, err, "run_id")

	row = MarshalEntry(testEntry())
	row[colUnmapped] = "three"
	_, err = UnmarshalEntry(row)
	assert.ErrorContains(t, err, "unmapped")
}

func TestTimestampFormat(t *testing.T) {
	row := MarshalEntry(testEntry())
	assert.Equal(t, "2026-04-01T10:30:00Z", row[colTimestamp])
	assert.Equal(t, "false", row[colHasDifference])
}

func TestNewRunIDIsUnique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestRunsGroupsNewestFirst(t *testing.T) {
	first, second := NewRunID(), NewRunID()
	entries := []Entry{
		{RunID: first, Variant: "primary"},
		{RunID: first, Variant: "comparison"},
		{RunID: second, Variant: "primary"},
	}
	runs := Runs(entries)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0][0].RunID)
	assert.Len(t, runs[1], 2)
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
