package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

func TestLogScanAndHistory(t *testing.T) {
	dir := t.TempDir()
	log := NewAuditLog(dir)

	require.NoError(t, log.LogScan(ScanRecord{Root: dir, Tool: "default", Violations: 2}))
	require.NoError(t, log.LogScan(ScanRecord{Root: dir, Tool: "silence", Violations: 0}))

	records, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// newest first
	assert.Equal(t, "silence", records[0].Tool)
	assert.Equal(t, "default", records[1].Tool)
	assert.NotEmpty(t, records[0].ScanID)
}

func TestLoadHistory_Missing(t *testing.T) {
	log := NewAuditLog(t.TempDir())
	_, err := log.LoadHistory()
	require.Error(t, err)
}

func TestLoadHistory_SkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	log := NewAuditLog(dir)
	require.NoError(t, log.LogScan(ScanRecord{Tool: "default"}))

	f, err := os.OpenFile(filepath.Join(dir, ".excheck_audit.jsonl"), os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, log.LogScan(ScanRecord{Tool: "breadth"}))

	records, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "breadth", records[0].Tool)
}

func TestLogPrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	log := NewAuditLog(dir)
	require.NoError(t, log.LogScan(ScanRecord{Tool: "default"}))

	_, err := os.Stat(filepath.Join(dir, ".git", "excheck_audit.jsonl"))
	assert.NoError(t, err)
}

func TestCreateScanRecord(t *testing.T) {
	viols := []types.Violation{
		{Kind: types.KindEmptyHandler},
		{Kind: types.KindEmptyHandler},
		{Kind: types.KindBroadHandler},
	}
	warns := []types.Warning{
		{Kind: types.WarnParseFailure},
		{Kind: types.WarnReadFailure},
	}

	rec := CreateScanRecord("/repo", "default", viols, warns, 10, 2*time.Second)
	assert.Equal(t, 3, rec.Violations)
	assert.Equal(t, 2, rec.KindCounts["empty-handler"])
	assert.Equal(t, 1, rec.KindCounts["broad-handler"])
	assert.Equal(t, 1, rec.ParseFailures)
	assert.Equal(t, 10, rec.FilesScanned)
	assert.Equal(t, "2s", rec.Duration)
	assert.False(t, rec.Timestamp.IsZero())
}
