package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

// ScanRecord is one line in the append-only run log: what was analyzed and
// what came out, without the per-violation detail of the report itself.
type ScanRecord struct {
	Timestamp     time.Time      `json:"timestamp"`
	ScanID        string         `json:"scan_id"`
	Root          string         `json:"root"`
	Tool          string         `json:"tool"`
	Violations    int            `json:"violations"`
	KindCounts    map[string]int `json:"kind_counts"`
	FilesScanned  int            `json:"files_scanned"`
	ParseFailures int            `json:"parse_failures"`
	Duration      string         `json:"duration"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".excheck_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "excheck_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

// LoadHistory returns recorded runs, newest first. Corrupt lines are
// skipped.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var record ScanRecord
		if err := json.Unmarshal(line, &record); err != nil {
			continue
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogScan appends one record. The log lives under .git when present so it
// is never committed by accident.
func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// CreateScanRecord summarizes a finished run for the audit log.
func CreateScanRecord(root, tool string, violations []types.Violation, warnings []types.Warning, filesScanned int, duration time.Duration) ScanRecord {
	kindCounts := make(map[string]int)
	for _, v := range violations {
		kindCounts[string(v.Kind)]++
	}
	parseFailures := 0
	for _, w := range warnings {
		if w.Kind == types.WarnParseFailure {
			parseFailures++
		}
	}

	return ScanRecord{
		Timestamp:     time.Now(),
		Root:          root,
		Tool:          tool,
		Violations:    len(violations),
		KindCounts:    kindCounts,
		FilesScanned:  filesScanned,
		ParseFailures: parseFailures,
		Duration:      duration.String(),
	}
}
