package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GregMSThompson/store-tracker/internal/config"
	"github.com/GregMSThompson/store-tracker/internal/dto"
)

type stubExporter struct {
	file dto.ReportFile
	err  error
}

func (s stubExporter) Export(context.Context, dto.LedgerFilter) (dto.ReportFile, error) {
	return s.file, s.err
}

func memoryConfig() *config.Config {
	return &config.Config{Backend: config.BackendMemory, BrandName: "Shop", Timezone: "UTC"}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	svc := stubExporter{file: dto.ReportFile{Name: "Shop_Report_all_to_all.xlsx", Body: []byte("xlsx")}}

	path, size, err := writeReport(context.Background(), svc, dto.LedgerFilter{}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "Shop_Report_all_to_all.xlsx") || size != 4 {
		t.Fatalf("unexpected result path=%q size=%d", path, size)
	}
	body, err := os.ReadFile(path)
	if err != nil || string(body) != "xlsx" {
		t.Fatalf("unexpected file contents %q: %v", body, err)
	}
}

func TestWriteReportExportError(t *testing.T) {
	_, _, err := writeReport(context.Background(), stubExporter{err: errors.New("store down")}, dto.LedgerFilter{}, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "store down") {
		t.Fatalf("expected export error, got %v", err)
	}
}

func TestRunWritesWorkbook(t *testing.T) {
	dir := t.TempDir()

	if err := run(context.Background(), memoryConfig(), dto.LedgerFilter{}, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Shop_Report_all_to_all.xlsx")); err != nil {
		t.Fatalf("expected workbook on disk: %v", err)
	}
}

func TestRunReturnsFailures(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	err := run(context.Background(), memoryConfig(), dto.LedgerFilter{}, missing)
	if err == nil || !strings.Contains(err.Error(), "write report") {
		t.Fatalf("expected write error, got %v", err)
	}

	err = run(context.Background(), memoryConfig(), dto.LedgerFilter{StartDate: "yesterday"}, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "export") {
		t.Fatalf("expected export error, got %v", err)
	}

	if err := run(context.Background(), &config.Config{Backend: "sqlite"}, dto.LedgerFilter{}, t.TempDir()); err == nil {
		t.Fatal("expected configuration error")
	}
}
