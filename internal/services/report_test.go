package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/models"
	"github.com/GregMSThompson/store-tracker/pkg/helpers"
)

func readSheet(t *testing.T, body []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != reportSheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	rows, err := f.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestBuildReportLayout(t *testing.T) {
	loc := time.UTC
	txs := []models.Transaction{
		{Date: time.Date(2024, 3, 1, 14, 5, 9, 0, loc), InvoiceNumber: "INV-1", PaymentMode: models.PaymentCash, Amount: 500, Remarks: "walk-in"},
		{Date: time.Date(2024, 3, 2, 9, 0, 0, 0, loc), InvoiceNumber: "INV-2", PaymentMode: models.PaymentOnline, Amount: 120.5},
	}
	exps := []models.Expense{
		{Date: time.Date(2024, 3, 1, 8, 0, 0, 0, loc), Description: "wages", Category: models.CategorySalary, PaymentMode: models.PaymentCash, Amount: 200},
	}

	body, err := BuildReport(txs, exps, loc)
	if err != nil {
		t.Fatalf("BuildReport error: %v", err)
	}
	rows := readSheet(t, body)

	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d: %v", len(rows), rows)
	}
	header := []string{"Type", "Date", "Invoice/Description", "Mode", "Category", "Amount", "Remarks"}
	for i, want := range header {
		if rows[0][i] != want {
			t.Fatalf("header[%d]: got %q want %q", i, rows[0][i], want)
		}
	}

	first := rows[1]
	if first[0] != "Transaction" || first[1] != "01/03/2024, 2:05:09 pm" || first[2] != "INV-1" ||
		first[3] != "cash" || first[4] != "-" || first[5] != "500" || first[6] != "walk-in" {
		t.Fatalf("unexpected transaction row: %v", first)
	}
	if rows[2][2] != "INV-2" || rows[2][5] != "120.5" {
		t.Fatalf("transactions should keep their order: %v", rows[2])
	}

	last := rows[3]
	if last[0] != "Expense" || last[2] != "wages" || last[4] != "salary" || last[5] != "200" || last[6] != "-" {
		t.Fatalf("unexpected expense row: %v", last)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	body, err := BuildReport(nil, nil, time.UTC)
	if err != nil {
		t.Fatalf("BuildReport error: %v", err)
	}
	if rows := readSheet(t, body); len(rows) != 1 {
		t.Fatalf("expected only the header, got %v", rows)
	}
}

func TestReportFilename(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"2024-03-01", "2024-03-31", "Shop_Report_2024-03-01_to_2024-03-31.xlsx"},
		{"", "2024-03-31", "Shop_Report_all_to_2024-03-31.xlsx"},
		{"", "", "Shop_Report_all_to_all.xlsx"},
	}
	for _, tc := range cases {
		if got := ReportFilename("Shop", tc.start, tc.end); got != tc.want {
			t.Errorf("got %q want %q", got, tc.want)
		}
	}
}

type stubLedgerLoader struct {
	state models.LedgerState
	err   error
}

func (s stubLedgerLoader) Load(context.Context, dto.LedgerFilter) (models.LedgerState, error) {
	return s.state, s.err
}

func TestExportNamesAndBuildsReport(t *testing.T) {
	svc := NewReportService(stubLedgerLoader{state: models.LedgerState{
		Transactions: []models.Transaction{{InvoiceNumber: "INV-9", PaymentMode: models.PaymentCash, Amount: 1}},
	}}, "Corner", time.UTC)

	file, err := svc.Export(helpers.TestCtx(), dto.LedgerFilter{StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if file.Name != "Corner_Report_2024-01-01_to_all.xlsx" || file.ContentType != reportContentType {
		t.Fatalf("unexpected file: %s %s", file.Name, file.ContentType)
	}
	if rows := readSheet(t, file.Body); len(rows) != 2 || rows[1][2] != "INV-9" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestExportPropagatesLoadError(t *testing.T) {
	want := errors.New("boom")
	_, err := NewReportService(stubLedgerLoader{err: want}, "Corner", time.UTC).Export(helpers.TestCtx(), dto.LedgerFilter{})
	if !errors.Is(err, want) {
		t.Fatalf("expected load error, got %v", err)
	}
}
