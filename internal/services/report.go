package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/models"
	"github.com/GregMSThompson/store-tracker/pkg/logger"
)

const (
	reportSheet       = "Report"
	reportDateLayout  = "02/01/2006, 3:04:05 pm"
	reportExtension   = "xlsx"
	reportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var reportHeader = []any{"Type", "Date", "Invoice/Description", "Mode", "Category", "Amount", "Remarks"}

type ledgerLoader interface {
	Load(ctx context.Context, f dto.LedgerFilter) (models.LedgerState, error)
}

type reportService struct {
	ledger ledgerLoader
	brand  string
	loc    *time.Location
}

func NewReportService(ledger ledgerLoader, brand string, loc *time.Location) *reportService {
	if loc == nil {
		loc = time.Local
	}
	return &reportService{ledger: ledger, brand: brand, loc: loc}
}

// Export loads the filtered ledger and renders it as a workbook download.
func (s *reportService) Export(ctx context.Context, f dto.LedgerFilter) (dto.ReportFile, error) {
	state, err := s.ledger.Load(ctx, f)
	if err != nil {
		return dto.ReportFile{}, err
	}
	body, err := BuildReport(state.Transactions, state.Expenses, s.loc)
	if err != nil {
		return dto.ReportFile{}, err
	}

	name := ReportFilename(s.brand, f.StartDate, f.EndDate)
	logger.FromContext(ctx).Info("report exported",
		"file", name,
		"transactions", len(state.Transactions),
		"expenses", len(state.Expenses))

	return dto.ReportFile{
		Name:        name,
		ContentType: reportContentType,
		Body:        body,
	}, nil
}

// BuildReport writes one sheet with every transaction followed by every
// expense, each group in the order given. Amounts stay numeric.
func BuildReport(txs []models.Transaction, exps []models.Expense, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]any, 0, len(txs)+len(exps)+1)
	rows = append(rows, reportHeader)
	for _, tx := range txs {
		rows = append(rows, []any{
			"Transaction",
			reportDate(tx.Date, loc),
			tx.InvoiceNumber,
			string(tx.PaymentMode),
			"-",
			tx.Amount,
			tx.Remarks,
		})
	}
	for _, ex := range exps {
		rows = append(rows, []any{
			"Expense",
			reportDate(ex.Date, loc),
			ex.Description,
			string(ex.PaymentMode),
			string(ex.Category),
			ex.Amount,
			"-",
		})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "G1", bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportFilename follows <brand>_Report_<start>_to_<end>.xlsx with "all" for
// an open end of the range.
func ReportFilename(brand, start, end string) string {
	if start == "" {
		start = "all"
	}
	if end == "" {
		end = "all"
	}
	return fmt.Sprintf("%s_Report_%s_to_%s.%s", brand, start, end, reportExtension)
}

func reportDate(ts time.Time, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(loc).Format(reportDateLayout)
}
