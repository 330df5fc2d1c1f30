package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/GregMSThompson/store-tracker/internal/bootstrap"
	"github.com/GregMSThompson/store-tracker/internal/config"
	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/services"
)

var (
	app   = kingpin.New("report", "Export the store ledger as an xlsx workbook.")
	start = app.Flag("start", "First day to include (YYYY-MM-DD).").String()
	end   = app.Flag("end", "Last day to include (YYYY-MM-DD).").String()
	mode  = app.Flag("mode", "Only include entries paid this way.").Enum("cash", "online")
	out   = app.Flag("out", "Directory to write the workbook to.").Short('o').Default(".").ExistingDir()
)

type exporter interface {
	Export(ctx context.Context, f dto.LedgerFilter) (dto.ReportFile, error)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	filter := dto.LedgerFilter{StartDate: *start, EndDate: *end, PaymentMode: *mode}
	if err := run(context.Background(), config.New(), filter, *out); err != nil {
		slog.Default().Error("report failed", "error", err)
		os.Exit(1)
	}
}

// run owns the bootstrap, so its clients are closed on every return path.
func run(ctx context.Context, cfg *config.Config, filter dto.LedgerFilter, dir string) error {
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	bs, err := bootstrap.Run(cfg)
	defer func() {
		if cerr := bs.Close(); cerr != nil {
			bs.Log.Warn("failed to close clients", "error", cerr)
		}
	}()
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	ledgerSvc := services.NewLedgerService(bs.Records, bs.Location)
	reportSvc := services.NewReportService(ledgerSvc, cfg.BrandName, bs.Location)

	path, size, err := writeReport(ctx, reportSvc, filter, dir)
	if err != nil {
		return err
	}
	bs.Log.Info("report written", "path", path, "bytes", size)
	return nil
}

func writeReport(ctx context.Context, svc exporter, filter dto.LedgerFilter, dir string) (string, int, error) {
	file, err := svc.Export(ctx, filter)
	if err != nil {
		return "", 0, fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return "", 0, fmt.Errorf("write report: %w", err)
	}
	return path, len(file.Body), nil
}
