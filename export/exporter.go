// Package export builds the CF247 and AA Cars partner feeds. Each feed is
// a CSV of forecourt vehicles joined with the dealer's reconciled
// credential; dealers missing a primary advertisement id are skipped with a
// logged warning rather than failing the run.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/forecourt/go-dealers/core"
	glog "github.com/goliatone/go-logger/glog"
)

type Option func(*Exporter)

func WithLogger(logger core.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Exporter renders partner feeds from the reconciled dealer data. It only
// reads; it never calls back into credential mutation.
type Exporter struct {
	cfg    core.ExportConfig
	source core.FeedSource
	logger core.Logger
}

func NewExporter(cfg core.ExportConfig, source core.FeedSource, options ...Option) (*Exporter, error) {
	if source == nil {
		return nil, fmt.Errorf("export: feed source is required")
	}
	_, logger := glog.Resolve("dealers.export", nil, nil)
	exporter := &Exporter{
		cfg:    cfg,
		source: source,
		logger: logger,
	}
	for _, option := range options {
		if option != nil {
			option(exporter)
		}
	}
	return exporter, nil
}

// ExportFeed builds the named feed and returns a zip archive holding one
// CSV per dealer. The feed name is matched case-insensitively.
func (e *Exporter) ExportFeed(ctx context.Context, feed string) (core.FeedExportResult, error) {
	spec, fileName, err := e.resolveFeed(feed)
	if err != nil {
		return core.FeedExportResult{}, err
	}

	rows, err := e.collect(ctx, spec)
	if err != nil {
		return core.FeedExportResult{}, err
	}

	var buf bytes.Buffer
	if err := writeArchive(&buf, spec, rows.byDealer, rows.dealerOrder); err != nil {
		return core.FeedExportResult{}, fmt.Errorf("export: build %s archive: %w", spec.name, err)
	}

	result := core.FeedExportResult{
		Feed:           spec.name,
		FileName:       fileName,
		DealerCount:    len(rows.dealerOrder),
		VehicleCount:   rows.vehicleCount,
		SkippedDealers: rows.skipped,
		Archive:        buf.Bytes(),
	}
	e.logInfo(ctx, "feed export complete", map[string]any{
		"feed":          spec.name,
		"dealer_count":  result.DealerCount,
		"vehicle_count": result.VehicleCount,
		"skipped_count": len(result.SkippedDealers),
	})
	return result, nil
}

// WriteCSV streams the named feed as a single combined CSV.
func (e *Exporter) WriteCSV(ctx context.Context, feed string, w io.Writer) error {
	spec, _, err := e.resolveFeed(feed)
	if err != nil {
		return err
	}
	rows, err := e.collect(ctx, spec)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(spec.header); err != nil {
		return fmt.Errorf("export: write %s header: %w", spec.name, err)
	}
	for _, dealerID := range rows.dealerOrder {
		for _, row := range rows.byDealer[dealerID] {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("export: write %s row: %w", spec.name, err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("export: flush %s feed: %w", spec.name, err)
	}
	return nil
}

func (e *Exporter) resolveFeed(feed string) (feedSpec, string, error) {
	switch strings.TrimSpace(strings.ToLower(feed)) {
	case FeedCF247:
		return cf247Spec, fileNameOr(e.cfg.CF247FileName, "cf247_feed.csv"), nil
	case FeedAACars:
		return aacarsSpec, fileNameOr(e.cfg.AACarsFileName, "aacars_feed.csv"), nil
	}
	return feedSpec{}, "", exportValidationError(fmt.Sprintf("unknown feed %q", feed))
}

type feedRows struct {
	byDealer     map[string][][]string
	dealerOrder  []string
	skipped      []string
	vehicleCount int
}

func (e *Exporter) collect(ctx context.Context, spec feedSpec) (feedRows, error) {
	dealers, err := e.source.ListDealers(ctx)
	if err != nil {
		return feedRows{}, fmt.Errorf("export: list dealers: %w", err)
	}
	sort.Slice(dealers, func(i, j int) bool { return dealers[i].ID < dealers[j].ID })

	rows := feedRows{byDealer: map[string][][]string{}}
	for _, dealer := range dealers {
		credential, found, err := e.source.GetCredential(ctx, dealer.ID)
		if err != nil {
			return feedRows{}, fmt.Errorf("export: load credential for dealer %s: %w", dealer.ID, err)
		}
		if !found || strings.TrimSpace(credential.PrimaryID) == "" {
			rows.skipped = append(rows.skipped, dealer.ID)
			e.logWarn(ctx, "dealer skipped from feed", map[string]any{
				"feed":      spec.name,
				"dealer_id": dealer.ID,
				"reason":    "missing primary advertisement id",
			})
			continue
		}

		vehicles, err := e.source.ListForecourtVehicles(ctx, dealer.ID)
		if err != nil {
			return feedRows{}, fmt.Errorf("export: list forecourt vehicles for dealer %s: %w", dealer.ID, err)
		}

		dealerRows := make([][]string, 0, len(vehicles))
		for _, vehicle := range vehicles {
			if vehicle.Status != core.VehicleStatusForecourt {
				continue
			}
			dealerRows = append(dealerRows, spec.row(dealer, credential, vehicle))
		}
		rows.byDealer[dealer.ID] = dealerRows
		rows.dealerOrder = append(rows.dealerOrder, dealer.ID)
		rows.vehicleCount += len(dealerRows)
	}
	return rows, nil
}

func writeArchive(w io.Writer, spec feedSpec, byDealer map[string][][]string, dealerOrder []string) error {
	archive := zip.NewWriter(w)
	for _, dealerID := range dealerOrder {
		entry, err := archive.Create(fmt.Sprintf("%s_%s.csv", spec.name, dealerID))
		if err != nil {
			return err
		}
		writer := csv.NewWriter(entry)
		if err := writer.Write(spec.header); err != nil {
			return err
		}
		for _, row := range byDealer[dealerID] {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
	}
	return archive.Close()
}

func fileNameOr(configured, fallback string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return fallback
}

func (e *Exporter) logInfo(ctx context.Context, message string, fields map[string]any) {
	e.log(ctx, false, message, fields)
}

func (e *Exporter) logWarn(ctx context.Context, message string, fields map[string]any) {
	e.log(ctx, true, message, fields)
}

func (e *Exporter) log(ctx context.Context, warn bool, message string, fields map[string]any) {
	if e == nil || e.logger == nil {
		return
	}
	logger := e.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	args := make([]any, 0, len(fields)*2)
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	if warn {
		logger.Warn(message, args...)
		return
	}
	logger.Info(message, args...)
}
