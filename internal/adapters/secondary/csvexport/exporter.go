package csvexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fundraising-service/internal/core/domain"
	output "fundraising-service/internal/core/ports/output"
)

var csvHeader = []string{
	"id", "title", "description", "btc_address",
	"target_amount", "current_amount", "owner_name", "status", "created_at",
}

type csvExporter struct {
	path string
}

// NewCSVExporter creates an exporter that mirrors the full campaign table
// to a CSV file after every mutation. The file is replaced atomically so
// readers never see a partial export.
func NewCSVExporter(path string) output.CampaignExporter {
	return &csvExporter{path: path}
}

func (e *csvExporter) Export(ctx context.Context, campaigns []*domain.Campaign) error {
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(e.path), "campaigns-*.csv")
	if err != nil {
		return fmt.Errorf("create temp export: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write export header: %w", err)
	}
	for _, c := range campaigns {
		if err := w.Write(campaignRecord(c)); err != nil {
			tmp.Close()
			return fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp export: %w", err)
	}

	if err := os.Rename(tmp.Name(), e.path); err != nil {
		return fmt.Errorf("replace export: %w", err)
	}
	return nil
}

func campaignRecord(c *domain.Campaign) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Title,
		c.Description,
		c.BTCAddress,
		strconv.FormatFloat(c.TargetAmount, 'f', -1, 64),
		strconv.FormatFloat(c.CurrentAmount, 'f', -1, 64),
		c.OwnerName,
		string(c.Status),
		c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Ensure interface compliance
var _ output.CampaignExporter = (*csvExporter)(nil)
