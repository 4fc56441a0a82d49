package manifest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	repo "github.com/mamadbah2/shipment-tracker/internal/repository/sheets"
)

// header is the first row of every exported manifest.
var header = []interface{}{"ID", "Sender Name", "Sender Address", "Receiver Name", "Receiver Address", "Shipment Details", "Tracker ID"}

// Lister returns the shipments to mirror.
type Lister interface {
	List(ctx context.Context) ([]models.ShipmentRecord, error)
}

// Service mirrors the shipment list into a spreadsheet tab.
type Service struct {
	lister    Lister
	sheet     repo.Repository
	sheetName string
	logger    *zap.Logger
}

// NewService wires a new manifest export service.
func NewService(lister Lister, sheet repo.Repository, sheetName string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{lister: lister, sheet: sheet, sheetName: sheetName, logger: logger}
}

// Export rewrites the sheet when its content differs from the store and
// returns the number of shipments in the manifest.
func (s *Service) Export(ctx context.Context) (int, error) {
	records, err := s.lister.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load shipments: %w", err)
	}

	rows := Rows(records)
	sheetRange := quotedRange(s.sheetName)

	current, err := s.sheet.ReadRange(ctx, sheetRange)
	if err != nil {
		s.logger.Debug("manifest read failed, rewriting", zap.Error(err))
	} else if sameRows(current, rows) {
		s.logger.Debug("manifest up to date", zap.Int("shipments", len(records)))
		return len(records), nil
	}

	if err := s.sheet.ReplaceRange(ctx, sheetRange, rows); err != nil {
		return 0, fmt.Errorf("write manifest: %w", err)
	}

	s.logger.Info("manifest exported", zap.Int("shipments", len(records)), zap.String("range", sheetRange))
	return len(records), nil
}

// quotedRange builds the A1 range for the whole tab. Sheets needs the name
// quoted when it holds spaces or apostrophes.
func quotedRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'!A:G"
}

// Rows renders the header followed by one row per shipment.
func Rows(records []models.ShipmentRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, header)
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID.Hex(),
			r.Sender.Name,
			r.Sender.Address,
			r.Receiver.Name,
			r.Receiver.Address,
			r.ShipmentDetails,
			r.TrackerID,
		})
	}
	return rows
}

// sameRows compares cell text. The Sheets API drops trailing empty cells, so
// those are ignored.
func sameRows(current, want [][]interface{}) bool {
	if len(current) != len(want) {
		return false
	}
	for i := range want {
		a, b := trimRow(current[i]), trimRow(want[i])
		if len(a) != len(b) {
			return false
		}
		for j := range b {
			if fmt.Sprint(a[j]) != fmt.Sprint(b[j]) {
				return false
			}
		}
	}
	return true
}

func trimRow(row []interface{}) []interface{} {
	end := len(row)
	for end > 0 && fmt.Sprint(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
