package appointments

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

const exportSheet = "Appointments"

var exportHeader = []string{
	"ID",
	"Date",
	"Start Time",
	"Duration (min)",
	"Customer ID",
	"Services",
	"Location",
	"Address",
	"Phone",
	"Status",
	"Total Price",
	"Home Service Charge",
	"Payment Method",
	"Payment Status",
	"Transaction ID",
	"Created At",
}

var exportColumnWidths = []float64{38, 12, 10, 14, 38, 40, 10, 30, 18, 12, 12, 18, 14, 14, 24, 20}

// buildWorkbook строит XLSX с одной строкой на запись
func buildWorkbook(appointments []*domain.Appointment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F8D7E3"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %s: %w", cell, err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(exportSheet, name, name, exportColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	for i, a := range appointments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row cell: %w", err)
		}
		row := exportRow(a)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func exportRow(a *domain.Appointment) []interface{} {
	names := make([]string, 0, len(a.Services))
	for _, s := range a.Services {
		names = append(names, s.Name)
	}

	var paymentMethod, paymentStatus string
	if a.PaymentMethod != nil {
		paymentMethod = string(*a.PaymentMethod)
	}
	if a.PaymentStatus != nil {
		paymentStatus = string(*a.PaymentStatus)
	}

	return []interface{}{
		a.ID,
		a.Date.Format(domain.DateFormat),
		a.StartTime.String(),
		a.DurationMinutes,
		a.CustomerID,
		strings.Join(names, ", "),
		string(a.Location),
		ptr.Value(a.Address),
		ptr.Value(a.Phone),
		string(a.Status),
		a.TotalPrice,
		a.HomeServiceCharge,
		paymentMethod,
		paymentStatus,
		ptr.Value(a.TransactionID),
		a.CreatedAt.Format("2006-01-02 15:04"),
	}
}
