package attendance

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

var exportHeader = []string{
	"Employee Code", "Employee Name", "Department", "Date", "Check In", "Check Out",
	"Status", "Work Hours", "Late Minutes", "Early Leave Minutes", "Notes",
}

// ExportByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportByDate(ctx context.Context, query attendance.ByDateQuery, w io.Writer) error {
	if err := query.Validate(); err != nil {
		return err
	}
	date, _ := validator.IsValidDate(query.Date)

	records, err := s.aggregator.allByDate(ctx, query.CompanyID, date, query.DepartmentID)
	if err != nil {
		return err
	}

	f, err := buildWorkbook(exportSheet, records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(sheet string, records []attendance.Attendance) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for c, v := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, rec := range records {
		resp := attendance.ToResponse(rec)
		workHours := ""
		if rec.WorkHours != nil {
			workHours = rec.WorkHours.StringFixed(2)
		}
		values := []any{
			deref(resp.EmployeeCode),
			deref(resp.EmployeeName),
			deref(resp.DepartmentName),
			resp.AttendanceDate,
			deref(resp.CheckInTime),
			deref(resp.CheckOutTime),
			resp.Status,
			workHours,
			resp.LateMinutes,
			resp.EarlyLeaveMinutes,
			deref(resp.Notes),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "C", 28)
	_ = f.SetColWidth(sheet, "D", "D", 12)
	_ = f.SetColWidth(sheet, "E", "F", 26)
	_ = f.SetColWidth(sheet, "G", "J", 12)
	_ = f.SetColWidth(sheet, "K", "K", 40)

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "K1", style)
	}

	return f, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
