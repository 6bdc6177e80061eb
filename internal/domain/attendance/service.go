package attendance

import (
	"context"
	"io"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetToday returns nil when the employee has not checked in today.
	GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	GetHistory(ctx context.Context, query HistoryQuery) (ListAttendanceResponse, error)
	GetSummary(ctx context.Context, query SummaryQuery) (SummaryResponse, error)

	GetByDate(ctx context.Context, query ByDateQuery) (ListAttendanceResponse, error)
	GetByTeam(ctx context.Context, query TeamQuery) (ListAttendanceResponse, error)

	// ExportByDate writes every row matching query as an XLSX workbook.
	ExportByDate(ctx context.Context, query ByDateQuery, w io.Writer) error
}
