package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	ledger     *Ledger
	aggregator *Aggregator
	clock      clock.Clock
	metrics    *metrics.Attendance
}

func NewAttendanceService(
	repo attendance.AttendanceRepository,
	directory attendance.Directory,
	policies attendance.PolicyConfigStore,
	clk clock.Clock,
	m *metrics.Attendance,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		ledger:     NewLedger(repo, directory, policies),
		aggregator: NewAggregator(repo, directory, policies),
		clock:      clk,
		metrics:    m,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.ledger.CheckIn(ctx, Entry{
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
		ActorID:    req.ActorID,
		At:         s.clock.Now(),
		Notes:      req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.metrics.CheckIn(string(record.Status))
	return attendance.ToResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.ledger.CheckOut(ctx, Entry{
		EmployeeID: req.EmployeeID,
		ActorID:    req.ActorID,
		At:         s.clock.Now(),
		Notes:      req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.metrics.CheckOut(string(record.Status))
	return attendance.ToResponse(record), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	record, err := s.ledger.Today(ctx, employeeID, s.clock.Now())
	if err != nil || record == nil {
		return nil, err
	}
	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// GetHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetHistory(ctx context.Context, query attendance.HistoryQuery) (attendance.ListAttendanceResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter := attendance.HistoryFilter{
		EmployeeID: query.EmployeeID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.StartDate != nil {
		start, _ := validator.IsValidDate(*query.StartDate)
		filter.StartDate = &start
	}
	if query.EndDate != nil {
		end, _ := validator.IsValidDate(*query.EndDate)
		filter.EndDate = &end
	}

	records, total, err := s.ledger.History(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return toListResponse(records, query.Page, query.PageSize, total), nil
}

// GetSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, query attendance.SummaryQuery) (attendance.SummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	if query.Month == 0 {
		loc, err := s.ledger.Location(ctx, query.EmployeeID)
		if err != nil {
			return attendance.SummaryResponse{}, err
		}
		now := s.clock.Now().In(loc)
		query.Month, query.Year = int(now.Month()), now.Year()
	}

	summary, err := s.aggregator.Summarize(ctx, query.EmployeeID, query.Month, query.Year)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return attendance.SummaryResponse{
		EmployeeID:       summary.EmployeeID,
		Month:            summary.Month,
		Year:             summary.Year,
		TotalDays:        summary.TotalDays,
		PresentDays:      summary.PresentDays,
		LateDays:         summary.LateDays,
		AbsentDays:       summary.AbsentDays,
		LeaveDays:        summary.LeaveDays,
		TotalWorkHours:   summary.TotalWorkHours,
		AverageWorkHours: summary.AverageWorkHours,
	}, nil
}

// GetByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByDate(ctx context.Context, query attendance.ByDateQuery) (attendance.ListAttendanceResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	date, _ := validator.IsValidDate(query.Date)

	records, total, err := s.aggregator.ByDate(ctx, query.CompanyID, date, query.DepartmentID, query.Page, query.PageSize)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return toListResponse(records, query.Page, query.PageSize, total), nil
}

// GetByTeam implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByTeam(ctx context.Context, query attendance.TeamQuery) (attendance.ListAttendanceResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	var date time.Time
	if query.Date == "" {
		loc, err := s.ledger.Location(ctx, query.ManagerID)
		if err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
		date = localDate(s.clock.Now(), loc)
	} else {
		date, _ = validator.IsValidDate(query.Date)
	}

	records, total, err := s.aggregator.ByTeam(ctx, query.CompanyID, query.ManagerID, date, query.Page, query.PageSize)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return toListResponse(records, query.Page, query.PageSize, total), nil
}

func toListResponse(records []attendance.Attendance, page, pageSize int, total int64) attendance.ListAttendanceResponse {
	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		items = append(items, attendance.ToResponse(r))
	}
	return attendance.ListAttendanceResponse{
		Attendances: items,
		Pagination:  pagination.NewMeta(page, pageSize, total),
	}
}
