package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	ByDate(w http.ResponseWriter, r *http.Request)
	ExportByDate(w http.ResponseWriter, r *http.Request)
	Team(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

type notesBody struct {
	Notes *string `json:"notes"`
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var body notesBody
	if err := decodeJSON(w, r, &body, true); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), attendance.CheckInRequest{
		EmployeeID: *p.EmployeeID,
		CompanyID:  p.CompanyID,
		ActorID:    p.UserID,
		Notes:      body.Notes,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var body notesBody
	if err := decodeJSON(w, r, &body, true); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), attendance.CheckOutRequest{
		EmployeeID: *p.EmployeeID,
		ActorID:    p.UserID,
		Notes:      body.Notes,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Today implements AttendanceHandler. No record yet is a 200 with null data.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), *p.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.Success(w, nil)
		return
	}
	response.Success(w, result)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetHistory(r.Context(), attendance.HistoryQuery{
		EmployeeID: *p.EmployeeID,
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Page:       queryInt(r, "page"),
		PageSize:   queryInt(r, "page_size"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := attendance.SummaryQuery{EmployeeID: *p.EmployeeID}
	params := []struct {
		key string
		dst *int
	}{
		{"month", &query.Month},
		{"year", &query.Year},
	}
	for _, param := range params {
		key, dst := param.key, param.dst
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{key: key + " must be a number"})
			return
		}
		*dst = v
	}

	result, err := h.attendanceService.GetSummary(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func byDateQuery(r *http.Request, companyID string) attendance.ByDateQuery {
	return attendance.ByDateQuery{
		CompanyID:    companyID,
		Date:         r.URL.Query().Get("date"),
		DepartmentID: queryString(r, "department_id"),
		Page:         queryInt(r, "page"),
		PageSize:     queryInt(r, "page_size"),
	}
}

// ByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ByDate(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetByDate(r.Context(), byDateQuery(r, p.CompanyID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportByDate implements AttendanceHandler. The workbook is buffered so a
// failure can still be reported as JSON.
func (h *attendanceHandlerImpl) ExportByDate(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := byDateQuery(r, p.CompanyID)
	var buf bytes.Buffer
	if err := h.attendanceService.ExportByDate(r.Context(), query, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, query.Date))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("attendance export write failed", "error", err)
	}
}

// Team implements AttendanceHandler. The caller is the manager.
func (h *attendanceHandlerImpl) Team(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetByTeam(r.Context(), attendance.TeamQuery{
		CompanyID: p.CompanyID,
		ManagerID: *p.EmployeeID,
		Date:      r.URL.Query().Get("date"),
		Page:      queryInt(r, "page"),
		PageSize:  queryInt(r, "page_size"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
