package payrollhandler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"paycalc/internal/auth"
	"paycalc/internal/domain/payroll"
	"paycalc/internal/transport/http/api"
	"paycalc/internal/transport/http/middleware"
	"paycalc/internal/transport/http/shared"
)

// ExportRecorder counts exports by format.
type ExportRecorder interface {
	RecordExport(format string)
}

// PayslipArchive keeps a copy of every payslip handed out.
type PayslipArchive interface {
	Save(employeeID, periodID string, pdf []byte) (string, error)
}

type Handler struct {
	Service *payroll.Service
	Archive PayslipArchive
	Metrics ExportRecorder
}

// NewHandler returns a payroll API handler. archive and metrics may be nil.
func NewHandler(service *payroll.Service, archive PayslipArchive, metrics ExportRecorder) *Handler {
	return &Handler{Service: service, Archive: archive, Metrics: metrics}
}

type validateRequest struct {
	TimeEntries []payroll.TimeEntry `json:"timeEntries" validate:"required"`
}

type calculateRequest struct {
	Employee    *payroll.Employee   `json:"employee" validate:"required"`
	TimeEntries []payroll.TimeEntry `json:"timeEntries" validate:"required"`
	Period      *payroll.Period     `json:"period" validate:"required"`
}

type complianceRequest struct {
	Employee    *payroll.Employee    `json:"employee" validate:"required"`
	TimeEntries []payroll.TimeEntry  `json:"timeEntries"`
	Calculation *payroll.Calculation `json:"calculation" validate:"required"`
}

type summaryRequest struct {
	Employees    []payroll.Employee    `json:"employees" validate:"required"`
	Calculations []payroll.Calculation `json:"calculations" validate:"required"`
}

type exportRequest struct {
	Calculations []payroll.Calculation `json:"calculations" validate:"required"`
}

type runRequest struct {
	Period     *payroll.Period     `json:"period" validate:"required"`
	Timesheets []payroll.Timesheet `json:"timesheets" validate:"required,dive"`
}

type payslipRequest struct {
	Employee    *payroll.Employee    `json:"employee" validate:"required"`
	Period      *payroll.Period      `json:"period" validate:"required"`
	Calculation *payroll.Calculation `json:"calculation" validate:"required"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Post("/validate", h.handleValidate)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Post("/calculate", h.handleCalculate)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Post("/compliance", h.handleCompliance)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Post("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermPayrollExport)).Post("/export", h.handleExport)
		r.With(middleware.RequirePermission(auth.PermPayrollRun)).Post("/runs", h.handleRun)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/runs/{periodID}", h.handleGetRun)
		r.With(middleware.RequirePermission(auth.PermPayrollExport)).Post("/payslip", h.handlePayslip)
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload validateRequest
	if !decode(w, r, &payload, reqID) {
		return
	}
	api.Success(w, payroll.ValidateTimeEntries(payload.TimeEntries), reqID)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload calculateRequest
	if !decode(w, r, &payload, reqID) {
		return
	}
	calc, err := h.Service.Calculator().Calculate(*payload.Employee, payload.TimeEntries, *payload.Period)
	if err != nil {
		failDomain(w, err, reqID)
		return
	}
	api.Success(w, calc, reqID)
}

func (h *Handler) handleCompliance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload complianceRequest
	if !decode(w, r, &payload, reqID) {
		return
	}
	result := h.Service.Calculator().CheckCompliance(*payload.Employee, payload.TimeEntries, *payload.Calculation)
	api.Success(w, result, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload summaryRequest
	if !decode(w, r, &payload, reqID) {
		return
	}
	summary, err := payroll.Summarize(payload.Employees, payload.Calculations)
	if err != nil {
		failDomain(w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = payroll.FormatCSV
	}
	var payload exportRequest
	if !decode(w, r, &payload, reqID) {
		return
	}
	out, err := payroll.Export(payload.Calculations, format)
	if err != nil {
		failDomain(w, err, reqID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordExport(format)
	}

	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll.%s", format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

var exportContentTypes = map[string]string{
	payroll.FormatCSV:  "text/csv; charset=utf-8",
	payroll.FormatJSON: "application/json",
	payroll.FormatXML:  "application/xml",
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload runRequest
	if !decode(w, r, &payload, reqID) {
		return
	}
	run, err := h.Service.Run(r.Context(), *payload.Period, payload.Timesheets)
	if err != nil {
		failDomain(w, err, reqID)
		return
	}
	api.Created(w, run, reqID)
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	periodID := chi.URLParam(r, "periodID")
	calcs, err := h.Service.PeriodCalculations(r.Context(), periodID)
	if err != nil {
		failDomain(w, err, reqID)
		return
	}
	api.Success(w, calcs, reqID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload payslipRequest
	if !decode(w, r, &payload, reqID) {
		return
	}

	var buf bytes.Buffer
	if err := payroll.RenderPayslip(&buf, *payload.Employee, *payload.Period, *payload.Calculation); err != nil {
		slog.Error("render payslip failed", "err", err, "employeeId", payload.Employee.ID, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", reqID)
		return
	}
	if h.Archive != nil {
		if _, err := h.Archive.Save(payload.Employee.ID, payload.Period.ID, buf.Bytes()); err != nil {
			slog.Error("archive payslip failed", "err", err, "employeeId", payload.Employee.ID, "requestId", reqID)
			api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to store payslip", reqID)
			return
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", payload.Employee.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func decode(w http.ResponseWriter, r *http.Request, dst any, reqID string) bool {
	if !shared.DecodeJSON(w, r, dst, reqID) {
		return false
	}
	v := shared.NewValidator()
	v.Struct(dst)
	return !v.Reject(w, reqID)
}

func failDomain(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, payroll.ErrInvalidEmployeeConfig):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_employee_config", err.Error(), reqID)
	case errors.Is(err, payroll.ErrInvalidTimeEntry):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_time_entry", err.Error(), reqID)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_period", err.Error(), reqID)
	case errors.Is(err, payroll.ErrCalculationCountMismatch):
		api.Fail(w, http.StatusUnprocessableEntity, "count_mismatch", err.Error(), reqID)
	case errors.Is(err, payroll.ErrUnsupportedFormat):
		api.Fail(w, http.StatusBadRequest, "unsupported_format", err.Error(), reqID)
	case errors.Is(err, payroll.ErrRunNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "no payroll results for period", reqID)
	default:
		slog.Error("payroll request failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "payroll request failed", reqID)
	}
}
