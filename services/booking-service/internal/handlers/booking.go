package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/slothold/libs/httpx"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/booking"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/lease"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/tzclock"
)

type BookingHandler struct {
	desk   *booking.Desk
	logger *slog.Logger
}

func NewBookingHandler(desk *booking.Desk, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{desk: desk, logger: logger}
}

// Register mounts the booking routes on mux.
func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/public/slots", h.Slots)
	mux.HandleFunc("/api/v1/holds", h.CreateHold)
	mux.HandleFunc("/api/v1/holds/status", h.HoldStatus)
	mux.HandleFunc("/api/v1/holds/finalize", h.Finalize)
	mux.HandleFunc("/api/v1/holds/release", h.Release)
	mux.HandleFunc("/api/v1/appointments", h.List)
	mux.HandleFunc("/api/v1/appointments/cancel", h.Cancel)
}

type slotItem struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type createHoldRequest struct {
	ServiceID       string `json:"service_id"`
	ResourceID      string `json:"resource_id"`
	SessionID       string `json:"session_id"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type createHoldResponse struct {
	HoldID    string `json:"hold_id"`
	ExpiresAt string `json:"expires_at"`
}

type holdStatusResponse struct {
	HoldID     string `json:"hold_id"`
	ServiceID  string `json:"service_id"`
	ResourceID string `json:"resource_id,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
	ExpiresAt  string `json:"expires_at"`
}

type finalizeRequest struct {
	HoldID        string `json:"hold_id"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	PriceCents    *int64 `json:"price_cents"`
	// AutoConfirm defaults to true.
	AutoConfirm *bool `json:"auto_confirm"`
}

type finalizeResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
}

type releaseRequest struct {
	HoldID string `json:"hold_id"`
}

type cancelRequest struct {
	AppointmentID string `json:"appointment_id"`
	Reason        string `json:"reason"`
}

type listAppointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	HoldID        string `json:"hold_id"`
	ServiceID     string `json:"service_id"`
	ResourceID    string `json:"resource_id,omitempty"`
	CustomerID    string `json:"customer_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	PriceCents    int64  `json:"price_cents"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	serviceID := strings.TrimSpace(q.Get("service_id"))
	dateStr := strings.TrimSpace(q.Get("date"))
	if serviceID == "" || dateStr == "" {
		h.writeError(w, r, invalid("service_id and date are required"))
		return
	}
	date, err := tzclock.ParseDate(dateStr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slots, err := h.desk.Slots(r.Context(), booking.SlotQuery{
		ServiceID:  serviceID,
		ResourceID: strings.TrimSpace(q.Get("resource_id")),
		Date:       date,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]slotItem, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, slotItem{StartTime: formatTime(s.Start), EndTime: formatTime(s.End)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req createHoldRequest
	if !h.decode(w, r, &req) {
		return
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		h.writeError(w, r, invalid("invalid start_time"))
		return
	}

	hold, err := h.desk.PlaceHold(r.Context(), holds.CreateHoldInput{
		ServiceID:       strings.TrimSpace(req.ServiceID),
		ResourceID:      strings.TrimSpace(req.ResourceID),
		SessionID:       strings.TrimSpace(req.SessionID),
		Start:           start,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createHoldResponse{HoldID: hold.ID, ExpiresAt: formatTime(hold.ExpiresAt)})
}

func (h *BookingHandler) HoldStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	holdID := strings.TrimSpace(r.URL.Query().Get("hold_id"))
	if holdID == "" {
		h.writeError(w, r, invalid("hold_id is required"))
		return
	}
	hold, err := h.desk.GetHold(r.Context(), holdID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, holdStatusResponse{
		HoldID:     hold.ID,
		ServiceID:  hold.ServiceID,
		ResourceID: hold.ResourceID,
		StartTime:  formatTime(hold.Start),
		EndTime:    formatTime(hold.End()),
		Status:     string(hold.Status),
		ExpiresAt:  formatTime(hold.ExpiresAt),
	})
}

func (h *BookingHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req finalizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	autoConfirm := true
	if req.AutoConfirm != nil {
		autoConfirm = *req.AutoConfirm
	}

	appt, err := h.desk.Finalize(r.Context(), booking.FinalizeRequest{
		HoldID:     strings.TrimSpace(req.HoldID),
		CustomerID: strings.TrimSpace(req.CustomerID),
		Customer: model.Customer{
			Name:  strings.TrimSpace(req.CustomerName),
			Email: strings.TrimSpace(req.CustomerEmail),
			Phone: strings.TrimSpace(req.CustomerPhone),
		},
		PriceCents:  req.PriceCents,
		AutoConfirm: autoConfirm,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, finalizeResponse{AppointmentID: appt.ID, Status: appt.Status})
}

func (h *BookingHandler) Release(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req releaseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.desk.ReleaseHold(r.Context(), strings.TrimSpace(req.HoldID)); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	dateStr := strings.TrimSpace(q.Get("date"))
	if dateStr == "" {
		h.writeError(w, r, invalid("date is required"))
		return
	}
	date, err := tzclock.ParseDate(dateStr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tz := strings.TrimSpace(q.Get("tz"))
	if tz == "" {
		tz = "UTC"
	}

	appts, err := h.desk.AppointmentsOn(r.Context(), date, tz)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]listAppointmentItem, 0, len(appts))
	for _, a := range appts {
		item := listAppointmentItem{
			AppointmentID: a.ID,
			HoldID:        a.HoldID,
			ServiceID:     a.ServiceID,
			ResourceID:    a.ResourceID,
			CustomerID:    a.CustomerID,
			StartTime:     formatTime(a.Start),
			EndTime:       formatTime(a.End()),
			PriceCents:    a.PriceCents,
			Status:        a.Status,
			CreatedAt:     formatTime(a.CreatedAt),
		}
		if a.CancelledAt != nil {
			item.CancelledAt = formatTime(*a.CancelledAt)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req cancelRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.desk.CancelAppointment(r.Context(), strings.TrimSpace(req.AppointmentID), strings.TrimSpace(req.Reason)); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointment_id": req.AppointmentID, "status": model.AppointmentCancelled})
}

func (h *BookingHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, invalid("invalid json body"))
		return false
	}
	return true
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code model.Code) int {
	switch code {
	case model.CodeOverlap:
		return http.StatusConflict
	case model.CodeHoldExpired:
		return http.StatusGone
	case model.CodeHoldNotFound, model.CodeServiceNotFound, model.CodeAppointmentNotFound:
		return http.StatusNotFound
	case model.CodeInvalidArgument:
		return http.StatusBadRequest
	case model.CodeHoldInactive, model.CodeServiceInactive:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := model.CodeOf(err)
	status := StatusFor(code)
	msg := err.Error()
	if errors.Is(err, lease.ErrBusy) {
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msg})
		return
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "err", err, "path", r.URL.Path,
			"request_id", httpx.RequestIDFromContext(r.Context()))
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: string(code), Error: msg})
}

func invalid(msg string) error {
	return &model.Error{Code: model.CodeInvalidArgument, Message: msg}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
