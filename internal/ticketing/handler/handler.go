// Package handler is the thin HTTP layer over the ticketing service. It
// parses requests, delegates to the service, and maps errors to JSON
// envelopes; business logic stays out of this package.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticketledger/internal/ticketing/models"
	"ticketledger/internal/ticketing/service"
	id "ticketledger/pkg/domain"
	dErrors "ticketledger/pkg/domain-errors"
)

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register wires the caller-facing routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events", h.handleCreateEvent)
	r.Get("/events/{eventID}", h.handleGetEvent)
	r.Post("/tickets", h.handleBuyTicket)
	r.Get("/tickets/{ticketID}", h.handleGetTicket)
	r.Post("/tickets/{ticketID}/redeem", h.handleRedeemTicket)
	r.Get("/config/platform-fee", h.handleGetPlatformFee)
	r.Get("/config/discount-rate", h.handleGetDiscountRate)
	r.Get("/config/ticket-count", h.handleGetTicketCount)
}

// RegisterAdmin wires the owner-only configuration routes. Authorization is
// enforced by the service, not the router, so the gate cannot be bypassed by
// alternative transports.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/escrow", h.handleSetEscrow)
	r.Post("/admin/platform-fee", h.handleSetPlatformFee)
	r.Post("/admin/discount-rate", h.handleSetDiscountRate)
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	req.Normalize()

	event, err := h.svc.CreateEvent(r.Context(), id.EventID(req.EventID), req.TicketPrice, req.TotalTickets)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, event)
}

func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	event, err := h.svc.GetEventDetails(r.Context(), eventID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, event)
}

func (h *Handler) handleBuyTicket(w http.ResponseWriter, r *http.Request) {
	var req models.BuyTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	req.Normalize()

	receipt, err := h.svc.BuyTicket(r.Context(), req.OrgID, id.EventID(req.EventID), req.ApplyDiscount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := id.ParseTicketID(chi.URLParam(r, "ticketID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ticket, err := h.svc.GetTicket(r.Context(), ticketID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) handleRedeemTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := id.ParseTicketID(chi.URLParam(r, "ticketID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ticket, err := h.svc.RedeemTicket(r.Context(), ticketID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) handleSetEscrow(w http.ResponseWriter, r *http.Request) {
	var req models.SetEscrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.SetEscrowPrincipal(r.Context(), id.Principal(req.Principal)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleSetPlatformFee(w http.ResponseWriter, r *http.Request) {
	var req models.SetPlatformFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	if err := h.svc.SetPlatformFee(r.Context(), req.Fee); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleSetDiscountRate(w http.ResponseWriter, r *http.Request) {
	var req models.SetDiscountRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	if err := h.svc.SetDiscountRate(r.Context(), req.Rate); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleGetPlatformFee(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]int64{"platform_fee": h.svc.PlatformFee(r.Context())})
}

func (h *Handler) handleGetDiscountRate(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]int64{"discount_rate": h.svc.DiscountRate(r.Context())})
}

func (h *Handler) handleGetTicketCount(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]uint64{"ticket_count": h.svc.TicketCount(r.Context())})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("encode response", "error", err)
	}
}

// errorEnvelope is the JSON error body. Ledger failures carry their stable
// integer wire code; infrastructure and validation errors carry only the
// symbolic code.
type errorEnvelope struct {
	Error   int    `json:"error,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var le *models.LedgerError
	if errors.As(err, &le) {
		h.writeJSON(w, le.Code.HTTPStatus(), errorEnvelope{
			Error:   int(le.Code),
			Code:    le.Code.String(),
			Message: le.Message,
		})
		return
	}

	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if status >= http.StatusInternalServerError && h.logger != nil {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	message := "internal error"
	var de *dErrors.Error
	if errors.As(err, &de) && status < http.StatusInternalServerError {
		message = de.Message
	}
	h.writeJSON(w, status, errorEnvelope{Code: string(code), Message: message})
}
