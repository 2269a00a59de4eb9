package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"lendly/internal/apperrors"
	"lendly/internal/domain"
	"lendly/internal/service"
)

type RequestHandler struct {
	bookings service.BookingService
}

func NewRequestHandler(bookings service.BookingService) *RequestHandler {
	return &RequestHandler{bookings: bookings}
}

type createRequestBody struct {
	ItemID    string           `json:"itemID"`
	TimeFrame domain.DateRange `json:"timeFrame"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if !decodeBody(w, r, &body) {
		return
	}

	req, err := h.bookings.CreateRequest(r.Context(), userID(r), body.ItemID, body.TimeFrame)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.bookings.GetRequest(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// ListToUser is the owner-side inbox; requests are expanded with the
// requester and item so the list renders without extra round trips.
func (h *RequestHandler) ListToUser(w http.ResponseWriter, r *http.Request) {
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	reqs, err := h.bookings.ListRequestsToUser(r.Context(), userID(r), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *RequestHandler) ListFromUser(w http.ResponseWriter, r *http.Request) {
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	reqs, err := h.bookings.ListRequestsFromUser(r.Context(), userID(r), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

type acceptRequestBody struct {
	Deposit *domain.Price `json:"deposit"`
}

// Accept tolerates an absent body; the deposit override is optional and
// the body may arrive chunked, so decoding keys off io.EOF rather than
// Content-Length.
func (h *RequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var body acceptRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, apperrors.NewFormat("malformed request body", err))
		return
	}

	req, err := h.bookings.ApproveRequest(r.Context(), userID(r), mux.Vars(r)["id"], body.Deposit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Deny(w http.ResponseWriter, r *http.Request) {
	req, err := h.bookings.DenyRequest(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Return(w http.ResponseWriter, r *http.Request) {
	req, err := h.bookings.ConfirmReturn(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type scanBody struct {
	RequestID string `json:"requestID"`
}

// Scan confirms the physical handoff after the requester's QR code is
// scanned.
func (h *RequestHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var body scanBody
	if !decodeBody(w, r, &body) {
		return
	}

	req, err := h.bookings.ConfirmHandoff(r.Context(), userID(r), body.RequestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
