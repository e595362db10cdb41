package handlers

import (
	"net/http"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/http/response"
)

type bookedSlotsResponse struct {
	Success     bool     `json:"success"`
	BookedSlots []string `json:"bookedSlots"`
}

type historyResponse struct {
	Success bool             `json:"success"`
	History []domain.Booking `json:"history"`
}

func (h *Handlers) bookSlot(w http.ResponseWriter, r *http.Request) {
	var req domain.BookSlotRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.bookingService.Book(r.Context(), &req); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.OK(w, "Slot booked successfully!")
}

func (h *Handlers) bookedSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.bookingService.ListActive(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, bookedSlotsResponse{Success: true, BookedSlots: slots})
}

// cancelBooking answers 200 either way; success=false means nothing was active.
func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CancelBookingRequest
	if !decode(w, r, &req) {
		return
	}

	cancelled, err := h.bookingService.Cancel(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	if !cancelled {
		response.WriteJSON(w, http.StatusOK, response.MessageResponse{
			Success: false,
			Message: "No active booking found to cancel",
		})
		return
	}
	response.OK(w, "Booking cancelled!")
}

func (h *Handlers) bookingHistory(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingHistoryRequest
	if !decode(w, r, &req) {
		return
	}

	history, err := h.bookingService.History(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, historyResponse{Success: true, History: history})
}
