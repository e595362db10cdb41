package handlers

import (
	"net/http"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/http/response"
)

func (h *Handlers) contact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.contactService.Submit(r.Context(), &req); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Message received!")
}
