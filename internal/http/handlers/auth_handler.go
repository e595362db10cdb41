package handlers

import (
	"net/http"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/http/response"
)

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.authService.Register(r.Context(), &req); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.OK(w, "User registered successfully!")
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, res)
}
