package handlers

import (
	"net/http"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/http/response"
)

func (h *Handlers) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.OTPRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.otpService.Issue(r.Context(), &req); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.OK(w, "OTP sent!")
}

func (h *Handlers) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.OTPVerifyRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.otpService.Verify(r.Context(), &req); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.OK(w, "OTP verified successfully!")
}
