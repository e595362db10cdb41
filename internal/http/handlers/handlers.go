package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/parkingpro/internal/http/response"
	"github.com/diagnosis/parkingpro/internal/service"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	authService    service.AuthService
	otpService     service.OTPService
	bookingService service.BookingService
	contactService service.ContactService
}

func New(
	authService service.AuthService,
	otpService service.OTPService,
	bookingService service.BookingService,
	contactService service.ContactService,
) *Handlers {
	return &Handlers{
		authService:    authService,
		otpService:     otpService,
		bookingService: bookingService,
		contactService: contactService,
	}
}

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Post("/send-otp", h.sendOTP)
	r.Post("/verify-otp", h.verifyOTP)

	r.Post("/contact", h.contact)

	r.Post("/book-slot", h.bookSlot)
	r.Get("/booked-slots", h.bookedSlots)
	r.Post("/cancel-booking", h.cancelBooking)
	r.Post("/booking-history", h.bookingHistory)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed")
	})

	return r
}

// decode reads a JSON body into dst, writing a 400 and returning false on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return false
	}
	return true
}
