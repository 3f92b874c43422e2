package ledger

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fintrack/ledger/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the ledger module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new ledger handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers movement routes. Authentication only; no
// role restriction.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/movements", func(r chi.Router) {
		r.Get("/", h.ListMovements)
		r.Post("/", h.CreateMovement)
	})
}

// CreateMovementRequest represents the request body for recording a movement.
// Amount is a pointer so that an explicit zero still counts as present.
type CreateMovementRequest struct {
	Concept string   `json:"concept" validate:"required"`
	Amount  *float64 `json:"amount" validate:"required"`
	Date    string   `json:"date" validate:"required"`
	UserID  string   `json:"userId" validate:"required"`
}

// ListMovements handles GET /movements.
func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.service.ListMovements(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{"movements": movements})
}

// CreateMovement handles POST /movements.
func (h *Handler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	var req CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	movement, err := h.service.CreateMovement(r.Context(), CreateInput{
		Concept: req.Concept,
		Amount:  *req.Amount,
		Date:    date,
		UserID:  req.UserID,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, map[string]interface{}{"movement": movement})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrMissingFields, Status: http.StatusBadRequest},
		{Error: ErrOwnerNotFound, Status: http.StatusNotFound},
	})
}
