// Package handler implements the HTTP handlers for the Bill API.
// Handlers decode requests, call the service layer, and map results and
// errors onto status codes. Methods are split into domain-specific files but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
)

// BillServicer defines the lifecycle operations the bill handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type BillServicer interface {
	Create(ctx context.Context, bill domain.Bill, split []domain.SplitEntry) (domain.Bill, []domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Bill, error)
	List(ctx context.Context) ([]domain.Bill, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.BillPatch) (domain.Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BillQueryer defines the aggregate read operations the handlers depend on.
type BillQueryer interface {
	BillsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error)
	BillsForGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Bill, error)
	ParticipantsForBill(ctx context.Context, billID uuid.UUID) (domain.BillParticipants, error)
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	bills   BillServicer
	queries BillQueryer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(bills BillServicer, queries BillQueryer) *Server {
	return &Server{bills: bills, queries: queries}
}

// Routes returns the full route tree of the API.
// The path layout mirrors the original SplitDivision bill service.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)

	r.Route("/api/v1/bills", func(r chi.Router) {
		r.Get("/", s.listBills)
		r.Post("/", s.createBill)
		r.Get("/user/{id}", s.listBillsForUser)
		r.Get("/group/{id}", s.listBillsForGroup)
		r.Get("/{id}", s.getBill)
		r.Get("/{id}/users", s.listBillParticipants)
		r.Put("/{id}", s.updateBill)
		r.Delete("/{id}", s.deleteBill)
	})

	return r
}

// pathID parses the {id} URL parameter as a UUID.
// A malformed id is reported to the client as 400 and ok=false.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
