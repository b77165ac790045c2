package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
)

// createBillRequest is the POST /api/v1/bills body. Field names follow the
// original SplitDivision wire format: snake_case bill attributes plus the
// camelCase usersIdDebtList split list.
type createBillRequest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	DataCreated     *time.Time        `json:"data_created"`
	DataEnd         *time.Time        `json:"data_end"`
	BillImage       string            `json:"bill_image"`
	CurrencyType    string            `json:"currency_type"`
	CurrencyCode    string            `json:"currency_code"`
	Debt            decimal.Decimal   `json:"debt"`
	OwnerID         uuid.UUID         `json:"owner_id"`
	GroupID         *uuid.UUID        `json:"group_id"`
	UsersIDDebtList []splitEntryInput `json:"usersIdDebtList"`
}

// splitEntryInput is one (user, debt) pair of the requested split.
// The id field is the user id, as in the original payload.
type splitEntryInput struct {
	ID   uuid.UUID       `json:"id"`
	Debt decimal.Decimal `json:"debt"`
}

// updateBillRequest is the PUT /api/v1/bills/{id} body. Every field is a
// pointer: absent fields stay untouched. owner_id and group_id are not
// updatable.
type updateBillRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	DataCreated  *time.Time       `json:"data_created"`
	DataEnd      *time.Time       `json:"data_end"`
	BillImage    *string          `json:"bill_image"`
	CurrencyType *string          `json:"currency_type"`
	CurrencyCode *string          `json:"currency_code"`
	Debt         *decimal.Decimal `json:"debt"`
	CodeQR       *string          `json:"code_qr"`
}

// billUsersResponse pairs a bill's participant rows with the resolved user
// records, mirroring the original BillUsersBillResponse shape.
type billUsersResponse struct {
	BillUsers []domain.Participant `json:"billUsers"`
	Users     []domain.User        `json:"users"`
}

// messageResponse is a plain confirmation body.
type messageResponse struct {
	Message string `json:"message"`
}

// listBills handles GET /api/v1/bills.
func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// getBill handles GET /api/v1/bills/{id}.
func (s *Server) getBill(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	bill, err := s.bills.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "bill not found")
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

// listBillsForUser handles GET /api/v1/bills/user/{id}.
// A user with no bills yields 200 and an empty array.
func (s *Server) listBillsForUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	bills, err := s.queries.BillsForUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// listBillsForGroup handles GET /api/v1/bills/group/{id}.
// A group with no bills yields 200 and an empty array.
func (s *Server) listBillsForGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	bills, err := s.queries.BillsForGroup(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// listBillParticipants handles GET /api/v1/bills/{id}/users.
func (s *Server) listBillParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	result, err := s.queries.ParticipantsForBill(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, billUsersResponse{
		BillUsers: result.Participants,
		Users:     result.Users,
	})
}

// createBill handles POST /api/v1/bills.
func (s *Server) createBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	bill := domain.Bill{
		Name:         req.Name,
		Description:  req.Description,
		BillImage:    req.BillImage,
		CurrencyType: req.CurrencyType,
		CurrencyCode: req.CurrencyCode,
		Debt:         req.Debt,
		OwnerID:      req.OwnerID,
		GroupID:      req.GroupID,
		DataEnd:      req.DataEnd,
	}
	if req.DataCreated != nil {
		bill.DataCreated = *req.DataCreated
	}

	split := make([]domain.SplitEntry, len(req.UsersIDDebtList))
	for i, entry := range req.UsersIDDebtList {
		split[i] = domain.SplitEntry{UserID: entry.ID, Debt: entry.Debt}
	}

	created, _, err := s.bills.Create(r.Context(), bill, split)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// updateBill handles PUT /api/v1/bills/{id}.
func (s *Server) updateBill(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	patch := domain.BillPatch{
		Name:         req.Name,
		Description:  req.Description,
		DataCreated:  req.DataCreated,
		DataEnd:      req.DataEnd,
		BillImage:    req.BillImage,
		CurrencyType: req.CurrencyType,
		CurrencyCode: req.CurrencyCode,
		Debt:         req.Debt,
		CodeQR:       req.CodeQR,
	}

	updated, err := s.bills.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err, "bill not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteBill handles DELETE /api/v1/bills/{id}.
func (s *Server) deleteBill(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.bills.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "bill not found")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "bill deleted"})
}
