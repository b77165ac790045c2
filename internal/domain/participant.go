package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Participant is one user's share of a bill (a row in bills_users).
// The (BillID, UserID) pair is unique per bill. IsRegulated reports whether
// this share has been settled; new participants always start unsettled.
type Participant struct {
	ID          uuid.UUID       `json:"id"`
	Debt        decimal.Decimal `json:"debt"`
	IsRegulated bool            `json:"is_regulated"`
	BillID      uuid.UUID       `json:"bill_id"`
	UserID      uuid.UUID       `json:"user_id"`
}

// SplitEntry is one requested (user, debt) pair in a bill's split.
// The split engine turns a list of entries into Participant rows.
type SplitEntry struct {
	UserID uuid.UUID
	Debt   decimal.Decimal
}

// BillParticipants pairs a bill's participant rows with the resolved display
// records of the users involved. Users[i] corresponds to the participant
// whose UserID matches Users[i].ID; no other ordering is guaranteed.
type BillParticipants struct {
	Participants []Participant
	Users        []User
}
