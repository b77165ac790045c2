// Package domain contains the core data types for the SplitDivision Bill API.
// This package has zero knowledge of HTTP or SQL and is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill represents a shared expense split across a set of participants.
// A bill is the top-level aggregate; participants belong to a bill and are
// removed with it. OwnerID and GroupID are non-owning references to records
// maintained by the user and group services.
type Bill struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	DataCreated  time.Time       `json:"data_created"`
	DataEnd      *time.Time      `json:"data_end,omitempty"` // nil while the bill is open-ended
	BillImage    string          `json:"bill_image"`
	CurrencyType string          `json:"currency_type"`
	CurrencyCode string          `json:"currency_code"`
	Debt         decimal.Decimal `json:"debt"`
	CodeQR       string          `json:"code_qr"` // settlement link derived from the configured base URL and the bill id
	OwnerID      uuid.UUID       `json:"owner_id"`
	GroupID      *uuid.UUID      `json:"group_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
