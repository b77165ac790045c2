package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPatch is an explicit partial update of a bill. A nil field means
// "leave unchanged"; a non-nil field overwrites the current value.
// OwnerID and GroupID are deliberately absent — ownership and group
// assignment are fixed at creation.
type BillPatch struct {
	Name         *string
	Description  *string
	DataCreated  *time.Time
	DataEnd      *time.Time
	BillImage    *string
	CurrencyType *string
	CurrencyCode *string
	Debt         *decimal.Decimal
	CodeQR       *string
}

// Apply returns a copy of b with every non-nil patch field overwritten.
// The updatable field list is fixed here; adding a field to the patch
// without wiring it in Apply is a compile-visible omission, not a silent one.
func (p BillPatch) Apply(b Bill) Bill {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.DataCreated != nil {
		b.DataCreated = *p.DataCreated
	}
	if p.DataEnd != nil {
		end := *p.DataEnd
		b.DataEnd = &end
	}
	if p.BillImage != nil {
		b.BillImage = *p.BillImage
	}
	if p.CurrencyType != nil {
		b.CurrencyType = *p.CurrencyType
	}
	if p.CurrencyCode != nil {
		b.CurrencyCode = *p.CurrencyCode
	}
	if p.Debt != nil {
		b.Debt = *p.Debt
	}
	if p.CodeQR != nil {
		b.CodeQR = *p.CodeQR
	}
	return b
}

// IsZero reports whether the patch changes nothing.
func (p BillPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.DataCreated == nil &&
		p.DataEnd == nil && p.BillImage == nil && p.CurrencyType == nil &&
		p.CurrencyCode == nil && p.Debt == nil && p.CodeQR == nil
}
