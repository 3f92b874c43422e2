// Package domain contains the shared entities of the finance tracker.
package domain

import "time"

// MovementOwner is the denormalized owner info exposed with a movement.
// Only name and email leave the directory through the ledger.
type MovementOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Display returns the owner's name, falling back to email.
func (o MovementOwner) Display() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Email
}

// Movement is a single signed monetary entry. The sign of Amount alone
// classifies it: positive = income (ingreso), negative = expense (egreso).
type Movement struct {
	ID        string        `json:"id"`
	Concept   string        `json:"concept"`
	Amount    float64       `json:"amount"`
	Date      time.Time     `json:"date"`
	UserID    string        `json:"userId"`
	User      MovementOwner `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

// IsIncome reports whether the movement counts as income.
func (m *Movement) IsIncome() bool {
	return m.Amount > 0
}

// TypeLabel returns the product's Spanish movement type label.
func (m *Movement) TypeLabel() string {
	if m.Amount > 0 {
		return "Ingreso"
	}
	return "Egreso"
}
