// Package forms holds the pre-submission form-validation contracts shared
// with API clients. These checks run before any network call and are never
// authoritative: handlers re-validate presence of required fields with
// their own, deliberately looser, rules.
package forms

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Validation messages shown to the user, in the product's language.
const (
	MsgAllFieldsRequired = "Todos los campos son obligatorios"
	MsgAmountNotPositive = "El monto debe ser un número positivo"
	MsgDateInFuture      = "La fecha no puede ser futura"
	MsgNameTooShort      = "El nombre debe tener al menos 2 caracteres"
)

// Result is the outcome of a form validation. Message is set only when
// OK is false; the first failing rule wins.
type Result struct {
	OK      bool
	Message string
}

func fail(message string) Result {
	return Result{Message: message}
}

var ok = Result{OK: true}

// MovementEntry holds the raw field values of the movement entry form.
type MovementEntry struct {
	Concept string
	Amount  string
	Date    string // YYYY-MM-DD
}

// ValidateMovementEntry checks the movement entry form against the
// caller's local clock (now). Rules run in fixed order: presence,
// positive finite amount, date not in the future.
func ValidateMovementEntry(entry MovementEntry, now time.Time) Result {
	if strings.TrimSpace(entry.Concept) == "" || entry.Amount == "" || entry.Date == "" {
		return fail(MsgAllFieldsRequired)
	}

	amount, err := strconv.ParseFloat(entry.Amount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fail(MsgAmountNotPositive)
	}

	date, err := time.Parse("2006-01-02", entry.Date)
	if err != nil {
		return fail(MsgAllFieldsRequired)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.After(today) {
		return fail(MsgDateInFuture)
	}

	return ok
}

// UserEdit holds the raw field values of the user role-edit form.
type UserEdit struct {
	Name string
	Role string
}

// ValidateUserEdit checks the user edit form: presence first, then a
// minimum trimmed name length of 2 characters.
func ValidateUserEdit(edit UserEdit) Result {
	name := strings.TrimSpace(edit.Name)
	if name == "" || edit.Role == "" {
		return fail(MsgAllFieldsRequired)
	}
	if len([]rune(name)) < 2 {
		return fail(MsgNameTooShort)
	}
	return ok
}
