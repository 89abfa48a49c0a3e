package service

import "errors"

/* =======================================================
   Typed rejection kinds — controller memetakan ke HTTP:
   validation → 400, forbidden → 403, not_found → 404,
   conflict → 409.
   ======================================================= */

type ErrorKind string

const (
	ErrKindValidation ErrorKind = "validation"
	ErrKindForbidden  ErrorKind = "forbidden"
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindConflict   ErrorKind = "conflict"
)

type AdmissionError struct {
	Kind    ErrorKind
	Message string
}

func (e *AdmissionError) Error() string { return e.Message }

func newValidation(msg string) error {
	return &AdmissionError{Kind: ErrKindValidation, Message: msg}
}

func newForbidden(msg string) error {
	return &AdmissionError{Kind: ErrKindForbidden, Message: msg}
}

func newNotFound(msg string) error {
	return &AdmissionError{Kind: ErrKindNotFound, Message: msg}
}

func newConflict(msg string) error {
	return &AdmissionError{Kind: ErrKindConflict, Message: msg}
}

// KindOf mengembalikan kind dari AdmissionError, atau "" untuk error lain.
func KindOf(err error) ErrorKind {
	var ae *AdmissionError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// ErrDayTaken dikembalikan store saat commit kalah race dengan request lain
// untuk (user, day) yang sama (unique violation / locked row ditemukan).
var ErrDayTaken = errors.New("day already booked")
