package httperr

import "errors"

// Kind classifies a business-rule violation so transport code can pick a
// status without inspecting individual codes.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindSlotConflict Kind = "slot_conflict"
	KindBadRequest   Kind = "bad_request"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func SlotConflict(code, message string) error {
	return BusinessError{Kind: KindSlotConflict, Code: code, Message: message}
}

func BadRequest(code, message string) error {
	return BusinessError{Kind: KindBadRequest, Code: code, Message: message}
}

func NotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func InvalidState(code, message string) error {
	return BusinessError{Kind: KindInvalidState, Code: code, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func IsCode(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
