package payments

import "errors"

// Kind classifies a payment failure so handlers can pick a status code
// without matching on message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDeadlineExceeded
	KindConfiguration
	KindAuthentication
	KindUpstream
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errValidation(msg string) error     { return &Error{Kind: KindValidation, Message: msg} }
func errNotFound(msg string) error       { return &Error{Kind: KindNotFound, Message: msg} }
func errConflict(msg string) error       { return &Error{Kind: KindConflict, Message: msg} }
func errDeadline(msg string) error       { return &Error{Kind: KindDeadlineExceeded, Message: msg} }
func errConfiguration(msg string) error  { return &Error{Kind: KindConfiguration, Message: msg} }
func errAuthentication(msg string) error { return &Error{Kind: KindAuthentication, Message: msg} }
func errUpstream(msg string) error       { return &Error{Kind: KindUpstream, Message: msg} }

// KindOf returns the classification of err, or KindUnknown for errors that
// did not come out of this package.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
