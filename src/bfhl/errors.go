package bfhl

import "errors"

var (
	// ErrParse is returned when the input text is not valid JSON.
	ErrParse = errors.New("parse error")
	// ErrShape is returned when the input is valid JSON but not {"data": [...]}.
	ErrShape = errors.New("request shape error")
	// ErrResponseShape is returned when the server reply lacks an expected field.
	ErrResponseShape = errors.New("response shape error")
	// ErrNetwork covers transport failures, non-2xx replies and undecodable bodies.
	ErrNetwork = errors.New("network error")
)

const (
	ParseErrorMessage         = "Invalid JSON input. Please check your input and try again."
	ShapeErrorMessage         = `Invalid input format. Expected an object with a "data" array.`
	ResponseShapeErrorMessage = "Invalid response from server: missing expected fields."
	NetworkErrorMessage       = "Unable to reach the server. Please try again."
)

// UserMessage maps an error returned by ParseRequest or Client.Submit to the
// fixed text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return ParseErrorMessage
	case errors.Is(err, ErrShape):
		return ShapeErrorMessage
	case errors.Is(err, ErrResponseShape):
		return ResponseShapeErrorMessage
	case errors.Is(err, ErrNetwork):
		return NetworkErrorMessage
	default:
		return err.Error()
	}
}
