package api

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

const (
	// Shown when an error carries no message of its own.
	GenericErrorMessage = "Ocorreu um erro inesperado."
	EmptyPromptMessage  = "O prompt da IA não pode estar vazio."
)

// Returned by RunPromptQuery without sending a request.
var ErrEmptyPrompt = errors.New("prompt is empty")

// A non-2xx response from the query API.
type ResponseError struct {
	StatusCode int
	// The "detail" field of the response body, empty if the body had none.
	Detail string
}

func (err ResponseError) Error() string {
	if err.Detail != "" {
		return fmt.Sprintf("query API responded with status %d: %s", err.StatusCode, err.Detail)
	}
	return fmt.Sprintf("Request failed with status code %d", err.StatusCode)
}

func newResponseError(statusCode int, body []byte) ResponseError {
	responseErr := ResponseError{StatusCode: statusCode}

	if gjson.ValidBytes(body) {
		detail := gjson.GetBytes(body, "detail")
		switch detail.Type {
		case gjson.String:
			responseErr.Detail = detail.Str
		case gjson.Null:
		default:
			// Validation errors come as a list of objects, which we show as raw JSON
			responseErr.Detail = detail.Raw
		}
	}

	return responseErr
}

// Normalizes any error from the query API to a single user-facing message: the server's detail if
// present, otherwise the error text, otherwise a generic message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrEmptyPrompt) {
		return EmptyPromptMessage
	}

	var responseErr ResponseError
	if errors.As(err, &responseErr) {
		if responseErr.Detail != "" {
			return responseErr.Detail
		}
		return fmt.Sprintf("Request failed with status code %d", responseErr.StatusCode)
	}

	if message := err.Error(); message != "" {
		return message
	}
	return GenericErrorMessage
}
