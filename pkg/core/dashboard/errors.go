package dashboard

import (
	"context"
	"errors"

	"growth_analyzer/pkg/core/llm"
)

var (
	ErrEmptyTicker   = errors.New("TICKER_EMPTY")
	ErrUnknownTicker = errors.New("TICKER_NOT_IN_WORKING_SET")
)

// Display strings for the two error classes that are not shown verbatim.
const (
	MsgInvalidFormat = "The analysis service returned data in an invalid format. Please try again."
	MsgTimeout       = "The analysis request timed out. Please try again."
)

// UserMessage converts an orchestration failure into the single string shown to the user.
// Transport failures keep their own text; format failures collapse to one generic message.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, llm.ErrInvalidFormat):
		return MsgInvalidFormat
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	default:
		return err.Error()
	}
}
