package api

import (
	"fmt"
	"net/http"

	"github.com/danielolaszy/boardctl/internal/logging"
)

// Notifier shows failures to the user. The CLI prints them; the default
// only logs.
type Notifier interface {
	Warning(msg string)
	Error(msg string)
}

type logNotifier struct{}

func (logNotifier) Warning(msg string) { logging.Warn(msg) }
func (logNotifier) Error(msg string)   { logging.Error(msg) }

// notifyFailure turns a failed call into the single user-visible message
// of its class.
func notifyFailure(n Notifier, err error) {
	switch {
	case IsUnauthorized(err):
		n.Warning("Unauthorized: Please log in again.")
	case IsForbidden(err):
		n.Warning("Forbidden: You do not have permission to perform this action.")
	case IsNetworkError(err):
		n.Error("Network error: No response from server.")
	default:
		if code := StatusCode(err); code != 0 {
			text := http.StatusText(code)
			if text == "" {
				text = "Unknown error"
			}
			n.Error(fmt.Sprintf("Error %d: %s", code, text))
			return
		}
		n.Error(fmt.Sprintf("API Error: %v", err))
	}
}
