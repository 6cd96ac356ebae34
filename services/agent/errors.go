package agent

import "fmt"

// AgentError carries a machine-readable code alongside the message so the
// transport layer can map failures to status codes.
type AgentError struct {
	Code    string
	Message string
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewShopNotFoundError(shopID string) error {
	return &AgentError{
		Code:    "shopNotFound",
		Message: fmt.Sprintf("no shop registered with id %q", shopID),
	}
}
