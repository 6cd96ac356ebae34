package intelligence

import "context"

// TextCompleter produces a free-text completion for a prompt. The agent treats
// the completer as unreliable: errors, timeouts, and degenerate output all fall
// back to rule-based replies.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
