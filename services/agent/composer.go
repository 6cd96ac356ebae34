package agent

import (
	"context"
	"time"

	"bookline/config"
	"bookline/models"
	"bookline/utils"

	"go.uber.org/zap"
)

// composeReply asks the text completer for a context-aware reply. The
// completer is bounded by a timeout and every failure mode, including
// degenerate output, resolves to the deterministic fallback.
func (svc *DefaultAgentService) composeReply(ctx context.Context, shop *models.Shop, sess *models.AgentSession, message string) string {
	if svc.Completer == nil {
		return fallbackReply(message, shop)
	}

	timeout := time.Duration(config.AppConfig.CompletionTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = defaultCompleteTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := buildChatPrompt(message, shop, sess)
	raw, err := svc.Completer.Complete(cctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("Text completion failed, using fallback",
			zap.String("shopID", shop.ID), zap.Error(err))
		return fallbackReply(message, shop)
	}

	cleaned := CleanResponse(raw)
	if len(cleaned) < 10 {
		utils.GetLogger().Warn("Text completion too short, using fallback",
			zap.String("shopID", shop.ID), zap.Int("length", len(cleaned)))
		return fallbackReply(message, shop)
	}
	return cleaned
}
