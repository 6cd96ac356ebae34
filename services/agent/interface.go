package agent

import (
	"context"
	"time"

	"bookline/config"
	reservationRepo "bookline/database/repository/reservation"
	shopRepo "bookline/database/repository/shop"
	"bookline/models"
	"bookline/services/intelligence"
	"bookline/session"
	"bookline/validation"
)

// Fallback policy values for shops that configure nothing and for test
// environments with no loaded configuration.
const (
	defaultMaxPerSlot      = 4
	defaultMinHoursAdvance = 1
	defaultMaxAdvanceDays  = 30
	defaultMaxPartySize    = 20
	defaultHistoryLimit    = 20
	defaultCompleteTimeout = 30 * time.Second
)

// AgentService is the conversational booking agent. One call handles one
// inbound message end to end and always produces a user-facing reply.
type AgentService interface {
	HandleMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// DefaultAgentService implements AgentService.
type DefaultAgentService struct {
	Shops        shopRepo.Repository
	Reservations reservationRepo.Repository
	Sessions     *session.Store
	Completer    intelligence.TextCompleter
	Extractor    *validation.Extractor
	Slots        *validation.SlotChecker
}

func NewDefaultAgentService(
	shops shopRepo.Repository,
	reservations reservationRepo.Repository,
	sessions *session.Store,
	completer intelligence.TextCompleter,
) *DefaultAgentService {
	maxParty := config.AppConfig.MaxPartySize
	if maxParty <= 0 {
		maxParty = defaultMaxPartySize
	}
	return &DefaultAgentService{
		Shops:        shops,
		Reservations: reservations,
		Sessions:     sessions,
		Completer:    completer,
		Extractor:    validation.NewExtractor(maxParty),
		Slots:        validation.NewSlotChecker(),
	}
}

// effectivePolicy fills a shop's unset policy fields from configured defaults.
func effectivePolicy(shop *models.Shop) models.ReservationPolicy {
	p := shop.Policy
	if p.MaxPerSlot <= 0 {
		p.MaxPerSlot = config.AppConfig.MaxPerSlot
	}
	if p.MaxPerSlot <= 0 {
		p.MaxPerSlot = defaultMaxPerSlot
	}
	if p.MinBookingHoursAdvance <= 0 {
		p.MinBookingHoursAdvance = config.AppConfig.MinBookingHoursAdvance
	}
	if p.MinBookingHoursAdvance <= 0 {
		p.MinBookingHoursAdvance = defaultMinHoursAdvance
	}
	if p.MaxAdvanceBookingDays <= 0 {
		p.MaxAdvanceBookingDays = config.AppConfig.MaxAdvanceBookingDays
	}
	if p.MaxAdvanceBookingDays <= 0 {
		p.MaxAdvanceBookingDays = defaultMaxAdvanceDays
	}
	if p.MaxPartySize <= 0 {
		p.MaxPartySize = config.AppConfig.MaxPartySize
	}
	if p.MaxPartySize <= 0 {
		p.MaxPartySize = defaultMaxPartySize
	}
	return p
}

func historyLimit() int {
	if n := config.AppConfig.ConversationCacheSize; n > 0 {
		return n
	}
	return defaultHistoryLimit
}
