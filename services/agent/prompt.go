package agent

import (
	"fmt"
	"strings"

	"bookline/models"
)

var weekdayOrder = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// FormatOperatingHours renders a shop's weekly hours for prompts and replies.
func FormatOperatingHours(hours map[string]string) string {
	if len(hours) == 0 {
		return "Please contact for hours"
	}
	var lines []string
	for _, day := range weekdayOrder {
		if h, ok := hours[day]; ok {
			lines = append(lines, fmt.Sprintf("%s%s: %s", strings.ToUpper(day[:1]), day[1:], h))
		}
	}
	return strings.Join(lines, "\n")
}

func formatServices(services []models.Service) string {
	if len(services) == 0 {
		return "No services listed"
	}
	var lines []string
	for _, s := range services {
		line := fmt.Sprintf("- %s - $%.2f", s.Name, s.Price)
		if s.DurationMinutes > 0 {
			line += fmt.Sprintf(" (%d minutes)", s.DurationMinutes)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatCustomerContext(sess *models.AgentSession) string {
	var lines []string
	if sess.UserName != "" {
		lines = append(lines, "Name: "+sess.UserName)
	}
	if sess.UserEmail != "" {
		lines = append(lines, "Email: "+sess.UserEmail)
	}
	if sess.UserPhone != "" {
		lines = append(lines, "Phone: "+sess.UserPhone)
	}
	if len(lines) == 0 {
		return "No customer information available yet."
	}
	return strings.Join(lines, "\n")
}

// analyzePartySize gives the completer an explicit hint so it never guesses a
// party size on its own.
func analyzePartySize(message string, draft models.ReservationDraft) string {
	if draft.PartySize > 0 {
		return fmt.Sprintf("Customer has already specified party size: %d", draft.PartySize)
	}
	lower := strings.ToLower(message)
	soloIndicators := []string{"alone", "solo", "just me", "only me", "myself", "single", "by myself"}
	for _, w := range soloIndicators {
		if strings.Contains(lower, w) {
			return "Customer indicated solo booking (said 'alone', 'just me', etc.). Party size is 1."
		}
	}
	groupIndicators := []string{"brother", "sister", "friend", "friends", "family", "together", "both", "partner", "we", "us"}
	for _, w := range groupIndicators {
		if strings.Contains(lower, w) {
			return "Customer mentioned others (brother, friend, etc.). Likely 2 or more people."
		}
	}
	return "Party size not mentioned. Must ask: 'How many people will be joining?'"
}

func conversationContext(sess *models.AgentSession) string {
	if len(sess.History) == 0 {
		return "Starting fresh conversation."
	}
	start := 0
	if len(sess.History) > 10 {
		start = len(sess.History) - 10
	}
	var lines []string
	for _, msg := range sess.History[start:] {
		role := "User"
		if msg.Role == "assistant" {
			role = "Assistant"
		}
		lines = append(lines, role+": "+msg.Content)
	}
	context := strings.Join(lines, "\n")
	if strings.Contains(context, "RESERVATION CONFIRMED") || strings.Contains(strings.ToLower(context), "cancellation successful") {
		return "Previous conversation completed. Starting fresh."
	}
	return context
}

func buildChatPrompt(message string, shop *models.Shop, sess *models.AgentSession) string {
	status := "No"
	if sess.State != models.StateIdle {
		status = "Yes"
	}
	collected := "None yet"
	if sess.Draft != (models.ReservationDraft{}) {
		var parts []string
		if sess.Draft.Date != "" {
			parts = append(parts, "date="+sess.Draft.Date)
		}
		if sess.Draft.Time != "" {
			parts = append(parts, "time="+sess.Draft.Time)
		}
		if sess.Draft.PartySize > 0 {
			parts = append(parts, fmt.Sprintf("party_size=%d", sess.Draft.PartySize))
		}
		if sess.Draft.ServiceType != "" {
			parts = append(parts, "service="+sess.Draft.ServiceType)
		}
		if len(parts) > 0 {
			collected = strings.Join(parts, ", ")
		}
	}

	return fmt.Sprintf(`You are an AI assistant for %s, a %s.

SHOP OPERATING HOURS (STRICTLY ENFORCE):
%s

CUSTOMER INFORMATION:
%s

SERVICES AVAILABLE:
%s

PARTY SIZE ANALYSIS:
%s

CONVERSATION CONTEXT:
%s

CURRENT RESERVATION STATUS:
- Active: %s
- Data collected: %s

CRITICAL RULES:
1. PARTY SIZE: Do not assume party size. If unsure, ask "How many people will be joining?"
2. TIME CONSTRAINTS: Only suggest times within the shop hours listed above.
3. CONTACT INFO: You already have customer contact information. Do not ask for name, email, or phone.
4. AFTER COMPLETION: Start fresh conversations after reservations or cancellations.
5. PROFESSIONALISM: Maintain professional, helpful tone at all times.

EXAMPLE RESPONSES:
- Customer: "I want you to book my reservation"
  Response: "I'd be happy to help. How many people will be joining?"

- Customer: "Book for me and my brother"
  Response: "Understood. For two people then. What date works for you both?"

- Customer: "Cancel my reservation"
  Response: "I can help with that. Do you have your Reservation ID, or should I use your phone or email to find it?"

- Customer suggests time outside hours: "8 PM tomorrow"
  Response: "Our closing time is 7 PM. Would 6 PM work for you instead?"

Customer says: "%s"

Your professional response:`,
		shop.Name, shopCategory(shop),
		FormatOperatingHours(shop.OperatingHours),
		formatCustomerContext(sess),
		formatServices(shop.Services),
		analyzePartySize(message, sess.Draft),
		conversationContext(sess),
		status, collected,
		message)
}

func shopCategory(shop *models.Shop) string {
	if shop.Category == "" {
		return "business"
	}
	return shop.Category
}
