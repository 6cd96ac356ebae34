package agent

import (
	"fmt"
	"strings"

	"bookline/models"
)

// fallbackReply answers without the text completer: keyword branches over the
// shop's own catalogue and hours.
func fallbackReply(message string, shop *models.Shop) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "haircut") || strings.Contains(lower, "hair cut"):
		var lines []string
		for _, s := range shop.Services {
			if strings.Contains(strings.ToLower(s.Name), "hair") {
				lines = append(lines, fmt.Sprintf("- %s: $%.2f", s.Name, s.Price))
			}
			if len(lines) == 3 {
				break
			}
		}
		if len(lines) > 0 {
			return fmt.Sprintf("At %s, we offer these haircut services:\n%s\n\nHow many people will be joining?",
				shop.Name, strings.Join(lines, "\n"))
		}
		return fmt.Sprintf("We offer haircut services at %s. How many people will be joining?", shop.Name)

	case strings.Contains(lower, "book") || strings.Contains(lower, "reserve") || strings.Contains(lower, "appointment"):
		return fmt.Sprintf("I'd be happy to help you make a reservation at %s. How many people will be joining?", shop.Name)

	case strings.Contains(lower, "price") || strings.Contains(lower, "cost") ||
		strings.Contains(lower, "rate") || strings.Contains(lower, "how much"):
		if len(shop.Services) > 0 {
			var lines []string
			for i, s := range shop.Services {
				if i == 3 {
					break
				}
				lines = append(lines, fmt.Sprintf("- %s: $%.2f", s.Name, s.Price))
			}
			return fmt.Sprintf("Here are our rates at %s:\n%s\n\nWhich service interests you?",
				shop.Name, strings.Join(lines, "\n"))
		}
		return "I'd be happy to share our rates. What service are you interested in?"

	case strings.Contains(lower, "time") || strings.Contains(lower, "hour") || strings.Contains(lower, "open"):
		return fmt.Sprintf("Our hours at %s are:\n%s\n\nHow many people will be joining?",
			shop.Name, FormatOperatingHours(shop.OperatingHours))

	case strings.Contains(lower, "service") || strings.Contains(lower, "offer") || strings.Contains(lower, "do you"):
		if len(shop.Services) > 0 {
			var lines []string
			for i, s := range shop.Services {
				if i == 5 {
					break
				}
				lines = append(lines, "- "+s.Name)
			}
			return fmt.Sprintf("At %s, we offer:\n%s\n\nWhat would you like to know more about?",
				shop.Name, strings.Join(lines, "\n"))
		}
		return fmt.Sprintf("We offer various services at %s. What specifically are you looking for?", shop.Name)

	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi") || strings.Contains(lower, "hey"):
		return fmt.Sprintf("Hello. Welcome to %s. How can I assist you today?", shop.Name)

	default:
		return fmt.Sprintf("I'd love to help you with that at %s. Could you tell me a bit more about what you're looking for?", shop.Name)
	}
}
