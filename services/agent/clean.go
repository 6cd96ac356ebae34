package agent

import (
	"regexp"
	"strings"
	"unicode"
)

// Model output arrives with instruction-format tokens, markdown, and chatty
// prefixes. CleanResponse strips them down to plain customer-facing text.
var artifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^<s>`),
	regexp.MustCompile(`(?im)</s>$`),
	regexp.MustCompile(`(?im)^\[INST\]`),
	regexp.MustCompile(`(?im)\[/INST\]$`),
	regexp.MustCompile(`(?im)^s>\s*`),
	regexp.MustCompile(`(?im)^</s>\s*`),
	regexp.MustCompile(`<[^>]+>`),
	regexp.MustCompile("(?s)```.*?```"),
	regexp.MustCompile(`(?im)^(Assistant|AI|Bot):\s*`),
	regexp.MustCompile(`(?im)^(Response|Answer):\s*`),
	regexp.MustCompile(`(?m)^\d+\.\s+`),
	regexp.MustCompile(`(?m)^\([^)]+\)\s*`),
	regexp.MustCompile(`(?m)^\[[^\]]+\]\s*`),
}

var unwantedPrefixes = []string{
	"Sure!", "Okay!", "Alright!", "Hello!", "Hi!",
	"Great question!", "Thanks for asking!",
	"I understand.", "Let me help.", "I can help with that.",
}

var (
	multiBlankRe   = regexp.MustCompile(`\n\s*\n+`)
	wideSpaceRe    = regexp.MustCompile(`\s{3,}`)
	strayMarkRe    = regexp.MustCompile(`[\[\]<>]`)
	asteriskRe     = regexp.MustCompile(`\*+`)
	repeatPeriodRe = regexp.MustCompile(`\.{2,}`)
	repeatBangRe   = regexp.MustCompile(`!{2,}`)
	repeatQueryRe  = regexp.MustCompile(`\?{2,}`)
	nonWordSpaceRe = regexp.MustCompile(`[^\w\s]`)
)

func CleanResponse(text string) string {
	if text == "" {
		return ""
	}

	for _, re := range artifactPatterns {
		text = re.ReplaceAllString(text, "")
	}

	for _, prefix := range unwantedPrefixes {
		if strings.HasPrefix(strings.ToLower(text), strings.ToLower(prefix)) {
			text = strings.TrimLeft(text[len(prefix):], " \t")
		}
	}

	text = multiBlankRe.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = wideSpaceRe.ReplaceAllString(text, "  ")

	if text != "" && !strings.ContainsRune(".!?:;", rune(text[len(text)-1])) {
		text += "."
	}
	runes := []rune(text)
	if len(runes) > 0 && unicode.IsLower(runes[0]) {
		runes[0] = unicode.ToUpper(runes[0])
		text = string(runes)
	}

	text = strayMarkRe.ReplaceAllString(text, "")
	text = asteriskRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")

	text = strings.TrimSpace(text)
	text = repeatPeriodRe.ReplaceAllString(text, ".")
	text = repeatBangRe.ReplaceAllString(text, "!")
	text = repeatQueryRe.ReplaceAllString(text, "?")

	// Drop fragments too short to be real sentences.
	sentences := strings.Split(text, ". ")
	var kept []string
	for _, sentence := range sentences {
		bare := strings.TrimSpace(nonWordSpaceRe.ReplaceAllString(sentence, ""))
		if len(bare) > 3 {
			kept = append(kept, sentence)
		}
	}
	text = strings.Join(kept, ". ")

	if len(text) < 3 {
		return "I understand. How else can I assist you today?"
	}
	return text
}
