// Package validators holds the input constraints shared by the client
// and the development server, so both sides reject the same payloads.
package validators

import "strings"

const (
	maxMessageLen = 4000
	maxTitleLen   = 100
)

// ValidateChatMessage checks the user prompt of a chat turn: non-blank,
// at most 4000 characters.
func ValidateChatMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMessageEmpty
	}
	if len([]rune(message)) > maxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}

// ValidateConversationTitle checks a conversation title: non-blank, at
// most 100 characters.
func ValidateConversationTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}
	if len([]rune(title)) > maxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

// TitleFromMessage derives a default conversation title from the first
// user message, truncated to the title limit.
func TitleFromMessage(message string) string {
	title := strings.TrimSpace(message)
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen-1]) + "…"
	}
	return title
}
