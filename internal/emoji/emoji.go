package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"brand":      {"🛍", "[ETHIO]"},
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"success":    {"✅", "[OK]"},
	"offline":    {"📡", "[OFFLINE]"},
	"phone":      {"☎️", "Tel:"},
	"email":      {"📧", "Email:"},
	"location":   {"📍", "@"},
	"saved":      {"❤️", "[*]"},
	"unsaved":    {"🤍", "[ ]"},
	"verified":   {"✔️", "[v]"},
	"rating":     {"⭐", "*"},
	"sparkles":   {"✨", "[AI]"},
	"camera":     {"📷", "[IMG]"},
	"items":      {"🛒", "[M]"},
	"cars":       {"🚗", "[V]"},
	"properties": {"🏠", "[R]"},
	"jobs":       {"💼", "[J]"},
	"services":   {"🔧", "[S]"},
	"home":       {"🏡", "Home"},
	"post":       {"➕", "+"},
	"messages":   {"💬", "Chat"},
	"profile":    {"👤", "Me"},
	"bell":       {"🔔", "[!]"},
	"search":     {"🔍", "[?]"},
	"moon":       {"🌙", "[dark]"},
	"sun":        {"☀️", "[light]"},
	"back":       {"←", "<"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
