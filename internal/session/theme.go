package session

import "fmt"

// ThemeKey is the durable storage key of the theme flag
const ThemeKey = "theme"

const (
	themeDark  = "dark"
	themeLight = "light"
)

// KeyValueStore is the durable storage behind the theme flag
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Theme owns the dark/light flag. The in-memory flag, the stored value and the
// presentation flag change together or not at all.
type Theme struct {
	store   KeyValueStore
	hint    func() bool
	present func(isDark bool)
	dark    bool
}

// NewTheme resolves the initial theme and applies it to the presentation layer.
// hint reports the terminal's color-scheme preference and present applies the
// flag to rendering; either may be nil.
func NewTheme(store KeyValueStore, hint func() bool, present func(isDark bool)) *Theme {
	t := &Theme{store: store, hint: hint, present: present}
	t.dark = t.InitialTheme()
	if t.present != nil {
		t.present(t.dark)
	}
	return t
}

// InitialTheme resolves the flag: stored value first, then the environment
// hint, then light. An unreadable store counts as empty.
func (t *Theme) InitialTheme() bool {
	if t.store != nil {
		if v, ok, err := t.store.Get(ThemeKey); err == nil && ok && v != "" {
			return v == themeDark
		}
	}
	if t.hint != nil {
		return t.hint()
	}
	return false
}

// IsDark returns the current flag
func (t *Theme) IsDark() bool {
	return t.dark
}

// SetTheme writes the flag through to storage and the presentation layer
func (t *Theme) SetTheme(isDark bool) error {
	if t.store != nil {
		if err := t.store.Set(ThemeKey, themeValue(isDark)); err != nil {
			return fmt.Errorf("failed to persist theme: %w", err)
		}
	}
	t.dark = isDark
	if t.present != nil {
		t.present(isDark)
	}
	return nil
}

// Toggle flips the flag
func (t *Theme) Toggle() error {
	return t.SetTheme(!t.dark)
}

// Name returns "dark" or "light"
func (t *Theme) Name() string {
	return themeValue(t.dark)
}

// ParseThemeName maps "dark"/"light" to the flag
func ParseThemeName(s string) (bool, error) {
	switch s {
	case themeDark:
		return true, nil
	case themeLight:
		return false, nil
	default:
		return false, fmt.Errorf("invalid theme: %q (must be one of: dark, light)", s)
	}
}

func themeValue(isDark bool) string {
	if isDark {
		return themeDark
	}
	return themeLight
}

// MemoryStore is a KeyValueStore kept in process memory
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}
