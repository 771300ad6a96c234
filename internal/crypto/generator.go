package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	lowercaseChars     = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars        = "0123456789"
	simpleSpecialChars = ".!?_-"
	allSpecialChars    = ".!?_-#,;:+*~=&"

	// DefaultLength is the password length used by DefaultSettings.
	DefaultLength = 8
)

var ErrEmptyOrMissingCharset = errors.New("charset is empty or missing")

// SpecialCharacterUsage selects which special-character pool is appended to the charset.
type SpecialCharacterUsage int

const (
	SpecialNone SpecialCharacterUsage = iota
	SpecialSimple
	SpecialAll
)

func (u SpecialCharacterUsage) String() string {
	switch u {
	case SpecialNone:
		return "None"
	case SpecialSimple:
		return "Simple"
	case SpecialAll:
		return "All"
	}
	return fmt.Sprintf("SpecialCharacterUsage(%d)", int(u))
}

// ParseSpecialCharacterUsage parses "none", "simple" or "all" (case-insensitive).
func ParseSpecialCharacterUsage(s string) (SpecialCharacterUsage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return SpecialNone, nil
	case "simple":
		return SpecialSimple, nil
	case "all":
		return SpecialAll, nil
	}
	return SpecialNone, fmt.Errorf("unknown special character usage %q", s)
}

func (u SpecialCharacterUsage) MarshalText() ([]byte, error) {
	switch u {
	case SpecialNone, SpecialSimple, SpecialAll:
		return []byte(u.String()), nil
	}
	return nil, fmt.Errorf("invalid special character usage %d", int(u))
}

func (u *SpecialCharacterUsage) UnmarshalText(text []byte) error {
	v, err := ParseSpecialCharacterUsage(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u SpecialCharacterUsage) chars() string {
	switch u {
	case SpecialSimple:
		return simpleSpecialChars
	case SpecialAll:
		return allSpecialChars
	}
	return ""
}

// Settings describes which character classes a password is drawn from and how long it is.
// Any combination of fields is legal.
type Settings struct {
	UseCustomCharset      bool                  `json:"use_custom_charset"`
	UseLowercaseLetters   bool                  `json:"use_lowercase_letters"`
	UseUppercaseLetters   bool                  `json:"use_uppercase_letters"`
	UseNumbers            bool                  `json:"use_numbers"`
	SpecialCharacterUsage SpecialCharacterUsage `json:"special_character_usage"`
	Length                uint                  `json:"length"`
}

// DefaultSettings returns lowercase, uppercase and numbers enabled, no specials, length 8.
func DefaultSettings() Settings {
	return Settings{
		UseLowercaseLetters:   true,
		UseUppercaseLetters:   true,
		UseNumbers:            true,
		SpecialCharacterUsage: SpecialNone,
		Length:                DefaultLength,
	}
}

// NewSettings builds Settings without validation.
func NewSettings(useCustomCharset, useLowercase, useUppercase, useNumbers bool, special SpecialCharacterUsage, length uint) Settings {
	return Settings{
		UseCustomCharset:      useCustomCharset,
		UseLowercaseLetters:   useLowercase,
		UseUppercaseLetters:   useUppercase,
		UseNumbers:            useNumbers,
		SpecialCharacterUsage: special,
		Length:                length,
	}
}

// BuildCharset concatenates the enabled character classes in fixed order:
// lowercase, uppercase, digits, then the selected special pool.
func BuildCharset(s Settings) string {
	var b strings.Builder
	if s.UseLowercaseLetters {
		b.WriteString(lowercaseChars)
	}
	if s.UseUppercaseLetters {
		b.WriteString(uppercaseChars)
	}
	if s.UseNumbers {
		b.WriteString(numberChars)
	}
	b.WriteString(s.SpecialCharacterUsage.chars())
	return b.String()
}

// Generator produces random passwords from its Settings.
// A Generator is not safe for concurrent use.
type Generator struct {
	Settings Settings

	customCharset *string
	charset       string
	source        RandomSource
}

// DefaultGenerator returns a Generator with DefaultSettings.
func DefaultGenerator() *Generator {
	return NewGenerator(DefaultSettings())
}

// NewGenerator returns a Generator for settings with no custom charset,
// drawing from CryptoSource.
func NewGenerator(settings Settings) *Generator {
	return &Generator{
		Settings: settings,
		source:   CryptoSource{},
	}
}

// SetCustomCharset replaces the custom charset. nil clears it.
func (g *Generator) SetCustomCharset(charset *string) {
	if charset == nil {
		g.customCharset = nil
		return
	}
	cs := *charset
	g.customCharset = &cs
}

// CustomCharset returns the custom charset and whether one is set.
func (g *Generator) CustomCharset() (string, bool) {
	if g.customCharset == nil {
		return "", false
	}
	return *g.customCharset, true
}

// SetRandomSource replaces the source characters are drawn from. nil restores CryptoSource.
func (g *Generator) SetRandomSource(src RandomSource) {
	if src == nil {
		src = CryptoSource{}
	}
	g.source = src
}

// Charset returns the standard charset computed by the last call to Generate.
func (g *Generator) Charset() string {
	return g.charset
}

// EffectiveCharset returns the charset Generate would sample from for the current settings.
func (g *Generator) EffectiveCharset() (string, error) {
	if g.Settings.UseCustomCharset {
		if g.customCharset == nil {
			return "", ErrEmptyOrMissingCharset
		}
		if *g.customCharset == "" {
			return "", ErrEmptyOrMissingCharset
		}
		return *g.customCharset, nil
	}
	cs := BuildCharset(g.Settings)
	if cs == "" {
		return "", ErrEmptyOrMissingCharset
	}
	return cs, nil
}

// Generate draws Settings.Length characters uniformly with replacement from the
// effective charset. Each drawn character is prepended to the result, so the
// first draw ends up last.
func (g *Generator) Generate() (string, error) {
	g.charset = BuildCharset(g.Settings)

	var charset string
	if g.Settings.UseCustomCharset {
		if g.customCharset == nil {
			return "", ErrEmptyOrMissingCharset
		}
		charset = *g.customCharset
	} else {
		charset = g.charset
	}

	pool := []rune(charset)
	if len(pool) == 0 {
		return "", ErrEmptyOrMissingCharset
	}

	src := g.source
	if src == nil {
		src = CryptoSource{}
	}

	n := int(g.Settings.Length)
	result := make([]rune, n)
	for i := 0; i < n; i++ {
		idx, err := src.Intn(len(pool))
		if err != nil {
			return "", fmt.Errorf("drawing character: %w", err)
		}
		result[n-1-i] = pool[idx]
	}

	return string(result), nil
}
