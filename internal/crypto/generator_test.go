package crypto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func strPtr(s string) *string { return &s }

// scriptedSource returns the queued indices in order.
type scriptedSource struct {
	indices []int
}

func (s *scriptedSource) Intn(n int) (int, error) {
	idx := s.indices[0] % n
	s.indices = s.indices[1:]
	return idx, nil
}

type failingSource struct{}

var errEntropy = errors.New("entropy exhausted")

func (failingSource) Intn(int) (int, error) { return 0, errEntropy }

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	want := Settings{
		UseCustomCharset:      false,
		UseLowercaseLetters:   true,
		UseUppercaseLetters:   true,
		UseNumbers:            true,
		SpecialCharacterUsage: SpecialNone,
		Length:                8,
	}
	if s != want {
		t.Errorf("DefaultSettings() = %+v, want %+v", s, want)
	}
}

func TestBuildCharset(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     string
	}{
		{
			name:     "numbers only",
			settings: NewSettings(false, false, false, true, SpecialNone, 8),
			want:     "0123456789",
		},
		{
			name:     "simple specials only",
			settings: NewSettings(false, false, false, false, SpecialSimple, 8),
			want:     ".!?_-",
		},
		{
			name:     "all specials only",
			settings: NewSettings(false, false, false, false, SpecialAll, 8),
			want:     ".!?_-#,;:+*~=&",
		},
		{
			name:     "defaults",
			settings: DefaultSettings(),
			want:     lowercaseChars + uppercaseChars + numberChars,
		},
		{
			name:     "everything",
			settings: NewSettings(false, true, true, true, SpecialAll, 8),
			want:     lowercaseChars + uppercaseChars + numberChars + allSpecialChars,
		},
		{
			name:     "nothing",
			settings: NewSettings(false, false, false, false, SpecialNone, 8),
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildCharset(tt.settings); got != tt.want {
				t.Errorf("BuildCharset() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAllSpecialsContainSimple(t *testing.T) {
	for _, ch := range simpleSpecialChars {
		if !strings.ContainsRune(allSpecialChars, ch) {
			t.Errorf("all specials missing simple special %q", ch)
		}
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		gen     func() *Generator
		charset string
		wantErr error
	}{
		{
			name:    "default settings",
			gen:     DefaultGenerator,
			charset: lowercaseChars + uppercaseChars + numberChars,
		},
		{
			name: "numbers only",
			gen: func() *Generator {
				return NewGenerator(NewSettings(false, false, false, true, SpecialNone, 32))
			},
			charset: numberChars,
		},
		{
			name: "all specials",
			gen: func() *Generator {
				return NewGenerator(NewSettings(false, false, false, false, SpecialAll, 32))
			},
			charset: allSpecialChars,
		},
		{
			name: "custom charset",
			gen: func() *Generator {
				g := NewGenerator(NewSettings(true, false, false, false, SpecialNone, 4))
				g.SetCustomCharset(strPtr("xy"))
				return g
			},
			charset: "xy",
		},
		{
			name: "custom charset with multibyte runes",
			gen: func() *Generator {
				g := NewGenerator(NewSettings(true, false, false, false, SpecialNone, 16))
				g.SetCustomCharset(strPtr("äöü€"))
				return g
			},
			charset: "äöü€",
		},
		{
			name: "no character classes",
			gen: func() *Generator {
				return NewGenerator(NewSettings(false, false, false, false, SpecialNone, 16))
			},
			wantErr: ErrEmptyOrMissingCharset,
		},
		{
			name: "no character classes and zero length",
			gen: func() *Generator {
				return NewGenerator(NewSettings(false, false, false, false, SpecialNone, 0))
			},
			wantErr: ErrEmptyOrMissingCharset,
		},
		{
			name: "custom mode without custom charset",
			gen: func() *Generator {
				return NewGenerator(NewSettings(true, true, true, true, SpecialAll, 16))
			},
			wantErr: ErrEmptyOrMissingCharset,
		},
		{
			name: "custom mode with empty custom charset",
			gen: func() *Generator {
				g := NewGenerator(NewSettings(true, true, true, true, SpecialAll, 16))
				g.SetCustomCharset(strPtr(""))
				return g
			},
			wantErr: ErrEmptyOrMissingCharset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.gen()
			result, err := g.Generate()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if n := utf8.RuneCountInString(result); n != int(g.Settings.Length) {
				t.Errorf("Generate() length = %d, want %d", n, g.Settings.Length)
			}
			for _, ch := range result {
				if !strings.ContainsRune(tt.charset, ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), tt.charset)
				}
			}
		})
	}
}

func TestGenerateZeroLength(t *testing.T) {
	g := NewGenerator(NewSettings(false, true, false, false, SpecialNone, 0))
	result, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if result != "" {
		t.Errorf("Generate() = %q, want empty string", result)
	}
}

func TestGenerateIgnoresCustomCharsetWhenDisabled(t *testing.T) {
	g := NewGenerator(NewSettings(false, false, false, true, SpecialNone, 64))
	g.SetCustomCharset(strPtr("xy"))

	result, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, ch := range result {
		if !strings.ContainsRune(numberChars, ch) {
			t.Fatalf("password %q contains non-digit %q", result, string(ch))
		}
	}
}

func TestGeneratePrependsDraws(t *testing.T) {
	g := NewGenerator(NewSettings(false, false, false, true, SpecialNone, 4))
	g.SetRandomSource(&scriptedSource{indices: []int{1, 2, 3, 4}})

	result, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	// Draws were '1','2','3','4'; the first draw ends up last.
	if result != "4321" {
		t.Errorf("Generate() = %q, want %q", result, "4321")
	}
}

func TestGenerateRecomputesCharset(t *testing.T) {
	g := NewGenerator(NewSettings(true, false, false, true, SpecialNone, 4))
	if g.Charset() != "" {
		t.Fatalf("Charset() before Generate = %q, want empty", g.Charset())
	}

	// The standard charset is recomputed even when generation fails in custom mode.
	if _, err := g.Generate(); !errors.Is(err, ErrEmptyOrMissingCharset) {
		t.Fatalf("Generate() error = %v, want %v", err, ErrEmptyOrMissingCharset)
	}
	if g.Charset() != numberChars {
		t.Errorf("Charset() = %q, want %q", g.Charset(), numberChars)
	}

	g.Settings.UseNumbers = false
	g.Settings.SpecialCharacterUsage = SpecialSimple
	g.Settings.UseCustomCharset = false
	if _, err := g.Generate(); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if g.Charset() != simpleSpecialChars {
		t.Errorf("Charset() = %q, want %q", g.Charset(), simpleSpecialChars)
	}
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	gen := func() string {
		g := NewGenerator(NewSettings(false, true, true, true, SpecialAll, 24))
		g.SetRandomSource(NewSeededSource(42))
		pw, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		return pw
	}

	if a, b := gen(), gen(); a != b {
		t.Errorf("seeded generators produced %q and %q", a, b)
	}
}

func TestGenerateRandomSourceError(t *testing.T) {
	g := DefaultGenerator()
	g.SetRandomSource(failingSource{})

	_, err := g.Generate()
	if !errors.Is(err, errEntropy) {
		t.Errorf("Generate() error = %v, want %v", err, errEntropy)
	}
}

func TestGenerateProducesVaryingPasswords(t *testing.T) {
	g := NewGenerator(NewSettings(false, true, true, true, SpecialNone, 16))
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		seen[password] = true
	}

	if len(seen) < 95 {
		t.Errorf("expected varying passwords, got %d distinct out of 100", len(seen))
	}
}

func TestSetCustomCharset(t *testing.T) {
	g := DefaultGenerator()
	if _, ok := g.CustomCharset(); ok {
		t.Fatal("CustomCharset() should be unset on a new generator")
	}

	cs := "abc"
	g.SetCustomCharset(&cs)
	cs = "changed"
	got, ok := g.CustomCharset()
	if !ok || got != "abc" {
		t.Errorf("CustomCharset() = %q, %v, want %q, true", got, ok, "abc")
	}

	g.SetCustomCharset(strPtr(""))
	got, ok = g.CustomCharset()
	if !ok || got != "" {
		t.Errorf("CustomCharset() = %q, %v, want empty and set", got, ok)
	}

	g.SetCustomCharset(nil)
	if _, ok := g.CustomCharset(); ok {
		t.Error("CustomCharset() should be unset after clearing")
	}
}

func TestEffectiveCharset(t *testing.T) {
	g := NewGenerator(NewSettings(false, false, false, true, SpecialSimple, 8))
	cs, err := g.EffectiveCharset()
	if err != nil {
		t.Fatalf("EffectiveCharset() unexpected error: %v", err)
	}
	if cs != numberChars+simpleSpecialChars {
		t.Errorf("EffectiveCharset() = %q", cs)
	}

	g.Settings.UseCustomCharset = true
	if _, err := g.EffectiveCharset(); !errors.Is(err, ErrEmptyOrMissingCharset) {
		t.Errorf("EffectiveCharset() error = %v, want %v", err, ErrEmptyOrMissingCharset)
	}
}

func TestSpecialCharacterUsageText(t *testing.T) {
	tests := []struct {
		in      string
		want    SpecialCharacterUsage
		wantErr bool
	}{
		{in: "None", want: SpecialNone},
		{in: "simple", want: SpecialSimple},
		{in: " ALL ", want: SpecialAll},
		{in: "", want: SpecialNone},
		{in: "some", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpecialCharacterUsage(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("ParseSpecialCharacterUsage() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpecialCharacterUsage() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSpecialCharacterUsage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSettingsJSON(t *testing.T) {
	data, err := json.Marshal(NewSettings(false, true, false, true, SpecialSimple, 12))
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"special_character_usage":"Simple"`) {
		t.Errorf("unexpected JSON: %s", data)
	}

	s := DefaultSettings()
	if err := json.Unmarshal([]byte(`{"special_character_usage":"All","length":20}`), &s); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if s.SpecialCharacterUsage != SpecialAll || s.Length != 20 || !s.UseLowercaseLetters {
		t.Errorf("json.Unmarshal() = %+v", s)
	}

	if err := json.Unmarshal([]byte(`{"special_character_usage":"Lots"}`), &s); err == nil {
		t.Error("json.Unmarshal() expected error for unknown special character usage")
	}
}
