package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/model"
)

// MaxLength is the longest password the API accepts. The generator itself
// accepts any length; a zero length takes crypto.DefaultLength.
const MaxLength = 48

// MaxHashCount caps the batch size when every password is argon2-hashed.
const MaxHashCount = 10

var (
	ErrLengthTooLong = fmt.Errorf("password length must be at most %d", MaxLength)
	ErrInvalidCount  = errors.New("count is out of range")
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	maxCount   int
	hashParams crypto.HashParams
	source     crypto.RandomSource
}

// NewGeneratorService creates a GeneratorService that produces at most maxCount passwords per request.
func NewGeneratorService(maxCount int) *GeneratorService {
	if maxCount < 1 {
		maxCount = model.DefaultCount
	}
	return &GeneratorService{
		maxCount:   maxCount,
		hashParams: crypto.DefaultHashParams(),
		source:     crypto.CryptoSource{},
	}
}

// Generate produces req.Count passwords from req.Settings.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	state := model.ProfileState{Settings: req.Settings, CustomCharset: req.CustomCharset}
	return s.generate(state, req.Count, req.Hash, "api")
}

// countLimit returns the largest batch allowed for a request.
func (s *GeneratorService) countLimit(hash bool) int {
	if hash && s.maxCount > MaxHashCount {
		return MaxHashCount
	}
	return s.maxCount
}

func (s *GeneratorService) generate(state model.ProfileState, count int, hash bool, source string) (model.GenerateResponse, error) {
	if count == 0 {
		count = model.DefaultCount
	}
	if limit := s.countLimit(hash); count < 0 || count > limit {
		metrics.GenerationFailures.WithLabelValues("invalid_count").Inc()
		return model.GenerateResponse{}, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidCount, limit)
	}
	if state.Settings.Length == 0 {
		state.Settings.Length = crypto.DefaultLength
	}
	if state.Settings.Length > MaxLength {
		metrics.GenerationFailures.WithLabelValues("length_too_long").Inc()
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	g := state.Generator()
	g.SetRandomSource(s.source)

	charset, err := g.EffectiveCharset()
	if err != nil {
		metrics.GenerationFailures.WithLabelValues("empty_charset").Inc()
		return model.GenerateResponse{}, err
	}

	passwords := make([]model.GeneratedPassword, 0, count)
	for i := 0; i < count; i++ {
		pw, err := g.Generate()
		if err != nil {
			metrics.GenerationFailures.WithLabelValues("generate").Inc()
			return model.GenerateResponse{}, err
		}

		gp := model.GeneratedPassword{Password: pw}
		if hash {
			if gp.Hash, err = s.hashParams.Hash(pw); err != nil {
				return model.GenerateResponse{}, err
			}
		}
		passwords = append(passwords, gp)
	}

	metrics.PasswordsGenerated.WithLabelValues(source).Add(float64(len(passwords)))
	metrics.PasswordLength.Observe(float64(state.Settings.Length))

	return model.GenerateResponse{
		Passwords:   passwords,
		Length:      int(state.Settings.Length),
		CharsetSize: utf8.RuneCountInString(charset),
	}, nil
}
