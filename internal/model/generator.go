package model

import "github.com/vaultpass/passgen/internal/crypto"

// DefaultCount is the number of passwords produced per request when count is omitted.
const DefaultCount = 5

// GenerateRequest represents a password generation request.
// Decode into DefaultGenerateRequest so that omitted settings keep their defaults.
type GenerateRequest struct {
	Settings      crypto.Settings `json:"settings"`
	CustomCharset *string         `json:"custom_charset"`
	Count         int             `json:"count"`
	Hash          bool            `json:"hash"`
}

// DefaultGenerateRequest returns a request for DefaultCount passwords with default settings.
func DefaultGenerateRequest() GenerateRequest {
	return GenerateRequest{
		Settings: crypto.DefaultSettings(),
		Count:    DefaultCount,
	}
}

// GeneratedPassword is a single generated password with its optional Argon2id hash.
type GeneratedPassword struct {
	Password string `json:"password"`
	Hash     string `json:"hash,omitempty"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords   []GeneratedPassword `json:"passwords"`
	Length      int                 `json:"length"`
	CharsetSize int                 `json:"charset_size"`
}
