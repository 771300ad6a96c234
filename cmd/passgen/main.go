package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/vaultpass/passgen/internal/crypto"
)

// placeholder is printed in place of a password when --placeholder is set and generation fails.
const placeholder = "error occurred"

// Options holds the parsed CLI flags.
type Options struct {
	Settings      crypto.Settings
	CustomCharset *string
	Count         int
	Placeholder   bool
	Seed          *int64
	Verbose       bool
}

// ParseFlags parses args into Options using fs, so tests do not touch the global flag set.
func ParseFlags(fs *pflag.FlagSet, args []string) (Options, error) {
	defaults := crypto.DefaultSettings()

	lower := fs.Bool("lower", defaults.UseLowercaseLetters, "include lowercase letters")
	upper := fs.Bool("upper", defaults.UseUppercaseLetters, "include uppercase letters")
	numbers := fs.Bool("numbers", defaults.UseNumbers, "include digits")
	special := fs.String("special", "none", "special characters: none, simple or all")
	length := fs.UintP("length", "l", defaults.Length, "password length")
	custom := fs.String("custom", "", "draw only from these characters")
	count := fs.IntP("count", "c", 5, "number of passwords to generate")
	usePlaceholder := fs.Bool("placeholder", false, "print \""+placeholder+"\" instead of failing")
	seed := fs.Int64("seed", 0, "seed a deterministic, not secure random source")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	usage, err := crypto.ParseSpecialCharacterUsage(*special)
	if err != nil {
		return Options{}, err
	}
	if *count < 1 {
		return Options{}, errors.New("count must be at least 1")
	}

	opts := Options{
		Settings:    crypto.NewSettings(fs.Changed("custom"), *lower, *upper, *numbers, usage, *length),
		Count:       *count,
		Placeholder: *usePlaceholder,
		Verbose:     *verbose,
	}
	if fs.Changed("custom") {
		opts.CustomCharset = custom
	}
	if fs.Changed("seed") {
		opts.Seed = seed
	}
	return opts, nil
}

// Run generates opts.Count passwords and writes one per line to w.
func Run(opts Options, w io.Writer) error {
	g := crypto.NewGenerator(opts.Settings)
	g.SetCustomCharset(opts.CustomCharset)
	if opts.Seed != nil {
		g.SetRandomSource(crypto.NewSeededSource(*opts.Seed))
	}

	for i := 0; i < opts.Count; i++ {
		pw, err := g.Generate()
		if err != nil {
			if !opts.Placeholder {
				return err
			}
			slog.Debug("generation failed", "error", err)
			pw = placeholder
		}
		if _, err := fmt.Fprintln(w, pw); err != nil {
			return err
		}
	}

	slog.Debug("generated passwords", "count", opts.Count, "length", opts.Settings.Length, "charset", g.Charset())
	return nil
}

func main() {
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("passgen", pflag.ContinueOnError)
	opts, err := ParseFlags(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := Run(opts, os.Stdout); err != nil {
		slog.Error("password generation failed", "error", err)
		os.Exit(1)
	}
}
