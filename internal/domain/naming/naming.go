// Package naming derives archive file names for the replays of a match.
//
// Names are pure functions of their inputs: two player names, the game's
// position in the match, the replay's position in the game and the number
// of replays the game has.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Defaults used by New.
const (
	DefaultExtension = "aoe2record"
	DefaultPlayer1   = "Player1"
	DefaultPlayer2   = "Player2"
)

const (
	unsafeChars     = `<>:"/\|?*`
	lastControlChar = 0x20
	lastASCII       = 0x7F
	dummyAnnotation = " (dummy file)"
	zipExtension    = "zip"
)

// Option applies a configuration option to the Encoder.
type Option func(*Encoder)

// WithExtension sets the replay file extension, without the dot.
func WithExtension(ext string) Option {
	return func(e *Encoder) {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			e.extension = ext
		}
	}
}

// WithPlaceholders sets the names used when a player name normalizes to nothing.
func WithPlaceholders(player1, player2 string) Option {
	return func(e *Encoder) {
		if player1 != "" {
			e.player1 = player1
		}
		if player2 != "" {
			e.player2 = player2
		}
	}
}

// WithTransliteration strips diacritics before dropping non-ASCII runes, so
// "Jöhn" becomes "John" rather than "Jhn".
func WithTransliteration(enabled bool) Option {
	return func(e *Encoder) {
		e.transliterate = enabled
	}
}

// Encoder builds file names.
type Encoder struct {
	extension     string
	player1       string
	player2       string
	transliterate bool
}

// New creates an Encoder with the default extension and placeholders.
func New(opts ...Option) *Encoder {
	e := &Encoder{
		extension: DefaultExtension,
		player1:   DefaultPlayer1,
		player2:   DefaultPlayer2,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalize makes name safe for a file system: non-ASCII runes, whitespace,
// control characters up to 0x20 and <>:"/\|?* are removed. An empty result
// yields fallback.
func (e *Encoder) Normalize(name, fallback string) string {
	if e.transliterate {
		name = stripDiacritics(name)
	}
	out := strings.Map(func(r rune) rune {
		switch {
		case r > lastASCII, r <= lastControlChar, unicode.IsSpace(r):
			return -1
		case strings.ContainsRune(unsafeChars, r):
			return -1
		default:
			return r
		}
	}, name)
	if out == "" {
		return fallback
	}
	return out
}

// MatchName returns "{player1}_vs_{player2}" with both names normalized.
func (e *Encoder) MatchName(player1, player2 string) string {
	return e.Normalize(player1, e.player1) + "_vs_" + e.Normalize(player2, e.player2)
}

// ZipFilename names the archive holding every replay of the match.
func (e *Encoder) ZipFilename(player1, player2 string) string {
	return e.MatchName(player1, player2) + "." + zipExtension
}

// ReplayFilename names replay replayIdx of game gameIdx (both zero-based)
// when the game has replayCount replays:
// "{match}_G{gameIdx+1}{suffix}.{ext}". The suffix is empty for a single
// replay and a fixed-width base-26 letter string otherwise.
func (e *Encoder) ReplayFilename(player1, player2 string, gameIdx, replayIdx, replayCount int) string {
	return fmt.Sprintf("%s_G%d%s.%s",
		e.MatchName(player1, player2), gameIdx+1, SubNumber(replayIdx, replayCount), e.extension)
}

// ReplayFilenamePreview is ReplayFilename annotated for display when the
// replay did not parse.
func (e *Encoder) ReplayFilenamePreview(player1, player2 string, gameIdx, replayIdx, replayCount int, dummy bool) string {
	name := e.ReplayFilename(player1, player2, gameIdx, replayIdx, replayCount)
	if dummy {
		return name + dummyAnnotation
	}
	return name
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
