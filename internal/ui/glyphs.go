package ui

import (
	"strings"

	"github.com/kyokomi/emoji/v2"
	"github.com/ygelfand/mpvctl/internal/config"
)

// Glyphs are the symbols drawn on the controller.
type Glyphs struct {
	Play      string
	Pause     string
	Buffering string
	Ended     string
	Idle      string
}

var (
	asciiGlyphs = Glyphs{Play: ">", Pause: "||", Buffering: "..", Ended: "[]", Idle: "--"}
	nerdGlyphs  = Glyphs{Play: "\uf04b", Pause: "\uf04c", Buffering: "\uf252", Ended: "\uf04d", Idle: "\uf186"}
)

// GlyphsFor returns the glyph set for the configured icon type.
func GlyphsFor(t config.IconType) Glyphs {
	switch t {
	case config.IconTypeEmoji:
		return Glyphs{
			Play:      emojiGlyph(":arrow_forward:"),
			Pause:     emojiGlyph(":pause_button:"),
			Buffering: emojiGlyph(":hourglass_flowing_sand:"),
			Ended:     emojiGlyph(":stop_button:"),
			Idle:      emojiGlyph(":zzz:"),
		}
	case config.IconTypeNerdFonts:
		return nerdGlyphs
	default:
		return asciiGlyphs
	}
}

func emojiGlyph(code string) string {
	return strings.TrimSpace(emoji.Sprint(code))
}
