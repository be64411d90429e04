package ui

import (
	tint "github.com/lrstanley/bubbletint"
)

type HelpKey struct {
	Key  string
	Desc string
}

type ThemeChangedMsg struct {
	Theme tint.Tint
}

// AnnotationSkipEngine marks commands that run without checking for mpv.
const AnnotationSkipEngine = "skip_engine"
