package ui

import (
	"fmt"
	"sync"

	tint "github.com/lrstanley/bubbletint"
)

const (
	// FooterHeight is the key hint line below the surface.
	FooterHeight = 1
)

type LayoutManager struct {
	mu          sync.RWMutex
	totalWidth  int
	totalHeight int
	theme       tint.Tint
}

var (
	layoutInstance *LayoutManager
	layoutOnce     sync.Once
)

func GetLayout() *LayoutManager {
	layoutOnce.Do(func() {
		layoutInstance = &LayoutManager{
			theme: MpvctlTheme,
		}
	})
	return layoutInstance
}

func (l *LayoutManager) Update(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.totalWidth = width
	l.totalHeight = height
}

func (l *LayoutManager) SetTheme(t tint.Tint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.theme = t
}

func (l *LayoutManager) Theme() tint.Tint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.theme == nil {
		return MpvctlTheme
	}
	return l.theme
}

func (l *LayoutManager) TotalWidth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalWidth
}

func (l *LayoutManager) TotalHeight() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalHeight
}

// SurfaceHeight returns the rows available to the player surface, which the
// controller overlays.
func (l *LayoutManager) SurfaceHeight() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return max(l.totalHeight-FooterHeight, 0)
}

// ControllerWidth returns the inner width of the controller bar.
func (l *LayoutManager) ControllerWidth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	// 1 border char per side (2) + 1 padding char per side (2) = 4
	return max(l.totalWidth-4, 0)
}

// FormatDuration converts seconds to a human-readable H:MM:SS or M:SS string
func FormatDuration(seconds float64) string {
	total := int(max(seconds, 0))
	minutes := total / 60
	hours := minutes / 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes%60, total%60)
	}
	return fmt.Sprintf("%d:%02d", minutes, total%60)
}
