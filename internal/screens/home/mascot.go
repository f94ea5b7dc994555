package home

import (
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

// CompanionVariant selects which companion art to display.
type CompanionVariant int

const (
	CompanionCalm      CompanionVariant = iota // Default: green or no mood yet
	CompanionConcerned                         // Yellow mood
	CompanionCaring                            // Red mood, offers a break
)

const companionCalm = `╭─────╮
│ ◠ ◠ │
│  ‿  │
╰─────╯`

const companionConcerned = `╭─────╮
│ • • │
│  ～ │
╰─────╯`

const companionCaring = `╭─────╮  ♥
│ ◡ ◡ │
│  ‿  │
╰─────╯`

// VariantFor picks the companion for the latest mood zone.
func VariantFor(zone assessment.MoodZone) CompanionVariant {
	switch zone {
	case assessment.MoodYellow:
		return CompanionConcerned
	case assessment.MoodRed:
		return CompanionCaring
	default:
		return CompanionCalm
	}
}

// RenderCompanion returns the companion art for the given variant.
func RenderCompanion(v CompanionVariant) string {
	art := companionCalm
	fg := theme.Secondary
	switch v {
	case CompanionConcerned:
		art = companionConcerned
		fg = theme.Warning
	case CompanionCaring:
		art = companionCaring
		fg = theme.Primary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
