package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background
	RgbBorder     = tcell.NewRGBColor(60, 62, 80)

	RgbPrincess = tcell.NewRGBColor(255, 182, 213) // Pink
	RgbPlayer1  = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbPlayer2  = tcell.NewRGBColor(144, 238, 144) // Light grass green

	RgbEnemyStego = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbEnemyTha   = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbEnemyTrex  = tcell.NewRGBColor(190, 120, 255) // Violet

	RgbStatusBar    = tcell.NewRGBColor(255, 255, 255)
	RgbStatusText   = tcell.NewRGBColor(0, 0, 0)
	RgbScoreBg      = tcell.NewRGBColor(255, 255, 255)
	RgbPhaseIdle    = tcell.NewRGBColor(135, 206, 250)
	RgbPhaseRunning = tcell.NewRGBColor(144, 238, 144)
	RgbPhaseOver    = tcell.NewRGBColor(200, 50, 50)
	RgbAudioMuted   = tcell.NewRGBColor(255, 0, 0)
	RgbAudioUnmuted = tcell.NewRGBColor(0, 255, 0)

	RgbOverlayBorder = tcell.NewRGBColor(255, 255, 0)
	RgbOverlayText   = tcell.NewRGBColor(255, 255, 255)
	RgbOverlayBg     = tcell.NewRGBColor(40, 40, 60)
)

// EnemyColor returns the color for an enemy sprite index
func EnemyColor(sprite int) tcell.Color {
	switch sprite {
	case 0:
		return RgbEnemyStego
	case 1:
		return RgbEnemyTha
	default:
		return RgbEnemyTrex
	}
}

// PlayerColor returns the color for a player slot
func PlayerColor(slot int) tcell.Color {
	if slot == 1 {
		return RgbPlayer2
	}
	return RgbPlayer1
}
