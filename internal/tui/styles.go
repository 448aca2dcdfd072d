package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF")
	colorAccent     = lipgloss.Color("#FFD700")
	colorSuccess    = lipgloss.Color("#00E676")
	colorDanger     = lipgloss.Color("#FF5252")
	colorMuted      = lipgloss.Color("#636363")
	colorMutedLight = lipgloss.Color("#8C8C8C")
	colorWhite      = lipgloss.Color("#EEEEEE")
	colorSurface    = lipgloss.Color("#1E1E2E")
	colorRed        = lipgloss.Color("#E53935")
	colorBlue       = lipgloss.Color("#5B8DEF")
)

const selectionIndicator = "▎"

var (
	styleHeader = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStepCurrent = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStepOther = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true).
			MarginBottom(1)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Width(18)

	styleValue = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

// Hub banner styles. The banner is the first thing the operator reads on a
// teleop screen.
var (
	styleBannerActive = lipgloss.NewStyle().
				Background(colorSuccess).
				Foreground(lipgloss.Color("#000000")).
				Bold(true).
				Padding(1, 4)

	styleBannerInactive = lipgloss.NewStyle().
				Background(colorDanger).
				Foreground(colorWhite).
				Bold(true).
				Padding(1, 4)
)

var (
	styleAllianceRed  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleAllianceBlue = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
)

var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			MarginTop(1)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleFlash = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)
