package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	MedGreen    = lipgloss.Color("#00C832")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	Amber       = lipgloss.Color("#FFB000")
	Black       = lipgloss.Color("#0D0208")
	MidGray     = lipgloss.Color("#3a3a4e")
	LightGray   = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#e0e0e0")
	Red         = lipgloss.Color("#FF4136")

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(DarkGreen).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	StatusEndpointStyle = lipgloss.NewStyle().
				Background(Green).
				Foreground(Black).
				Bold(true).
				Padding(0, 1)

	// Route tabs
	TabStyle = lipgloss.NewStyle().
			Foreground(DarkGreen).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Black).
			Background(Green).
			Bold(true).
			Padding(0, 1)

	// Lists
	CursorStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(White)

	DimItemStyle = lipgloss.NewStyle().
			Foreground(MidGray)

	MarkerStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	MissingStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Italic(true)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)

	ActivePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// Input
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)

	// Reply
	ReplyStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(DimGreen)

	// Spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(BrightGreen)

	// Banner
	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(MedGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(DarkGreen)

	MenuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Padding(0, 1)
)

const Banner = "factorpad"
