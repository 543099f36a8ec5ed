package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// maxStartLevel is the highest level the setup menu offers as a starting point.
const maxStartLevel = 10

// InvadersSelection holds the user's choices from the setup menu.
type InvadersSelection struct {
	Difficulty config.DifficultyPreset
	StartLevel int // 1 = start from the beginning
}

// difficultyEntries lists the selectable presets in cursor order.
var difficultyEntries = []struct {
	Label  string
	Preset config.DifficultyPreset
}{
	{"Normal", config.DifficultyNormal},
	{"Easy (5 lives, gentle sweep)", config.DifficultyEasy},
	{"Hard (2 lives, fast sweep)", config.DifficultyHard},
	{"Classic (no return fire)", config.DifficultyClassic},
}

// InvadersSetupModel lets users choose difficulty and starting level.
type InvadersSetupModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     InvadersSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewInvadersSetupModel creates a new setup menu model.
func NewInvadersSetupModel(width, height int) InvadersSetupModel {
	return InvadersSetupModel{
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m InvadersSetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m InvadersSetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m InvadersSetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleDifficultyKey(action)
}

func (m InvadersSetupModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyEntries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selection.Difficulty = difficultyEntries[m.cursor].Preset
		m.inLevelSelect = true
		m.levelCursor = 0
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m InvadersSetupModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < maxStartLevel-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection.StartLevel = m.levelCursor + 1 // 1-indexed
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the difficulty/level selection.
func (m InvadersSetupModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewDifficultySelect()
}

func (m InvadersSetupModel) viewDifficultySelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("I N V A D E R S", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, entry := range difficultyEntries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, entry.Label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m InvadersSetupModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("STARTING LEVEL", m.width))
	b.WriteString("\n\n")

	for i := range maxStartLevel {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%sLevel %2d", cursor, i+1)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m InvadersSetupModel) Selected() *InvadersSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m InvadersSetupModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m InvadersSetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m InvadersSetupModel) WantsBack() bool {
	return m.back
}

// RunInvadersSetup runs the setup menu and returns the selection.
// A nil selection means the user backed out or quit.
func RunInvadersSetup(cfg core.RuntimeConfig) (*InvadersSelection, core.RuntimeConfig, error) {
	model := NewInvadersSetupModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(InvadersSetupModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
