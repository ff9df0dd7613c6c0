package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pipspect/pipspect/pkg/warehouse"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// distPickerModel is the bubbletea model for interactive artifact selection.
type distPickerModel struct {
	release  *warehouse.Release
	cursor   int
	selected int // index into release.URLs, -1 until chosen
	height   int
	offset   int
}

func newDistPickerModel(release *warehouse.Release) distPickerModel {
	return distPickerModel{
		release:  release,
		selected: -1,
		height:   15,
	}
}

func (m distPickerModel) Init() tea.Cmd {
	return nil
}

func (m distPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.release.URLs)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// distLabel names an artifact for the list: wheels by their tag, source
// archives as sdist, everything else by package type.
func distLabel(dist *warehouse.DistributionURL) string {
	switch dist.PackageType {
	case "sdist":
		return "sdist"
	case "bdist_wheel":
		if name, err := dist.WheelName(); err == nil {
			return name.Tag.String()
		}
		return dist.Filename
	default:
		return dist.PackageType
	}
}

func (m distPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Artifact"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.release.URLs) {
		end = len(m.release.URLs)
	}

	for i := m.offset; i < end; i++ {
		dist := &m.release.URLs[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := cursor + style.Render(distLabel(dist)) + "  " + listDimStyle.Render(dist.Filename)
		if dist.Yanked {
			line += "  " + StyleYanked.Render("[YANKED]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// runDistPicker shows the interactive artifact list and returns the
// chosen distribution, or nil if the user aborted.
func runDistPicker(release *warehouse.Release) (*warehouse.DistributionURL, error) {
	final, err := tea.NewProgram(newDistPickerModel(release)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(distPickerModel)
	if !ok || m.selected < 0 {
		return nil, nil
	}
	return &release.URLs[m.selected], nil
}
