package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iconforge/iconforge/pkg/source"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CategoryListModel - Interactive category selection
// =============================================================================

// CategoryListModel is the bubbletea model for interactive category selection.
type CategoryListModel struct {
	Categories []source.Category
	Cursor     int
	Selected   *source.Category
}

// NewCategoryListModel creates a new category list model.
func NewCategoryListModel(categories []source.Category) CategoryListModel {
	return CategoryListModel{Categories: categories}
}

func (m CategoryListModel) Init() tea.Cmd {
	return nil
}

func (m CategoryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Categories)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Categories[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m CategoryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Icon Category"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, cat := range m.Categories {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-25s  %s", cursor, cat.Name,
			listDimStyle.Render(fmt.Sprintf("%d icons", len(cat.Icons))))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Categories))))

	return b.String()
}

// selectCategory runs the interactive picker and returns the chosen category,
// or nil when the user quit without selecting.
func selectCategory(categories []source.Category) (*source.Category, error) {
	model, err := tea.NewProgram(NewCategoryListModel(categories)).Run()
	if err != nil {
		return nil, err
	}
	final, ok := model.(CategoryListModel)
	if !ok {
		return nil, nil
	}
	return final.Selected, nil
}
