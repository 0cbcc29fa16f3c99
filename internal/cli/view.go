package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skillgraph/pkg/engine"
	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/pipeline"
	"github.com/matzehuels/skillgraph/pkg/render"
	"github.com/matzehuels/skillgraph/pkg/render/term"
)

// wheelZoom is the zoom factor of one wheel step.
const wheelZoom = 1.2

var (
	statusBarStyle = lipgloss.NewStyle().Foreground(colorGray)
	statusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// viewCommand creates the interactive terminal view.
func (c *CLI) viewCommand() *cobra.Command {
	var input, category, theme string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the skill graph in the terminal",
		Long: `Browse the skill graph in the terminal.

Keys:
  1-7        show one category
  c, esc     show everything
  r, space   zoom to fit
  t          toggle dark/light
  q, ctrl+c  quit

Click a node to center it, drag it to move it, scroll to zoom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), input, category, theme)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "graph JSON file (default: embedded catalog)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "initial category")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme: auto, dark, light (default from config)")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, category, theme string) error {
	if category == "" {
		category = c.cfg.View.Category
	}
	cat, err := errors.ValidateCategory(category)
	if err != nil {
		return err
	}
	th, err := c.resolveTheme(theme)
	if err != nil {
		return err
	}
	g, err := pipeline.Load(pipeline.Options{InputPath: input})
	if err != nil {
		return err
	}

	e := engine.New(g, engine.Options{
		Engine:   c.cfg.Engine,
		Layout:   c.cfg.Layout,
		Physics:  c.cfg.Physics,
		Render:   c.cfg.Render,
		Theme:    th,
		Category: cat,
	})
	loggerFromContext(ctx).Debug("starting view", "engine", e.ID(), "nodes", g.NodeCount(), "category", cat)

	m := newViewModel(th == render.Dark)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	var last string
	d := engine.NewDriver(e, func(f render.Frame) {
		msg := frameMsg{
			canvas:   term.Render(f).String(),
			category: e.Category(),
			nodes:    len(f.Nodes),
			settled:  e.Settled(),
		}
		key := fmt.Sprintf("%s|%s|%d|%t", msg.canvas, msg.category, msg.nodes, msg.settled)
		if key == last {
			return
		}
		last = key
		p.Send(msg)
	})
	m.post = d.Post

	driverCtx, stop := context.WithCancel(ctx)
	driverDone := make(chan error, 1)
	go func() { driverDone <- d.Run(driverCtx) }()

	_, err = p.Run()
	stop()
	if derr := <-driverDone; err == nil {
		err = derr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// frameMsg carries a drawn frame from the driver goroutine.
type frameMsg struct {
	canvas   string
	category graph.Category
	nodes    int
	settled  bool
}

// viewModel is the bubbletea model of the view command. It translates
// terminal input into engine events and shows the latest frame.
type viewModel struct {
	post  func(engine.Event)
	dark  bool
	cols  int
	rows  int
	frame frameMsg

	// press is the cell of the left-button press in progress, if any. A
	// release without motion is a click; motion turns it into a drag.
	press    *[2]int
	dragging bool
}

func newViewModel(dark bool) *viewModel {
	return &viewModel{dark: dark, post: func(engine.Event) {}}
}

func (m *viewModel) Init() tea.Cmd { return nil }

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, max(msg.Height-1, 0)
		vp := term.ViewportFor(m.cols, m.rows)
		m.post(engine.ViewportChanged{Width: vp.Width, Height: vp.Height})

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c", "esc":
			m.post(engine.FilterCleared{})
		case "r", " ":
			m.post(engine.ResetView{})
		case "t":
			m.dark = !m.dark
			m.post(engine.ThemeChanged{Dark: m.dark})
		default:
			if cat, ok := categoryKey(key); ok {
				m.post(engine.CategorySelected{Category: cat})
			}
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case frameMsg:
		m.frame = msg
	}
	return m, nil
}

func (m *viewModel) mouse(msg tea.MouseMsg) {
	x, y := term.CellAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Y >= m.rows {
			return
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.press = &[2]int{msg.X, msg.Y}
			m.dragging = false
		case tea.MouseButtonWheelUp:
			m.post(engine.Zoomed{X: x, Y: y, Factor: wheelZoom})
		case tea.MouseButtonWheelDown:
			m.post(engine.Zoomed{X: x, Y: y, Factor: 1 / wheelZoom})
		}

	case tea.MouseActionMotion:
		if m.press == nil || msg.Button != tea.MouseButtonLeft {
			return
		}
		if !m.dragging {
			if *m.press == [2]int{msg.X, msg.Y} {
				return
			}
			px, py := term.CellAt(m.press[0], m.press[1])
			m.post(engine.DragStarted{X: px, Y: py})
			m.dragging = true
		}
		m.post(engine.DragMoved{X: x, Y: y})

	case tea.MouseActionRelease:
		if m.press == nil {
			return
		}
		if m.dragging {
			m.post(engine.DragEnded{X: x, Y: y})
		} else {
			px, py := term.CellAt(m.press[0], m.press[1])
			m.post(engine.PointerClicked{X: px, Y: py})
		}
		m.press = nil
		m.dragging = false
	}
}

func (m *viewModel) View() string {
	if m.frame.canvas == "" {
		return m.status("laying out...")
	}
	return m.frame.canvas + "\n" + m.status("")
}

func (m *viewModel) status(note string) string {
	title := "All skills"
	if m.frame.category != "" {
		title = m.frame.category.Title()
	}
	parts := []string{statusKeyStyle.Render(title)}
	if m.frame.nodes > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", m.frame.nodes))
	}
	if note == "" && !m.frame.settled {
		note = "settling"
	}
	if note != "" {
		parts = append(parts, note)
	}
	parts = append(parts, "1-7 category · c clear · r fit · t theme · q quit")
	return statusBarStyle.Render(strings.Join(parts, "  "))
}

// categoryKey maps the digit keys to categories in catalog order.
func categoryKey(key string) (graph.Category, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	cats := graph.Categories()
	i := int(key[0] - '1')
	if i >= len(cats) {
		return "", false
	}
	return cats[i], true
}
