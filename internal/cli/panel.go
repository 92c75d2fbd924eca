package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stillgbx/coltrans"
	"github.com/stillgbx/coltrans/pivot"
	"github.com/stillgbx/coltrans/scene"
)

// Field indices: three groups of three axes, in panel order.
const (
	fieldLocX = iota
	fieldLocY
	fieldLocZ
	fieldRotX
	fieldRotY
	fieldRotZ
	fieldScaleX
	fieldScaleY
	fieldScaleZ
	fieldCount
)

var fieldSteps = [fieldCount]float64{
	0.1, 0.1, 0.1, // location, world units
	5, 5, 5, // rotation, degrees
	0.1, 0.1, 0.1, // scale
}

// panelModel is the bubbletea model for the interactive property panel.
type panelModel struct {
	doc    *SceneFile
	path   string
	host   *Host
	engine *coltrans.Engine
	undo   *UndoStack

	// values holds the panel fields: location, rotation in degrees, scale.
	values [fieldCount]float64
	cursor int
	status string
	warn   bool
}

func newPanelModel(doc *SceneFile, path string, host *Host, engine *coltrans.Engine, undo *UndoStack) panelModel {
	m := panelModel{
		doc:    doc,
		path:   path,
		host:   host,
		engine: engine,
		undo:   undo,
		status: "ready",
	}
	m.resetValues()
	return m
}

func (m *panelModel) resetValues() {
	m.values = [fieldCount]float64{}
	m.values[fieldScaleX] = 1
	m.values[fieldScaleY] = 1
	m.values[fieldScaleZ] = 1
}

// delta converts the panel fields to the engine's delta (radians for rotation).
func (m panelModel) delta() coltrans.Delta {
	return coltrans.Delta{
		Translation: [3]float64{m.values[fieldLocX], m.values[fieldLocY], m.values[fieldLocZ]},
		Rotation:    radians([3]float64{m.values[fieldRotX], m.values[fieldRotY], m.values[fieldRotZ]}),
		Scale:       [3]float64{m.values[fieldScaleX], m.values[fieldScaleY], m.values[fieldScaleZ]},
	}
}

func (m panelModel) Init() tea.Cmd {
	return nil
}

func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		// Never leave a preview applied on quit.
		m.engine.SetPreviewEnabled(false)
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < fieldCount-1 {
			m.cursor++
		}

	case "left", "h":
		m.adjust(-fieldSteps[m.cursor])
	case "right", "l":
		m.adjust(fieldSteps[m.cursor])

	case "p":
		m.engine.SetPreviewEnabled(!m.engine.PreviewEnabled())
		if m.engine.PreviewEnabled() {
			m.pushDelta()
		} else {
			m.setStatus("preview off, baseline restored", false)
		}

	case "m":
		m.host.Pivot = pivot.Mode((int(m.host.Pivot) + 1) % 5)
		if m.engine.PreviewEnabled() {
			m.pushDelta()
		}

	case "b":
		m.engine.SetBakeOnCommit(!m.engine.BakeOnCommit())

	case "r":
		m.engine.Reset()
		m.resetValues()
		m.setStatus("reset, baseline restored", false)

	case "a", "enter":
		m.commit()
	}

	return m, nil
}

func (m *panelModel) adjust(step float64) {
	m.values[m.cursor] += step
	if m.cursor >= fieldScaleX && m.values[m.cursor] < coltrans.MIN_SCALE {
		m.values[m.cursor] = coltrans.MIN_SCALE
	}
	m.pushDelta()
}

func (m *panelModel) pushDelta() {
	if err := m.engine.EditDelta(m.delta()); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if m.engine.State() == coltrans.StatePreviewing {
		m.setStatus("previewing", false)
	}
}

func (m *panelModel) commit() {
	report, err := m.engine.Apply()
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	m.resetValues()
	m.doc.Sync(m.host)
	if err := SaveSceneFile(m.path, m.doc); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("%s, saved to %s", report, m.path), false)
}

func (m *panelModel) setStatus(s string, warn bool) {
	m.status = s
	m.warn = warn
}

func (m panelModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Collection Transform"))
	b.WriteString("\n\n")

	col := m.host.SelectedCollection()
	if col != nil {
		all := col.AllObjects()
		roots := scene.Roots(all)
		b.WriteString(styleLabel.Render("Collection: "))
		b.WriteString(styleValue.Render(fmt.Sprintf("%s (%d root / %d total)", col.Name, len(roots), len(all))))
	} else {
		b.WriteString(styleWarning.Render("No collection selected"))
	}
	b.WriteString("\n")

	b.WriteString(styleLabel.Render("Pivot: "))
	b.WriteString(styleValue.Render(m.host.Pivot.String()))
	b.WriteString(styleLabel.Render("   Preview: "))
	b.WriteString(m.toggleView(m.engine.PreviewEnabled()))
	b.WriteString(styleLabel.Render("   Bake: "))
	b.WriteString(m.toggleView(m.engine.BakeOnCommit()))
	b.WriteString(styleLabel.Render(fmt.Sprintf("   Undo: %d   Redraws: %d", m.undo.Len(), m.host.Redraws())))
	b.WriteString("\n\n")

	b.WriteString(m.groupView("Location (world delta)", fieldLocX, "%+.2f"))
	b.WriteString("\n")
	b.WriteString(m.groupView("Rotation (world, XYZ order, deg)", fieldRotX, "%+.1f"))
	b.WriteString("\n")
	b.WriteString(m.groupView("Scale (world)", fieldScaleX, "%.2f"))
	b.WriteString("\n\n")

	if m.warn {
		b.WriteString(styleWarning.Render(m.status))
	} else {
		b.WriteString(styleStatus.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("↑/↓ field  ←/→ adjust  p preview  m pivot  b bake  a apply  r reset  q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m panelModel) toggleView(on bool) string {
	if on {
		return stylePreviewOn.Render("on")
	}
	return styleLabel.Render("off")
}

func (m panelModel) groupView(title string, base int, format string) string {
	var b strings.Builder
	b.WriteString(styleLabel.Render(title))
	b.WriteString("\n")

	axes := [3]string{"X", "Y", "Z"}
	for i := 0; i < 3; i++ {
		field := base + i
		line := fmt.Sprintf("%s  "+format, axes[i], m.values[field])
		if field == m.cursor {
			b.WriteString(styleSelected.Render("▸ " + line))
		} else {
			b.WriteString(styleValue.Render("  " + line))
		}
		if i < 2 {
			b.WriteString("\n")
		}
	}
	return styleGroup.Render(b.String())
}

// newPanelCmd creates the panel command: an interactive property panel with
// live preview over a TOML scene file.
func newPanelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel [scene.toml]",
		Short: "Interactive transform panel with live preview",
		Long: `Open an interactive property panel for a scene file.

Field edits drive a live, non-destructive preview of the transform while
preview mode is on; apply commits exactly one undoable change and writes the
scene back, reset restores the pre-preview state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := LoadSceneFile(args[0])
			if err != nil {
				return err
			}
			host, err := doc.BuildHost()
			if err != nil {
				return err
			}

			undo := &UndoStack{}
			engine := coltrans.NewEngine(host, host)
			engine.Undo = undo
			engine.Baker = scene.RotationBaker{}
			engine.Viewport = host

			engine.Events.Subscribe(coltrans.PREVIEW_BEGIN, func(ev coltrans.Event) {
				begin := ev.(coltrans.PreviewBeginEvent)
				logger.Debug("preview baseline captured", "collection", begin.Collection, "roots", begin.Roots)
			})
			engine.Events.Subscribe(coltrans.PREVIEW_END, func(ev coltrans.Event) {
				end := ev.(coltrans.PreviewEndEvent)
				logger.Debug("preview baseline restored", "collection", end.Collection)
			})
			engine.Events.Subscribe(coltrans.COMMIT, func(ev coltrans.Event) {
				commit := ev.(coltrans.CommitEvent)
				logger.Debug("committed", "collection", commit.Report.Collection, "roots", commit.Report.RootCount)
			})

			model := newPanelModel(doc, args[0], host, engine, undo)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	return cmd
}
