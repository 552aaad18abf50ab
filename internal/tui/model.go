// Package tui is the terminal client: a bubbletea program that drives a
// controller.Controller and draws its session layout.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ds124wfegd/animegen/internal/controller"
	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/datauri"
	"github.com/ds124wfegd/animegen/internal/pkg/preview"
	"github.com/ds124wfegd/animegen/internal/pkg/storage"
	"github.com/ds124wfegd/animegen/internal/pkg/ui"
	"github.com/ds124wfegd/animegen/internal/session"
)

type Options struct {
	Store    storage.FileStorage // where downloads go, defaults to the working dir
	Renderer preview.Renderer
	Copy     func(string) error // defaults to the system clipboard
}

// generatedMsg carries the relay's answer back into Update.
type generatedMsg struct {
	resp entity.GenerateResponse
	err  error
}

type Model struct {
	ctrl     *controller.Controller
	store    storage.FileStorage
	renderer preview.Renderer
	copy     func(string) error

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width   int
	height  int
	status  string
	renders map[string]string
}

func New(ctrl *controller.Controller, opts Options) Model {
	if opts.Store == nil {
		opts.Store = storage.NewFileStorage(".")
	}
	if opts.Renderer == nil {
		opts.Renderer = preview.NewRenderer()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = "path/to/photo.jpg"
	ti.Prompt = "Photo: "
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleHeader

	return Model{
		ctrl:     ctrl,
		store:    opts.Store,
		renderer: opts.Renderer,
		copy:     opts.Copy,
		input:    ti,
		spinner:  sp,
		help:     help.New(),
		keys:     keys,
		renders:  make(map[string]string),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctrl *controller.Controller, opts Options) error {
	p := tea.NewProgram(New(ctrl, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		clear(m.renders)
		return m, nil

	case generatedMsg:
		m.status = m.outcomeStatus(msg)
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Snapshot().Phase() != session.Transforming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	layout := m.ctrl.Snapshot().Layout()

	// the path input owns the keyboard until a photo is chosen
	if layout.ShowUpload {
		switch {
		case key.Matches(msg, m.keys.Choose):
			m.choose()
			return m, nil
		case msg.Type == tea.KeyEsc:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case layout.ControlsDisabled:
		// generate, reset and download wait for the transform to settle
	case key.Matches(msg, m.keys.Generate):
		return m.generate()
	case key.Matches(msg, m.keys.Reset):
		return m, m.reset()
	case key.Matches(msg, m.keys.Download):
		m.download()
	case key.Matches(msg, m.keys.Copy):
		m.copyLink()
	}
	return m, nil
}

func (m *Model) choose() {
	path := strings.TrimSpace(m.input.Value())
	if path == "" {
		m.status = ui.FormatWarning("Type the path of a photo first")
		return
	}
	if err := m.ctrl.Select(path); err != nil {
		m.status = ui.FormatError(err.Error())
		return
	}
	m.input.Blur()
	m.status = ""
}

func (m Model) generate() (tea.Model, tea.Cmd) {
	pending, ok := m.ctrl.StartGenerate()
	if !ok {
		return m, nil
	}
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, resolve(pending))
}

func resolve(p *controller.Pending) tea.Cmd {
	return func() tea.Msg {
		resp, err := p.Resolve(context.Background())
		return generatedMsg{resp: resp, err: err}
	}
}

func (m *Model) outcomeStatus(msg generatedMsg) string {
	switch {
	case msg.err != nil:
		return ""
	case msg.resp.Message != "":
		return ui.FormatWarning(msg.resp.Message)
	case m.ctrl.Snapshot().HasTransformed():
		return ui.FormatSuccess("Your anime version is ready")
	}
	return ""
}

func (m *Model) reset() tea.Cmd {
	m.ctrl.Reset()
	m.input.SetValue("")
	m.status = ""
	clear(m.renders)
	return m.input.Focus()
}

func (m *Model) download() {
	artifact, ok := m.ctrl.Download()
	if !ok {
		return
	}
	path, err := artifact.Save(m.store)
	switch {
	case errors.Is(err, controller.ErrRemoteArtifact):
		m.status = ui.FormatInfo("Image is hosted at " + string(artifact.Payload) + " (press c to copy the link)")
	case err != nil:
		m.status = ui.FormatError("Failed to save image: " + err.Error())
	default:
		m.status = ui.FormatSuccess("Saved " + path)
	}
}

func (m *Model) copyLink() {
	artifact, ok := m.ctrl.Download()
	if !ok {
		return
	}
	if artifact.Inline() {
		m.status = ui.FormatInfo("Image is stored inline, press d to save it")
		return
	}
	if err := m.copy(string(artifact.Payload)); err != nil {
		m.status = ui.FormatMuted("(Clipboard access failed, please copy manually)")
		return
	}
	m.status = ui.FormatSuccess("Copied image link")
}

func (m Model) View() string {
	s := m.ctrl.Snapshot()
	layout := s.Layout()

	var b strings.Builder
	b.WriteString(ui.StyleTitle.Render("AI Anime Character Generator"))
	b.WriteString("\n")
	b.WriteString(ui.FormatMuted("Transform yourself into an anime character with AI"))
	b.WriteString("\n\n")

	if layout.ShowUpload {
		b.WriteString(ui.StyleHeader.Render("Upload Your Photo"))
		b.WriteString("\n")
		b.WriteString(ui.FormatMuted("Choose a clear photo of yourself to get started"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if layout.ShowComparison {
		left := m.pane("Original Photo", m.renderImage(s.Original()))
		right := m.pane("Anime Version", m.result(s, layout))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
		b.WriteString("\n")
	}

	if layout.ErrorBanner != "" {
		b.WriteString(ui.StyleBanner.Render(layout.ErrorBanner))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if layout.ControlsDisabled {
		b.WriteString(ui.FormatMuted("Generating..."))
	} else if !layout.ShowUpload {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(ui.FormatMuted("enter choose photo • esc quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) result(s session.State, layout session.Layout) string {
	switch layout.Pane {
	case session.PaneSpinner:
		return m.spinner.View() + " Transforming into anime..."
	case session.PaneImage:
		return m.renderImage(s.Transformed())
	default:
		return ui.FormatMuted("Press g to see your anime version")
	}
}

func (m Model) pane(title, body string) string {
	return ui.StylePane.Render(ui.StyleHeader.Render(title) + "\n\n" + body)
}

func (m Model) paneSize() (int, int) {
	w, h := 32, 16
	if m.width > 0 {
		w = max(m.width/2-6, 8)
	}
	if m.height > 0 {
		h = max(m.height-14, 4)
	}
	return w, h
}

// renderImage draws inline payloads and prints remote references.
func (m Model) renderImage(p entity.Payload) string {
	if !datauri.IsDataURI(p) {
		return ui.FormatInfo(string(p))
	}

	w, h := m.paneSize()
	cacheKey := fmt.Sprintf("%dx%d:%s", w, h, p)
	if out, ok := m.renders[cacheKey]; ok {
		return out
	}

	out, err := m.renderer.Render(p, w, h)
	if err != nil {
		out = ui.FormatMuted("(preview unavailable)")
	}
	m.renders[cacheKey] = out
	return out
}
