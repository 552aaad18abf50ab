package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ds124wfegd/animegen/internal/controller"
	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/storage"
	"github.com/ds124wfegd/animegen/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relayFunc func(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error)

func (f relayFunc) Generate(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error) {
	return f(ctx, image)
}

func echoRelay(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error) {
	return entity.GenerateResponse{Output: image}, nil
}

func writePhoto(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

// settle runs cmd and feeds any relay answer back into the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(t, m, c)
		}
	case generatedMsg:
		m, _ = update(t, m, msg)
	}
	return m
}

func selectedModel(t *testing.T, relay relayFunc, opts Options) (Model, *controller.Controller) {
	t.Helper()
	ctrl := controller.New(relay)
	m := New(ctrl, opts)

	m, _ = update(t, m, runes(writePhoto(t)))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, session.Selected, ctrl.Snapshot().Phase())
	return m, ctrl
}

func TestUploadView(t *testing.T) {
	m := New(controller.New(relayFunc(echoRelay)), Options{})

	view := m.View()

	assert.Contains(t, view, "Upload Your Photo")
	assert.NotContains(t, view, "Anime Version")
}

func TestChooseMissingFileKeepsIdle(t *testing.T) {
	ctrl := controller.New(relayFunc(echoRelay))
	m := New(ctrl, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, session.Idle, ctrl.Snapshot().Phase())

	m, _ = update(t, m, runes(filepath.Join(t.TempDir(), "nope.png")))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, session.Idle, ctrl.Snapshot().Phase())
	assert.Contains(t, m.View(), "read image")
}

func TestGenerateFlow(t *testing.T) {
	release := make(chan struct{})
	relay := func(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error) {
		<-release
		return entity.GenerateResponse{Output: image, Message: entity.PreviewModeMessage}, nil
	}
	m, ctrl := selectedModel(t, relay, Options{})
	assert.Contains(t, m.View(), "Press g to see your anime version")

	m, cmd := update(t, m, runes("g"))
	require.NotNil(t, cmd)
	assert.Equal(t, session.Transforming, ctrl.Snapshot().Phase())
	assert.Contains(t, m.View(), "Transforming into anime...")

	// controls are disabled while the transform runs
	m, _ = update(t, m, runes("r"))
	assert.Equal(t, session.Transforming, ctrl.Snapshot().Phase())

	close(release)
	m = settle(t, m, cmd)

	assert.Equal(t, session.Done, ctrl.Snapshot().Phase())
	assert.Contains(t, m.View(), "Using preview mode")
}

func TestGenerateFailureShowsBanner(t *testing.T) {
	relay := func(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error) {
		return entity.GenerateResponse{}, entity.ErrGenerateFailed
	}
	m, ctrl := selectedModel(t, relay, Options{})

	m, cmd := update(t, m, runes("g"))
	m = settle(t, m, cmd)

	assert.Equal(t, session.Errored, ctrl.Snapshot().Phase())
	assert.Contains(t, m.View(), entity.MsgClientFailed)
}

func TestResetClearsInput(t *testing.T) {
	m, ctrl := selectedModel(t, relayFunc(echoRelay), Options{})
	m, cmd := update(t, m, runes("g"))
	m = settle(t, m, cmd)

	m, _ = update(t, m, runes("r"))

	assert.Equal(t, session.Idle, ctrl.Snapshot().Phase())
	assert.Empty(t, m.input.Value())
	assert.True(t, m.input.Focused())
	assert.Contains(t, m.View(), "Upload Your Photo")
}

func TestDownloadSavesInlineImage(t *testing.T) {
	dir := t.TempDir()
	m, _ := selectedModel(t, relayFunc(echoRelay), Options{Store: storage.NewFileStorage(dir)})

	m, cmd := update(t, m, runes("g"))
	m = settle(t, m, cmd)
	m, _ = update(t, m, runes("d"))

	assert.FileExists(t, filepath.Join(dir, controller.DownloadFilename))
	assert.Contains(t, m.View(), "Saved")
}

func TestCopyRemoteLink(t *testing.T) {
	var copied string
	relay := func(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error) {
		return entity.GenerateResponse{Output: "https://cdn.example.com/anime.png"}, nil
	}
	m, _ := selectedModel(t, relay, Options{
		Store: storage.NewFileStorage(t.TempDir()),
		Copy: func(s string) error {
			copied = s
			return nil
		},
	})

	m, cmd := update(t, m, runes("g"))
	m = settle(t, m, cmd)

	m, _ = update(t, m, runes("d"))
	assert.Contains(t, m.View(), "press c to copy the link")

	m, _ = update(t, m, runes("c"))
	assert.Equal(t, "https://cdn.example.com/anime.png", copied)
	assert.Contains(t, m.View(), "Copied image link")
}
