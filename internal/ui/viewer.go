package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/belaosa/ef-migration-tools/internal/config"
)

// ScriptViewer browses previously generated SQL scripts in an
// interactive TUI: script list on the left, preview on the right.
type ScriptViewer struct {
	cfg *config.Config
}

// NewScriptViewer creates a new ScriptViewer.
func NewScriptViewer(cfg *config.Config) *ScriptViewer {
	return &ScriptViewer{cfg: cfg}
}

type scriptEntry struct {
	name    string
	path    string
	size    int64
	modTime time.Time
}

// View opens the viewer over the configured scripts directory.
func (sv *ScriptViewer) View() error {
	scripts, err := sv.listScripts()
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		color.Yellow("No generated scripts found in %s", sv.cfg.ScriptsPath())
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, s := range scripts {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, s.name), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	previewView := tview.NewTextView().
		SetDynamicColors(false).
		SetWrap(false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(previewView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Generated Scripts (%d) | ↑↓ navigate, → preview, ← back, Ctrl+C exit ", len(scripts)))

	updatePreview := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(scripts) {
			return
		}
		s := scripts[index]
		statsView.SetText(fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]  [cyan]size:[white] %d bytes", s.path, s.size))

		data, err := os.ReadFile(s.path)
		if err != nil {
			previewView.SetText(fmt.Sprintf("failed to read script: %v", err))
			return
		}
		previewView.SetText(string(data))
		previewView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(previewView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	previewView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updatePreview()
	})
	updatePreview()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// listScripts returns the .sql files in the scripts directory, newest
// first. A missing directory simply means no scripts yet.
func (sv *ScriptViewer) listScripts() ([]scriptEntry, error) {
	dir := sv.cfg.ScriptsPath()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read scripts dir: %w", err)
	}

	var scripts []scriptEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		scripts = append(scripts, scriptEntry{
			name:    e.Name(),
			path:    filepath.Join(dir, e.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].modTime.After(scripts[j].modTime)
	})
	return scripts, nil
}
