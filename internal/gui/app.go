// Package gui provides the desktop front end for the extractor.
package gui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"dicom-metadata/internal/config"
	"dicom-metadata/internal/extraction"
)

const (
	appTitle  = "DICOM Metadata Extractor"
	appWidth  = 700
	appHeight = 560
)

// App represents the GUI application
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     *config.Config

	folderEntry   *widget.Entry
	searchEntry   *widget.Entry
	archivesCheck *widget.Check
	runBtn        *widget.Button
	saveBtn       *widget.Button
	statusLabel   *widget.Label
	logView       *widget.Entry

	extractor *extraction.Extractor

	mu      sync.Mutex
	running bool
	logText strings.Builder
}

// NewApp creates a new GUI application seeded with the loaded config.
func NewApp(cfg *config.Config) *App {
	a := app.New()
	a.Settings().SetTheme(&darkTheme{})

	if cfg == nil {
		cfg = config.New()
	}

	return &App{
		fyneApp:   a,
		cfg:       cfg,
		extractor: extraction.New(),
	}
}

// Run starts the GUI application
func (a *App) Run() {
	a.window = a.fyneApp.NewWindow(appTitle)
	a.window.Resize(fyne.NewSize(appWidth, appHeight))
	a.window.CenterOnScreen()

	a.window.SetContent(a.buildContent())
	a.window.ShowAndRun()
}

func (a *App) buildContent() fyne.CanvasObject {
	// Input folder row
	a.folderEntry = widget.NewEntry()
	a.folderEntry.SetPlaceHolder("/path/to/dicom/files")
	a.folderEntry.SetText(a.cfg.InputFolder)

	browseBtn := widget.NewButton("Browse", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			a.folderEntry.SetText(uri.Path())
		}, a.window)
	})
	folderRow := container.NewBorder(nil, nil, nil, browseBtn, a.folderEntry)

	// Filter row
	a.searchEntry = widget.NewEntry()
	a.searchEntry.SetPlaceHolder("series description words, e.g. stress,perf")
	a.searchEntry.SetText(strings.Join(a.cfg.Indicators, ","))

	a.archivesCheck = widget.NewCheck("Search inside .zip archives", func(checked bool) {
		if checked {
			a.searchEntry.SetText(strings.Join(a.cfg.SearchTexts, ","))
		} else {
			a.searchEntry.SetText(strings.Join(a.cfg.Indicators, ","))
		}
	})
	a.archivesCheck.SetChecked(a.cfg.FromArchives)

	// Actions
	a.runBtn = widget.NewButton("Run Extraction", a.onRun)
	a.saveBtn = widget.NewButton("Save CSV...", a.onSave)
	a.saveBtn.Disable()
	actions := container.NewHBox(a.runBtn, a.saveBtn)

	a.statusLabel = widget.NewLabel("Select an input folder to begin.")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	a.logView = widget.NewMultiLineEntry()
	a.logView.Wrapping = fyne.TextWrapWord
	a.logView.SetPlaceHolder("Scan output appears here.")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Input", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		folderRow,
		widget.NewLabelWithStyle("Series description filter", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.searchEntry,
		a.archivesCheck,
		actions,
		a.statusLabel,
		widget.NewSeparator(),
	)

	return container.NewBorder(form, nil, nil, nil, a.logView)
}

func (a *App) onRun() {
	folder := strings.TrimSpace(a.folderEntry.Text)
	if folder == "" {
		dialog.ShowInformation("Input required", "Select an input folder first.", a.window)
		return
	}

	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return
	}
	a.running = true
	a.mu.Unlock()

	words := splitWords(a.searchEntry.Text)
	fromArchives := a.archivesCheck.Checked

	cfg := extraction.Config{
		InputFolder:  folder,
		FromArchives: fromArchives,
		OutputWriter: a.appendLog,
	}
	if fromArchives {
		cfg.SearchTexts = words
	} else {
		cfg.Indicators = words
		cfg.FallbackIndicators = a.cfg.FallbackIndicators
	}

	a.runBtn.Disable()
	a.saveBtn.Disable()
	a.resetLog()
	a.statusLabel.SetText("Scanning...")

	go func() {
		stats, err := a.extractor.Run(cfg)

		a.mu.Lock()
		a.running = false
		a.mu.Unlock()

		a.runBtn.Enable()
		if err != nil {
			a.statusLabel.SetText(fmt.Sprintf("Extraction failed: %v", err))
			return
		}

		status := fmt.Sprintf("Done: %d candidate(s), %d row(s).", stats.Candidates, stats.Rows)
		if stats.FallbackUsed {
			status += " Fallback filter was used."
		}
		if stats.MissingPatientID > 0 {
			status += fmt.Sprintf(" %d record(s) missing PatientID.", stats.MissingPatientID)
		}
		a.statusLabel.SetText(status)
		if stats.Rows > 0 {
			a.saveBtn.Enable()
		}
	}()
}

func (a *App) onSave() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := a.extractor.SaveCSV(path, a.appendLog); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.statusLabel.SetText(fmt.Sprintf("CSV saved: %s", path))
	}, a.window)
}

func (a *App) appendLog(s string) {
	a.mu.Lock()
	a.logText.WriteString(s)
	text := a.logText.String()
	a.mu.Unlock()

	a.logView.SetText(text)
	a.logView.CursorRow = strings.Count(text, "\n")
}

func (a *App) resetLog() {
	a.mu.Lock()
	a.logText.Reset()
	a.mu.Unlock()
	a.logView.SetText("")
}

// splitWords parses the comma separated filter entry.
func splitWords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
