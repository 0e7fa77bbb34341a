// glowdesk is a desktop editor for concert files: browse patches, bind them
// to bank/program coordinates and watch the strip react to MIDI input live.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"midiglow/internal/common"
	"midiglow/internal/debug"
	"midiglow/internal/midi"
	"midiglow/internal/processing"
	"midiglow/internal/render"
	"midiglow/internal/storage"
)

const maxPreviewCells = 64

type deskState struct {
	concert *processing.Concert
	store   *storage.ConcertStore
	logger  *debug.Logger

	patchList *widget.List
	cells     []*canvas.Rectangle
	selected  processing.PatchPosition
}

func main() {
	concertPath := flag.String("concert", "concert.json", "Path to the concert file")
	portName := flag.String("port", "", "MIDI input port name (optional, for live preview)")
	flag.Parse()

	defer gomidi.CloseDriver()

	logger := debug.NewLogger(5000)
	defer logger.Shutdown()

	// Engine wiring, same shape as the headless host
	clock := common.NewMillisecondClock()
	parser := midi.NewParser(logger)
	blockFactory := processing.NewProcessingBlockFactory(parser, processing.NewRgbFunctionFactory(logger), clock, logger)
	concert := processing.NewConcert(parser, blockFactory, logger)
	defer concert.Close()

	store := storage.NewConcertStore(*concertPath, logger)
	if _, err := store.Load(concert); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading concert: %v\n", err)
		os.Exit(1)
	}

	if *portName != "" {
		input, err := midi.OpenPort(*portName, parser, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening MIDI port: %v\n", err)
			os.Exit(1)
		}
		defer input.Close()
	}

	state := &deskState{
		concert:  concert,
		store:    store,
		logger:   logger,
		selected: processing.InvalidPatchPosition,
	}

	desk := app.NewWithID("midiglow.glowdesk")
	window := desk.NewWindow("glowdesk — " + *concertPath)
	window.Resize(fyne.NewSize(720, 420))
	window.SetContent(state.buildContent(window))

	// Frames arrive on the render goroutine; fyne.Do hands them to the UI
	concert.Subscribe(&previewObserver{state: state})

	loop := render.NewLoop(concert, 30, logger)
	loop.Start()
	defer loop.Stop()

	window.ShowAndRun()

	if err := store.Save(concert); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving concert: %v\n", err)
	}
}

// previewObserver forwards frames to the preview cells
type previewObserver struct {
	state *deskState
}

func (o *previewObserver) OnStripUpdate(strip processing.Strip) {
	frame := append(processing.Strip(nil), strip...)
	fyne.Do(func() {
		o.state.updatePreview(frame)
	})
}

func (s *deskState) updatePreview(frame processing.Strip) {
	for i, cell := range s.cells {
		if i < len(frame) {
			cell.FillColor = color.NRGBA{R: frame[i].R, G: frame[i].G, B: frame[i].B, A: 255}
		} else {
			cell.FillColor = color.NRGBA{A: 255}
		}
		cell.Refresh()
	}
}

func (s *deskState) buildContent(window fyne.Window) fyne.CanvasObject {
	// Strip preview row
	cellCount := s.concert.StripSize()
	if cellCount < 1 {
		cellCount = 12
	}
	if cellCount > maxPreviewCells {
		cellCount = maxPreviewCells
	}
	cellRow := container.NewGridWithColumns(cellCount)
	for i := 0; i < cellCount; i++ {
		cell := canvas.NewRectangle(color.NRGBA{A: 255})
		cell.SetMinSize(fyne.NewSize(10, 24))
		s.cells = append(s.cells, cell)
		cellRow.Add(cell)
	}

	// Patch list
	s.patchList = widget.NewList(
		func() int {
			return s.concert.Size()
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("patch")
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			patch := s.concert.GetPatch(processing.PatchPosition(id))
			if patch == nil {
				return
			}
			label := patch.GetName()
			if patch.HasBankAndProgram() {
				label = fmt.Sprintf("%s  (bank %d, program %d)", label, patch.GetBank(), patch.GetProgram())
			}
			if processing.PatchPosition(id) == s.concert.GetActivePatchPosition() {
				label = "▶ " + label
			}
			item.(*widget.Label).SetText(label)
		},
	)
	s.patchList.OnSelected = func(id widget.ListItemID) {
		s.selected = processing.PatchPosition(id)
	}

	addButton := widget.NewButton("Add Patch", func() {
		s.concert.AddPatch()
		s.patchList.Refresh()
	})

	removeButton := widget.NewButton("Remove", func() {
		if s.selected == processing.InvalidPatchPosition {
			return
		}
		s.concert.RemovePatch(s.selected)
		s.selected = processing.InvalidPatchPosition
		s.patchList.UnselectAll()
		s.patchList.Refresh()
	})

	editButton := widget.NewButton("Edit…", func() {
		if s.selected == processing.InvalidPatchPosition {
			return
		}
		s.showPatchDialog(window, s.selected)
	})

	saveButton := widget.NewButton("Save", func() {
		if err := s.store.Save(s.concert); err != nil {
			dialog.ShowError(err, window)
		}
	})

	toolbar := container.NewHBox(addButton, removeButton, editButton, saveButton)

	return container.NewBorder(cellRow, toolbar, nil, nil, s.patchList)
}

func (s *deskState) showPatchDialog(window fyne.Window, position processing.PatchPosition) {
	patch := s.concert.GetPatch(position)
	if patch == nil {
		return
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(patch.GetName())
	bankEntry := widget.NewEntry()
	bankEntry.SetText(strconv.Itoa(int(patch.GetBank())))
	programEntry := widget.NewEntry()
	programEntry.SetText(strconv.Itoa(int(patch.GetProgram())))
	addressable := widget.NewCheck("Selectable by program change", nil)
	addressable.SetChecked(patch.HasBankAndProgram())

	form := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Bank", bankEntry),
		widget.NewFormItem("Program", programEntry),
		widget.NewFormItem("", addressable),
	}

	dialog.ShowForm("Edit Patch", "Apply", "Cancel", form, func(confirmed bool) {
		if !confirmed {
			return
		}
		patch.SetName(nameEntry.Text)
		if bank, err := strconv.Atoi(bankEntry.Text); err == nil && bank >= 0 {
			patch.SetBank(uint16(bank))
		}
		if program, err := strconv.Atoi(programEntry.Text); err == nil && program >= 0 {
			patch.SetProgram(uint8(program))
		}
		if !addressable.Checked {
			patch.ClearBankAndProgram()
		}
		s.patchList.Refresh()
	}, window)
}
