package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"midiglow/internal/common"
	"midiglow/internal/debug"
	"midiglow/internal/midi"
	"midiglow/internal/model"
	"midiglow/internal/monitor"
	"midiglow/internal/processing"
	"midiglow/internal/render"
	"midiglow/internal/storage"
	"midiglow/internal/ui"
)

func main() {
	portName := flag.String("port", "", "MIDI input port name")
	listPorts := flag.Bool("list", false, "List available MIDI input ports and exit")
	concertPath := flag.String("concert", "concert.json", "Path to the concert file")
	frameRate := flag.Int("fps", model.DefaultFrameRate, "Render frame rate")
	preview := flag.Bool("preview", false, "Show the strip in a preview window")
	spiDevice := flag.String("spidev", "", "SPI device to write WS2801 frames to (e.g. /dev/spidev0.0)")
	monitorAddr := flag.String("monitor", "", "Bind address for the HTTP monitor API (empty = disabled)")
	verbose := flag.Bool("v", false, "Log MIDI traffic and strip changes")
	flag.Parse()

	defer gomidi.CloseDriver()

	if *listPorts {
		fmt.Println("Available MIDI input ports:")
		for i, name := range midi.ListPorts() {
			fmt.Printf("  [%d] %s\n", i, name)
		}
		return
	}

	if *portName == "" {
		fmt.Println("Usage: midiglow -port \"Port Name\" [options]")
		fmt.Println("  -port NAME       MIDI input port name")
		fmt.Println("  -list            List available MIDI input ports")
		fmt.Println("  -concert FILE    Concert file (default: concert.json)")
		fmt.Println("  -fps N           Render frame rate (default: 30)")
		fmt.Println("  -preview         Show the strip in a preview window")
		fmt.Println("  -spidev DEV      Write WS2801 frames to an SPI device")
		fmt.Println("  -monitor ADDR    Serve the HTTP monitor API on ADDR")
		fmt.Println("  -v               Log MIDI traffic and strip changes")
		os.Exit(1)
	}

	logger := debug.NewLogger(10000)
	defer logger.Shutdown()
	logger.SetSink(os.Stdout)
	if *verbose {
		logger.SetMinLevel(debug.LogLevelDebug)
	}

	logger.LogSystemf(debug.LogLevelInfo, "midiglow starting")

	// Engine wiring
	clock := common.NewMillisecondClock()
	parser := midi.NewParser(logger)
	rgbFunctionFactory := processing.NewRgbFunctionFactory(logger)
	blockFactory := processing.NewProcessingBlockFactory(parser, rgbFunctionFactory, clock, logger)
	concert := processing.NewConcert(parser, blockFactory, logger)
	defer concert.Close()

	var messageLogger *midi.MessageLogger
	if *verbose {
		messageLogger = midi.NewMessageLogger(parser, logger)
		defer messageLogger.Close()
		stripLogger := processing.NewStripChangeLogger(concert, logger)
		defer stripLogger.Close()
	}

	// Restore the concert, or build the demo patch on first run
	store := storage.NewConcertStore(*concertPath, logger)
	loaded, err := store.Load(concert)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading concert: %v\n", err)
		os.Exit(1)
	}
	if !loaded {
		recovered, err := store.RecoverAutosave(concert)
		if err != nil {
			logger.LogStoragef(debug.LogLevelWarning, "autosave recovery failed: %v", err)
		}
		if !recovered {
			logger.LogSystemf(debug.LogLevelInfo, "no concert file, building demo patch")
			buildDemoConcert(concert, parser, rgbFunctionFactory, clock)
			if err := store.Save(concert); err != nil {
				logger.LogStoragef(debug.LogLevelWarning, "could not save demo concert: %v", err)
			}
		}
	}

	// Snapshot the concert periodically so edits via the monitor API survive
	// a crash between explicit saves
	autosaveDone := make(chan struct{})
	defer close(autosaveDone)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-autosaveDone:
				return
			case <-ticker.C:
				store.WriteAutosave(concert)
			}
		}
	}()

	// MIDI input
	input, err := midi.OpenPort(*portName, parser, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening MIDI port: %v\n", err)
		os.Exit(1)
	}
	defer input.Close()

	// Outputs
	if *spiDevice != "" {
		device, err := os.OpenFile(*spiDevice, os.O_WRONLY, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening SPI device: %v\n", err)
			os.Exit(1)
		}
		defer device.Close()
		concert.Subscribe(render.NewWs2801Output(device, logger))
	}

	var window *ui.StripWindow
	if *preview {
		window, err = ui.NewStripWindow(concert.StripSize())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating preview window: %v\n", err)
			os.Exit(1)
		}
		concert.Subscribe(window)
	}

	// Render task
	loop := render.NewLoop(concert, *frameRate, logger)
	loop.Start()
	defer loop.Stop()

	// Monitor API
	settings := model.NewSystemSettingsModel()
	settings.SetMidiPortName(*portName)
	settings.SetFrameRate(*frameRate)
	settings.SetConcertFilePath(*concertPath)
	if *monitorAddr != "" {
		settings.SetMonitorAddress(*monitorAddr)
		settings.Subscribe(func() {
			loop.SetFrameRate(settings.GetFrameRate())
		})
		server := monitor.NewServer(concert, settings, store, logger)
		go func() {
			if err := server.Run(); err != nil {
				logger.LogMonitorf(debug.LogLevelError, "monitor API stopped: %v", err)
			}
		}()
		logger.LogMonitorf(debug.LogLevelInfo, "monitor API on %s", *monitorAddr)
	}

	logger.LogSystemf(debug.LogLevelInfo, "initialization done")

	if window != nil {
		// SDL wants the main goroutine
		if err := window.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Preview window error: %v\n", err)
		}
	} else {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
	}

	logger.LogSystemf(debug.LogLevelInfo, "shutting down")
	if err := store.Save(concert); err != nil {
		logger.LogStoragef(debug.LogLevelWarning, "could not save concert on shutdown: %v", err)
	} else {
		store.ClearAutosave()
	}
}

// buildDemoConcert recreates the classic first-run setup: the middle C
// octave mapped to the first twelve lights, with a constant blue background
// and full white for any sounding key.
func buildDemoConcert(concert *processing.Concert, parser *midi.Parser, rgbFunctionFactory *processing.RgbFunctionFactory, clock common.Time) {
	noteToLightMap := processing.NoteToLightMap{}
	light := uint16(0)
	for note := uint8(60); note < 72; note++ { // middle C octave
		noteToLightMap[note] = light
		light++
	}
	concert.SetNoteToLightMap(noteToLightMap)

	patch := concert.GetPatch(concert.AddPatch())
	patch.SetName("whiteOnBlue")

	// Constant blue background
	background := processing.NewEqualRangeRgbSource()
	background.SetColor(processing.Rgb{R: 0, G: 0, B: 255})
	patch.GetProcessingChain().InsertBlock(background)

	// Full white for any sounding key
	notes := processing.NewNoteRgbSource(parser, rgbFunctionFactory, clock)
	notes.SetRgbFunction(processing.NewLinearRgbFunction(
		processing.LinearConstants{Factor: 255},
		processing.LinearConstants{Factor: 255},
		processing.LinearConstants{Factor: 255},
	))
	notes.SetUsingPedal(true)
	patch.GetProcessingChain().InsertBlock(notes)

	patch.Activate()
}
