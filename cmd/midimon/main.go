// midimon opens a MIDI input port and prints every decoded channel-voice
// message, for checking cabling and channel numbers before a concert.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"midiglow/internal/debug"
	"midiglow/internal/midi"
)

func main() {
	portName := flag.String("port", "", "MIDI input port name")
	listPorts := flag.Bool("list", false, "List available MIDI input ports and exit")
	flag.Parse()

	defer gomidi.CloseDriver()

	if *listPorts || *portName == "" {
		fmt.Println("Available MIDI input ports:")
		for i, name := range midi.ListPorts() {
			fmt.Printf("  [%d] %s\n", i, name)
		}
		if *portName == "" && !*listPorts {
			fmt.Println("\nUsage: midimon -port \"Port Name\"")
			os.Exit(1)
		}
		return
	}

	logger := debug.NewLogger(1000)
	defer logger.Shutdown()
	logger.SetSink(os.Stdout)

	parser := midi.NewParser(logger)
	messageLogger := midi.NewMessageLogger(parser, logger)
	defer messageLogger.Close()

	input, err := midi.OpenPort(*portName, parser, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening MIDI port: %v\n", err)
		os.Exit(1)
	}
	defer input.Close()

	fmt.Println("Press Ctrl+C to exit")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}
