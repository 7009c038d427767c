package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pstuifzand/tui-diff/internal/app"
	"github.com/pstuifzand/tui-diff/internal/socket"
)

func main() {
	logFile, err := os.Create("tdiff.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	send := flag.Bool("send", false, "Open the two files in a running tdiff instance")
	flag.Parse()

	if *send {
		if err := sendOpen(flag.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	application, err := app.NewApp(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// sendOpen asks a running tdiff instance to open a pair of files
func sendOpen(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tdiff -send <old> <new>")
	}

	socketPath, err := socket.FindRunningInstance()
	if err != nil {
		return fmt.Errorf("no running tdiff instance found: %w", err)
	}

	log.Printf("Found running instance at %s", socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	response, err := client.SendOpen(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}

	fmt.Println(response.Message)
	return nil
}
