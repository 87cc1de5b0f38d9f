package main

import (
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/craigmindset/softdrop-cli/cmd"
)

// main is the entry point of the application.
// It loads the optional .env file, sets up logging based on the
// DEBUG_SOFTDROP environment variable, starts a goroutine to listen for
// interrupt signals, and executes the main command.
func main() {

	// Load .env file if one exists (ignore error if not found)
	_ = godotenv.Load()

	// If the DEBUG_SOFTDROP environment variable is set, enable debug logging to stdout, otherwise disable logging
	if os.Getenv("DEBUG_SOFTDROP") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	// This block sets up a go routine to listen for an interrupt signal which will immediately exit the program
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	go listenForInterrupt(stopChan)

	// Program entry point
	cmd.Execute()
}

// listenForInterrupt listens for an interrupt signal and exits the program when it is received.
func listenForInterrupt(stopChan chan os.Signal) {
	<-stopChan
	log.Fatal().Msg("Interrupt signal received. Exiting...")
}
