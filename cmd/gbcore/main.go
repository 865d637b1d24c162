// Command gbcore runs a ROM image against the execution core: no video,
// no audio, no input - it drives the Cpu/Mmu/timer/PPU loop until the
// process receives SIGINT.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/sharpcore/lr35902/internal/diagnostic"
	"github.com/sharpcore/lr35902/internal/gameboy"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: gbcore <rom>")
		os.Exit(1)
	}

	log := diagnostic.New()

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Errorf("gbcore: %v", err)
		os.Exit(1)
	}

	gb, err := gameboy.New(data, gameboy.WithLogger(log), gameboy.WithBootSkip())
	if err != nil {
		log.Errorf("gbcore: %v", err)
		os.Exit(1)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for {
		select {
		case <-interrupt:
			log.Infof("gbcore: interrupted after %d cycles", gb.Cpu().Clock())
			return
		default:
			gb.Step()
		}
	}
}
