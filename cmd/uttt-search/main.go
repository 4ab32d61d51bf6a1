package main

import (
	"log"
	"os"
	"runtime/pprof"

	"flag"

	"github.com/hailam/uttt/internal/protocol"
	"github.com/hailam/uttt/internal/storage"
	"github.com/hailam/uttt/internal/uttt"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	archiveDB  = flag.String("archive", "", "path to a BadgerDB directory for archiving finished games (disabled if empty)")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	drv := protocol.New(os.Stdout)

	if *archiveDB != "" {
		archive, err := storage.Open(*archiveDB)
		if err != nil {
			log.Fatal("could not open archive: ", err)
		}
		defer archive.Close()

		drv.OnGameOver = func(moves []string, final uttt.Board, result string) {
			if err := storage.RecordGame(archive, moves, final, result); err != nil {
				log.Printf("archive: failed to record game: %v", err)
			}
		}
	}

	drv.Run(os.Stdin)
}
