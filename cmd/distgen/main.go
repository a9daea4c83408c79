// Command distgen precomputes the distance file for a map.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/distance"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/mapgen"
)

func main() {
	mapPath := flag.String("map", "maps/default.map", "Map file to read")
	out := flag.String("out", "distances.txt", "Output file; a .lz4 suffix compresses it")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	m, err := mapgen.LoadFile(*mapPath)
	if err != nil {
		log.Fatal().Err(err).Str("map", *mapPath).Msg("Failed to load map")
	}

	start := time.Now()
	oracle := distance.Build(m.Board, m.Objectives, log.Logger)
	if err := distance.SaveFile(*out, oracle); err != nil {
		log.Fatal().Err(err).Str("out", *out).Msg("Failed to write distance file")
	}

	log.Info().
		Str("out", *out).
		Int("entries", oracle.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("Distance file written")
}
