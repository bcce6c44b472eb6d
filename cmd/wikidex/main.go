// Command wikidex builds and queries an out-of-core inverted index over a
// Wikipedia abstract dump.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("wikidex failed")
	}
}
