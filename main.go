package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"antiyoy/tournaments"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML tournament config")
	outDir := flag.String("out", "", "directory for CSV result reports")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := tournaments.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = tournaments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading tournament config")
		}
	}

	standings, err := tournaments.Run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}

	if *outDir != "" {
		writer, err := tournaments.NewWriter(*outDir)
		if err != nil {
			log.Fatal().Err(err).Msg("creating report writer")
		}
		if err := writer.WriteReports(cfg, standings); err != nil {
			log.Fatal().Err(err).Msg("writing reports")
		}
		log.Info().Str("dir", writer.Dir()).Msg("reports written")
	}
}
