package main

import (
	"bufio"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/Zubayear/ryushin/datrie"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		flagWordlistPath string
		flagProbe        string
		flagLevel        string
	)

	pflag.StringVarP(&flagWordlistPath, "wordlist", "w", "", "path to a newline-delimited word list to build a dictionary from")
	pflag.StringVarP(&flagProbe, "probe", "p", "", "optional word to look up in the built dictionary after construction")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	if flagWordlistPath == "" {
		log.Error().Msg("missing required flag --wordlist")
		return failure
	}

	words, err := readWordlist(flagWordlistPath)
	if err != nil {
		log.Error().Str("wordlist", flagWordlistPath).Err(err).Msg("could not read word list")
		return failure
	}

	start := time.Now()
	da, err := datrie.Build(words)
	if err != nil {
		log.Error().Err(err).Msg("could not build double array dictionary")
		return failure
	}
	elapsed := time.Since(start)

	stats := da.MemoryFootprint()
	log.Info().
		Int("words", len(words)).
		Dur("build_time", elapsed).
		Int("slots", da.SizeInSlots()).
		Int("base_bytes", stats.BaseBytes).
		Int("check_bytes", stats.CheckBytes).
		Int("tail_bytes", stats.TailBytes).
		Int("tail_count", stats.TailCount).
		Msg("built dictionary")

	if flagProbe != "" {
		record := da.Lookup([]byte(flagProbe))
		if record == datrie.NotFound {
			log.Info().Str("probe", flagProbe).Msg("not found")
		} else {
			log.Info().Str("probe", flagProbe).Int32("record", record).Msg("found")
		}
	}

	return success
}

func readWordlist(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words [][]byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		word := make([]byte, len(line))
		copy(word, line)
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
