package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dvcrn/blockmason-link-go/internal/config"
	"github.com/dvcrn/blockmason-link-go/internal/logger"
	"github.com/dvcrn/blockmason-link-go/link"
)

const usage = `usage: link <get|post> <path> [key=value ...]

Values that parse as JSON (numbers, booleans, null) are sent typed;
everything else is sent as a string.

Environment:
  LINK_CLIENT_ID      OAuth2 client ID (required)
  LINK_CLIENT_SECRET  OAuth2 client secret (required)
  LINK_BASE_URL       API root (default https://api.block.mason.link)
`

func main() {
	if len(os.Args) < 3 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	verb, path := strings.ToLower(os.Args[1]), os.Args[2]
	if verb != "get" && verb != "post" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	inputs, err := parseInputs(os.Args[3:])
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Invalid arguments")
	}

	client, err := link.New(config.Load())
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to create Link client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var outputs any
	if verb == "get" {
		outputs, err = client.Get(ctx, path, inputs)
	} else {
		outputs, err = client.Post(ctx, path, inputs)
	}
	if err != nil {
		logger.Get().Fatal().Err(err).Str("path", path).Msgf("%s request failed", strings.ToUpper(verb))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outputs); err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to write response")
	}
}

func parseInputs(args []string) (link.Inputs, error) {
	inputs := link.Inputs{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		inputs[key] = typedValue(value)
	}
	return inputs, nil
}

// typedValue keeps JSON numbers as json.Number so amounts beyond 2^53 are
// sent exactly as typed.
func typedValue(value string) any {
	decoder := json.NewDecoder(strings.NewReader(value))
	decoder.UseNumber()

	var typed any
	if err := decoder.Decode(&typed); err != nil || decoder.More() {
		return value
	}
	switch typed.(type) {
	case json.Number, bool, nil:
		return typed
	}
	return value
}
