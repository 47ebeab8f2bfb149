// Command whiteagent serves an agent under test over the send-message HTTP
// contract. The scripted mode replays deterministic tool sequences for the
// built-in scenarios; the claude and openai modes delegate each turn to a
// hosted model.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/jessevdk/go-flags"

	"github.com/nicksaban20/Green-Agent/logging"
	"github.com/nicksaban20/Green-Agent/transport"
	"github.com/nicksaban20/Green-Agent/whiteagent"
)

// Options holds the command line flags.
type Options struct {
	Addr     string `short:"a" long:"addr" description:"listen address" default:":8585"`
	Mode     string `short:"m" long:"mode" description:"agent backend: scripted|claude|openai" default:"scripted"`
	Model    string `long:"model" description:"model id for claude and openai modes"`
	LogLevel string `long:"log-level" description:"log level" default:"info"`
}

func main() {
	opts := &Options{}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewSlogLogger(logging.ParseLevel(opts.LogLevel), "text", false)

	agent, err := buildAgent(opts, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	srv := whiteagent.NewServer(agent, func(o *whiteagent.ServerOptions) {
		o.Logger = logger.WithComponent("whiteagent")
	})

	if err := srv.Start(opts.Addr); err != nil {
		log.Fatalf("%v", err)
	}
}

func buildAgent(opts *Options, logger logging.Logger) (transport.Transport, error) {
	switch opts.Mode {
	case "scripted":
		return whiteagent.NewScripted(), nil
	case "claude":
		return whiteagent.NewClaude(func(o *whiteagent.ClaudeOptions) {
			if opts.Model != "" {
				o.Model = anthropic.Model(opts.Model)
			}
			o.Logger = logger
		}), nil
	case "openai":
		return whiteagent.NewOpenAI(func(o *whiteagent.OpenAIOptions) {
			if opts.Model != "" {
				o.Model = opts.Model
			}
			o.Logger = logger
		}), nil
	default:
		return nil, fmt.Errorf("unknown agent mode %q", opts.Mode)
	}
}
