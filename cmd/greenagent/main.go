// Command greenagent runs the evaluation engine: as a long-lived HTTP
// service, as a one-shot scenario run, or as a full batch over the catalog.
package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"
)

// Options is the root command that groups sub-commands. The struct tags are
// interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"f" long:"config" description:"config YAML path"`

	Serve *ServeCmd `command:"serve" description:"Start the evaluator HTTP server"`
	Run   *RunCmd   `command:"run"   description:"Run a single scenario against an agent"`
	Batch *BatchCmd `command:"batch" description:"Run the full scenario catalog against an agent"`
}

// Init instantiates the sub-command referenced by the first argument so that
// flags.Parse can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{opts: o}
	case "run":
		o.Run = &RunCmd{opts: o}
	case "batch":
		o.Batch = &BatchCmd{opts: o}
	}
}

func main() {
	args := os.Args[1:]

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		log.Fatalf("%v", err)
	}
}
