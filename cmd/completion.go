package cmd

import (
	"flag"

	"github.com/etnz/cgt/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the global flags and of
// every subcommand with its flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		root.Flags[f.Name] = flagPredictor("", f)
	})
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = flagPredictor(c.Name(), f)
		})
		switch c.Name() {
		case "import":
			sub.Args = predict.Files("*")
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(append(topics, "readme"))
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

// flagPredictor predicts the values of flag f of command.
func flagPredictor(command string, f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch {
	case f.Name == "config":
		return predict.Files("*.toml")
	case f.Name == "ledger":
		return predict.Files("*.jsonl")
	case f.Name == "o":
		return predict.Files("*.csv")
	case f.Name == "format" && command == "lots":
		return predict.Set{"markdown", "text"}
	case f.Name == "format" && command == "import":
		return predict.Set{"csv", "json"}
	}
	return predict.Something
}
