// Command outline2c preprocesses a host-language source file, expanding
// `\ol` directives against a user-declared outline, and writes the result
// to an output file (spec.md §6 "External interfaces").
//
// Grounded on original_source/source/main.c and options.c for the overall
// flow (parse options, determine the output filename, init scope, parse,
// optionally dump, generate) and on EngFlow-gazelle_cc/index/conan/main.go
// for the idiomatic Go shape of a flag-based CLI entrypoint in this pack
// (flag.*, explicit usage message on bad arguments).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/swansontec/outline2c-sub000/internal/arena"
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/config"
	"github.com/swansontec/outline2c-sub000/internal/gen"
	"github.com/swansontec/outline2c-sub000/internal/ioutil"
	"github.com/swansontec/outline2c-sub000/internal/parser"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the CLI in full, returning a process exit code rather
// than calling os.Exit itself so it can be exercised from tests.
func run(args []string) int {
	args, smushedOut := extractSmushedOutputFlag(args)

	fs := flag.NewFlagSet("outline2c", flag.ContinueOnError)
	debug := fs.Bool("d", false, "dump the parsed AST before generating output")
	fs.BoolVar(debug, "debug", false, "dump the parsed AST before generating output (long form)")
	output := fs.String("o", "", "output file path")
	configPath := fs.String("config", "", "optional YAML config file (output/debug/include_dirs defaults)")
	maxArenaBytes := fs.Int("max-arena-bytes", 0, "cap the arena backing this run's parse (0 = unbounded)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-d|--debug] [-o output-file] [-config file.yaml] [-max-arena-bytes n] <input-file>\n", os.Args[0])
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if smushedOut != "" && *output == "" {
		*output = smushedOut
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	inputPath := fs.Arg(0)

	cfg := config.Config{Output: *output, Debug: *debug, MaxArenaBytes: *maxArenaBytes}
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			log.Printf("error: %v", err)
			return 1
		}
		cfg = cfg.Merge(fileCfg)
	}

	outputPath := cfg.Output
	if outputPath == "" {
		const suffix = ".ol"
		if !strings.HasSuffix(inputPath, suffix) {
			fmt.Fprintln(os.Stderr, "error: if no output file is specified, the input file name must end with \".ol\"")
			return 1
		}
		outputPath = inputPath[:len(inputPath)-len(suffix)]
	}

	return process(inputPath, outputPath, cfg.Debug, cfg.IncludeDirs, cfg.MaxArenaBytes)
}

// extractSmushedOutputFlag pulls out a `-oFOO` (concatenated) argument, the
// standard library flag package has no support for on a single-dash long
// name, returning the remaining args plus FOO (empty if not present).
func extractSmushedOutputFlag(args []string) ([]string, string) {
	out := make([]string, 0, len(args))
	var smushed string
	for _, a := range args {
		if strings.HasPrefix(a, "-o") && a != "-o" && !strings.HasPrefix(a, "-output") {
			smushed = a[len("-o"):]
			continue
		}
		out = append(out, a)
	}
	return out, smushed
}

// process runs the full pipeline once: load, parse, optionally dump,
// generate, write (spec.md §4.6 "Driver").
func process(inputPath, outputPath string, debug bool, includeDirs []string, maxArenaBytes int) int {
	ctx := context.Background()
	files := ioutil.New()
	loader := ioutil.NewLoader(files, ctx, includeDirs)

	source, err := loader.Load(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not open source file %q: %v\n", inputPath, err)
		return 1
	}

	var a *arena.Arena
	if maxArenaBytes > 0 {
		a = arena.NewBounded(maxArenaBytes)
	} else {
		a = arena.New()
	}
	sc := ast.NewRootScope()

	values, perr := parser.ParseTop(a, loader, inputPath, source, sc)
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr.Error())
		return 1
	}

	if debug {
		fmt.Println("--- AST: ---")
		ast.Dump(os.Stdout, values)
		fmt.Println()
		chunks, totalBytes := a.Stats()
		fmt.Printf("--- arena: %d chunk(s), %d byte(s) ---\n", chunks, totalBytes)
	}

	var out strings.Builder
	g := gen.New(a, loader)
	if err := g.Generate(&out, values); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := files.WriteFile(ctx, outputPath, []byte(out.String())); err != nil {
		fmt.Fprintf(os.Stderr, "error: could not write output file %q: %v\n", outputPath, err)
		return 1
	}
	return 0
}
