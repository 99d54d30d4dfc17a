package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/brettharrow/pego"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
	cyanColor  = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		runCheck(os.Args[2:])
	case "parse":
		runParse(os.Args[2:])
	case "repl":
		runRepl(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		redColor.Fprintf(os.Stderr, "pego: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	cyanColor.Println("pego - a parser combinator engine for text")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  pego check -grammar <path>")
	fmt.Println("  pego parse -grammar <path> -input <path> [-rule <name>] [-ast]")
	fmt.Println("  pego repl -grammar <path>")
}

func loadGrammarSource(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("pego: can't read grammar file: %s", err)
	}
	return string(data)
}

func runCheck(argv []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	grammarPath := fs.String("grammar", "", "path to the grammar file")
	fs.Parse(argv)

	if *grammarPath == "" {
		log.Fatal("pego check: -grammar is required")
	}

	src := loadGrammarSource(*grammarPath)
	if _, err := pego.ParseGrammarSource(*grammarPath, src); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	if _, err := pego.Grammar(pego.DEFAULT, src); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	greenColor.Println("grammar OK")
}

func runParse(argv []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	grammarPath := fs.String("grammar", "", "path to the grammar file")
	inputPath := fs.String("input", "", "path to the input file")
	ruleName := fs.String("rule", "", "rule to parse (default: first rule defined)")
	astOnly := fs.Bool("ast", false, "print the debug AST dump instead of the matched text")
	fs.Parse(argv)

	if *grammarPath == "" || *inputPath == "" {
		log.Fatal("pego parse: -grammar and -input are required")
	}

	gsrc := loadGrammarSource(*grammarPath)

	var start pego.Parser
	var err error
	if *ruleName != "" {
		entry := pego.NewRef(*ruleName)
		if _, err = pego.Grammar(pego.DEFAULT, gsrc, entry); err != nil {
			redColor.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		start = entry
	} else {
		start, err = pego.Grammar(pego.DEFAULT, gsrc)
		if err != nil {
			redColor.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	}

	input, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("pego: can't read input file: %s", err)
	}

	v, perr := pego.ParseBytes(*inputPath, input, start)
	if perr != nil {
		redColor.Fprintf(os.Stderr, "%s\n", perr)
		os.Exit(1)
	}

	printResult(v, *astOnly)
}

func printResult(v pego.Value, astOnly bool) {
	switch n := v.(type) {
	case *pego.Node:
		if astOnly {
			fmt.Println(pego.Dump(n))
		} else {
			fmt.Println(pego.Text(n))
		}
	case nil:
		fmt.Println("")
	default:
		fmt.Printf("%v\n", n)
	}
}

func runRepl(argv []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	grammarPath := fs.String("grammar", "", "path to the grammar file")
	fs.Parse(argv)

	if *grammarPath == "" {
		log.Fatal("pego repl: -grammar is required")
	}

	gsrc := loadGrammarSource(*grammarPath)
	start, err := pego.Grammar(pego.DEFAULT, gsrc)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	rl, err := readline.New("pego> ")
	if err != nil {
		log.Fatal(err)
	}
	defer rl.Close()

	cyanColor.Println("pego repl — type an input line, Ctrl+D to quit")

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Println("bye")
			break
		}
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		v, perr := pego.Parse("<repl>", line, start)
		if perr != nil {
			redColor.Fprintf(os.Stdout, "%s\n", perr)
			continue
		}
		printResult(v, true)
	}
}
