/*
Parsrgen drives one or more parser constructions (recursive-descent, LL(1),
canonical LR(1), LALR(1)) over a grammar file and an input string, printing
an accept/reject verdict, the derivation/action trace, and any diagnostic
errors.

Usage:

	parsrgen [flags] -g GRAMMAR -i INPUT

The flags are:

	-g, --grammar FILE
		The grammar file to load, in the toolkit's textual CFG format.

	-i, --input FILE
		The input file to parse. Defaults to reading from stdin.

	-m, --mode MODE
		Which parser to run: "rd", "ll1", "clr1", or "lalr1". Defaults to
		"lalr1".

	-a, --all
		Run all four modes over the same input and print each verdict.

	-c, --config FILE
		Load defaults from a TOML config file; flags override it.

	--symbols
		After parsing, print the lexer's accumulated symbol table.

	--first-follow
		Print the grammar's FIRST/FOLLOW sets and exit without parsing.

	--table
		Print the constructed parsing table (LL(1) or LR ACTION/GOTO,
		depending on mode) and exit without parsing.

	--debug
		Dump the session's internal state via a struct representation
		after the run, for troubleshooting.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/pflag"

	"github.com/dekarrin/parsrgen/internal/config"
	"github.com/dekarrin/parsrgen/internal/grammar"
	"github.com/dekarrin/parsrgen/internal/session"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitGrammarError
	ExitParseRejected
)

var (
	returnCode = ExitSuccess

	flagGrammar     = pflag.StringP("grammar", "g", "", "The grammar file to load")
	flagInput       = pflag.StringP("input", "i", "", "The input file to parse (defaults to stdin)")
	flagMode        = pflag.StringP("mode", "m", "", "Which parser to run: rd, ll1, clr1, or lalr1")
	flagAll         = pflag.BoolP("all", "a", false, "Run all four parser modes over the same input")
	flagConfig      = pflag.StringP("config", "c", "", "Load defaults from a TOML config file")
	flagSymbols     = pflag.Bool("symbols", false, "Print the lexer's symbol table after parsing")
	flagFirstFollow = pflag.Bool("first-follow", false, "Print FIRST/FOLLOW sets and exit")
	flagTable       = pflag.Bool("table", false, "Print the constructed parsing table and exit")
	flagDebug       = pflag.Bool("debug", false, "Dump session internals via a struct representation")
)

func main() {
	defer func() {
		os.Exit(returnCode)
	}()

	pflag.Parse()

	cfg := config.Config{GrammarPath: *flagGrammar, InputPath: *flagInput}
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
			return
		}
		cfg = loaded
		if *flagGrammar != "" {
			cfg.GrammarPath = *flagGrammar
		}
		if *flagInput != "" {
			cfg.InputPath = *flagInput
		}
	}
	if *flagMode != "" {
		cfg.DefaultMode = config.ParserMode(*flagMode)
	}
	cfg = cfg.FillDefaults()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	grammarText, err := os.ReadFile(cfg.GrammarPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	g, err := grammar.Parse(string(grammarText))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}

	var inputText []byte
	if cfg.InputPath != "" {
		inputText, err = os.ReadFile(cfg.InputPath)
	} else {
		inputText, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	if *flagFirstFollow {
		printFirstFollow(g)
		return
	}

	modes := []config.ParserMode{cfg.DefaultMode}
	if *flagAll {
		modes = []config.ParserMode{config.ModeRecursiveDescent, config.ModeLL1, config.ModeCanonicalLR1, config.ModeLALR1}
	}

	allAccepted := true
	for _, mode := range modes {
		s, err := newSession(mode, g)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] ERROR: %s\n", mode, err.Error())
			allAccepted = false
			continue
		}

		if *flagTable {
			printTable(mode, s)
			continue
		}

		s.Parse(string(inputText))
		printResult(mode, s)
		if !s.Accepted() {
			allAccepted = false
		}

		if *flagSymbols {
			printSymbols(s)
		}

		if *flagDebug {
			repr.Println(s)
		}
	}

	if !allAccepted {
		returnCode = ExitParseRejected
	}
}

func newSession(mode config.ParserMode, g *grammar.Grammar) (*session.Session, error) {
	switch mode {
	case config.ModeRecursiveDescent:
		return session.NewRecursiveDescentSession(g)
	case config.ModeLL1:
		return session.NewLL1Session(g)
	case config.ModeCanonicalLR1:
		return session.NewCanonicalLR1Session(g)
	case config.ModeLALR1:
		return session.NewLALR1Session(g)
	default:
		return nil, fmt.Errorf("unknown parser mode %q", mode)
	}
}

func printFirstFollow(g *grammar.Grammar) {
	an := grammar.ComputeFirstFollow(g)
	for _, nt := range g.OrderedNonTerminals() {
		fmt.Printf("FIRST(%s)  = %s\n", nt, an.FirstSymbol(nt).StringOrdered())
		fmt.Printf("FOLLOW(%s) = %s\n", nt, an.Follow(nt).StringOrdered())
	}
}

func printTable(mode config.ParserMode, s *session.Session) {
	fmt.Printf("=== %s table ===\n", mode)
	switch {
	case s.LL1Table != nil:
		fmt.Println(s.LL1Table.String())
	case s.LRTable != nil:
		fmt.Println(s.LRTable.String())
	}
}

func printResult(mode config.ParserMode, s *session.Session) {
	verdict := "REJECTED"
	if s.Accepted() {
		verdict = "ACCEPTED"
	}
	fmt.Printf("=== %s: %s ===\n", mode, verdict)
	for _, rec := range s.Trace() {
		fmt.Println(rec.String())
	}
	for _, err := range s.Errors() {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
	}
}

func printSymbols(s *session.Session) {
	fmt.Println("=== symbol table ===")
	for _, tok := range s.SymbolTable().Entries() {
		fmt.Println(tok.String())
	}
}
