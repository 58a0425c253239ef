package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pasc/internal/interp"
	"github.com/cwbudde/pasc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	dumpAST   bool
	trace     bool
	typeCheck bool
	dumpEnv   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a program",
	Long: `Compile and execute a source program from a file or inline expression.

Examples:
  # Run a program file
  pasc run fact.pas

  # Evaluate an inline program
  pasc run -e "PROGRAM T; VAR x: INTEGER; BEGIN x := 1; WRITELN(x) END."

  # Dump the parsed AST instead of running it
  pasc run --dump-ast fact.pas`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST instead of running it")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution to stderr")
	runCmd.Flags().BoolVar(&typeCheck, "type-check", true, "perform semantic analysis before execution")
	runCmd.Flags().BoolVar(&dumpEnv, "dump-env", false, "print the global environment after a successful run")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	prog, perr := parseProgram(source)
	if perr != nil {
		printError(perr, source)
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		fmt.Println(prog.String())
		return nil
	}

	if typeCheck {
		analyzer := semantic.NewAnalyzer()
		if _, serr := analyzer.Analyze(prog); serr != nil {
			printError(serr, source)
			return fmt.Errorf("semantic analysis failed")
		}
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] executing %s\n", filename)
	}

	interpreter := interp.New(os.Stdout)
	if rerr := interpreter.Interpret(prog); rerr != nil {
		printError(rerr, source)
		return fmt.Errorf("execution failed")
	}

	if dumpEnv {
		for _, line := range interpreter.Dump() {
			fmt.Println(line)
		}
	}

	return nil
}
