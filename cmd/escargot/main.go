// Command escargot is a trimmed, flag-driven smoke-test harness for the
// engine (mirrors cmd/run/main.go's driver): it runs one of a small set of
// built-in demo programs against a vm.VM, optionally dumping the compiled
// bytecode and the ESGraph a hot CodeBlock promotes to, or drops into an
// interactive bubbletea REPL for stepping through the same information
// (spec.md §1 Non-goals: the real CLI driver, the lexer/parser, is an
// external collaborator — this is scaffolding for exercising the VM
// directly, not a script shell).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/escargot-js/escargot/ast"
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/value"
	"github.com/escargot-js/escargot/vm"
)

func main() {
	var (
		demoName     = flag.String("demo", "", "Demo program to run")
		list         = flag.Bool("list", false, "List available demo programs and exit")
		dumpBytecode = flag.Bool("dump-bytecode", false, "Print the compiled CodeBlock's disassembly")
		dumpIR       = flag.Bool("dump-ir", false, "Print the ESGraph if the CodeBlock was promoted")
		threshold    = flag.Int("jit-threshold", 0, "Override vm.Config.JITThreshold (0 keeps the default)")
		enableJIT    = flag.Bool("jit", true, "Enable JIT promotion")
		interactive  = flag.Bool("i", false, "Interactive mode: step through bytecode/ESGraph in a TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list || *demoName == "" {
		fmt.Println("Available demos:")
		for _, name := range demoNames() {
			fmt.Printf("  %s\n", name)
		}
		if *demoName == "" {
			fmt.Fprintln(os.Stderr, "\nUsage: escargot -demo <name> [-dump-bytecode] [-dump-ir] [-jit-threshold N]")
			fmt.Fprintln(os.Stderr, "       escargot -i  (interactive mode)")
			if !*list {
				os.Exit(1)
			}
		}
		return
	}

	if err := run(*demoName, *dumpBytecode, *dumpIR, *threshold, *enableJIT); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(demoName string, dumpBytecode, dumpIR bool, threshold int, enableJIT bool) error {
	d, ok := findDemo(demoName)
	if !ok {
		return fmt.Errorf("unknown demo %q (available: %s)", demoName, strings.Join(demoNames(), ", "))
	}

	machine := vm.New(&vm.Config{JITThreshold: threshold, EnableJIT: enableJIT})

	cb, err := ast.Compile(d.name, 0, d.program(), machine.Interpreter().Strings)
	if err != nil {
		return fmt.Errorf("compile %s: %w", demoName, err)
	}

	if dumpBytecode {
		fmt.Print(bytecode.Disassemble(cb))
		fmt.Println()
	}

	result, err := machine.Run(cb, nil, value.Undefined, nil)
	if err != nil {
		return fmt.Errorf("run %s: %w", demoName, err)
	}

	if dumpIR {
		if g, ok := machine.Graph(cb); ok {
			fmt.Printf("ESGraph for %s:\n%s", d.name, g.String())
		} else {
			fmt.Printf("%s never promoted past the interpreter\n", d.name)
		}
	}

	fmt.Printf("Result: %s\n", value.ToStringValue(result))
	return nil
}
