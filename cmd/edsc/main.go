// Command edsc is the compiler driver: it wires internal/config,
// internal/frontend, internal/sema, internal/frame and internal/irgen into
// the pipeline spec §6 describes. Grounded on the teacher's main.go run()
// function: read source, run each phase in order, print a progress message
// after the phases spec.md calls out by name, and report the first fatal
// error with "Error: %s" (teacher's main()'s fmt.Printf("Error: %s", err)).
package main

import (
	"fmt"
	"io"
	"os"

	"edsger/internal/codegen"
	"edsger/internal/config"
	"edsger/internal/frame"
	"edsger/internal/frontend"
	"edsger/internal/irgen"
	"edsger/internal/sema"
	"edsger/internal/util"
)

func main() {
	opt, err := config.Parse(os.Args[1:])
	if err != nil {
		util.Fatal(err)
		os.Exit(1)
	}

	if err := run(opt); err != nil {
		util.Fatal(err)
		os.Exit(1)
	}
}

// run executes the full pipeline for one compilation (spec §6).
func run(opt config.Options) error {
	src, err := readSource(opt)
	if err != nil {
		return fmt.Errorf("could not read source: %w", err)
	}

	root, err := frontend.Parse(src)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	util.Info("Successful parsing")

	an := sema.New()
	err = an.Analyze(root)
	for _, w := range an.Diag.Warnings() {
		util.Warn(w)
	}
	if err != nil {
		return fmt.Errorf("semantic error: %w", err)
	}
	util.Info("Semantically correct")

	frame.Plan(root)
	if opt.Verbose {
		root.Print(os.Stdout, 0)
	}

	gen := irgen.New(opt.Stem())
	defer gen.Dispose()
	if err := gen.Generate(root); err != nil {
		return fmt.Errorf("code generation error: %w", err)
	}

	return emit(opt, gen)
}

// readSource returns the program text to compile: standard input for -f
// and -i, the named file otherwise.
func readSource(opt config.Options) ([]byte, error) {
	if opt.Stdin || opt.IRToStd {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(opt.Src)
}

// emit writes the generated module's artifacts per spec §6: -f emits
// assembly to stdout, -i emits IR text to stdout, and with neither it
// writes the sibling .imm/.asm files and links a.out.
func emit(opt config.Options, gen *irgen.Generator) error {
	module := gen.Module()

	if opt.IRToStd {
		fmt.Println(codegen.IRText(module))
		return nil
	}
	if opt.Stdin {
		asm, err := codegen.Assembly(module, opt.Optimize)
		if err != nil {
			return err
		}
		fmt.Println(asm)
		return nil
	}

	if err := os.WriteFile(opt.IRPath(), []byte(codegen.IRText(module)), 0644); err != nil {
		return err
	}
	asm, err := codegen.Assembly(module, opt.Optimize)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opt.AsmPath(), []byte(asm), 0644); err != nil {
		return err
	}
	return codegen.LinkExecutable(module, "a.out", opt.Optimize)
}
