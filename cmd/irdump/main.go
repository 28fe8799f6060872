package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/ir-bindings/ir"
	"github.com/wippyai/ir-bindings/native"
)

func main() {
	var (
		inFile  = flag.String("in", "", "Path to a bitcode file to load")
		outFile = flag.String("out", "", "Write the module's bitcode to this path")
		demo    = flag.Bool("demo", false, "Build the demo module instead of loading one")
		verify  = flag.Bool("verify", false, "Verify the module and report diagnostics")
		print   = flag.Bool("print", true, "Print the module's textual form")
		verbose = flag.Bool("v", false, "Trace native lifecycle events")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		native.SetLogger(logger)
	}

	if *inFile == "" && !*demo {
		fmt.Fprintln(os.Stderr, "Usage: irdump -demo [-verify] [-out file.bc]")
		fmt.Fprintln(os.Stderr, "       irdump -in <file.bc> [-verify] [-out file.bc]")
		os.Exit(1)
	}

	if err := run(*inFile, *outFile, *demo, *verify, *print); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile string, demo, verify, print bool) error {
	cm := ir.NewContext()
	return cm.With(func(ctx *ir.Context) error {
		var (
			mod *ir.Module
			err error
		)
		if demo {
			mod, err = buildDemo(ctx)
		} else {
			var data []byte
			data, err = os.ReadFile(inFile)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			mod, err = ctx.ParseBitcode(data)
		}
		if err != nil {
			return err
		}

		if verify {
			ok, diag, err := mod.Verify()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("Verification failed:\n%s\n", diag)
			} else {
				fmt.Println("Module verified OK")
			}
		}

		if print {
			text, err := mod.String()
			if err != nil {
				return err
			}
			fmt.Print(text)
		}

		if outFile != "" {
			bc, err := mod.WriteBitcode()
			if err != nil {
				return err
			}
			if err := os.WriteFile(outFile, bc, 0o644); err != nil {
				return fmt.Errorf("write bitcode: %w", err)
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(bc), outFile)
		}
		return nil
	})
}

// buildDemo assembles a module with one function computing |a - b| using a
// diamond CFG, exercising types, constants, branches and a phi merge.
func buildDemo(ctx *ir.Context) (*ir.Module, error) {
	mod, err := ctx.NewModule("demo")
	if err != nil {
		return nil, err
	}

	i32, err := ctx.Int32Type()
	if err != nil {
		return nil, err
	}
	fnTy, err := ir.FunctionType(i32, []*ir.Type{i32, i32}, false)
	if err != nil {
		return nil, err
	}
	fn, err := mod.AddFunction("absdiff", fnTy)
	if err != nil {
		return nil, err
	}

	entry, err := fn.AppendBasicBlock("entry")
	if err != nil {
		return nil, err
	}
	bigger, err := fn.AppendBasicBlock("bigger")
	if err != nil {
		return nil, err
	}
	smaller, err := fn.AppendBasicBlock("smaller")
	if err != nil {
		return nil, err
	}
	merge, err := fn.AppendBasicBlock("merge")
	if err != nil {
		return nil, err
	}

	a, err := fn.Param(0)
	if err != nil {
		return nil, err
	}
	b, err := fn.Param(1)
	if err != nil {
		return nil, err
	}

	bld, err := entry.NewBuilder()
	if err != nil {
		return nil, err
	}
	cond, err := bld.ICmp(ir.IntSGT, a, b, "cmp")
	if err != nil {
		return nil, err
	}
	if _, err := bld.CondBr(cond, bigger, smaller); err != nil {
		return nil, err
	}

	if err := bld.PositionAtEnd(bigger); err != nil {
		return nil, err
	}
	ab, err := bld.Sub(a, b, "ab")
	if err != nil {
		return nil, err
	}
	if _, err := bld.Br(merge); err != nil {
		return nil, err
	}

	if err := bld.PositionAtEnd(smaller); err != nil {
		return nil, err
	}
	ba, err := bld.Sub(b, a, "ba")
	if err != nil {
		return nil, err
	}
	if _, err := bld.Br(merge); err != nil {
		return nil, err
	}

	if err := bld.PositionAtEnd(merge); err != nil {
		return nil, err
	}
	phi, err := bld.Phi(i32, "result")
	if err != nil {
		return nil, err
	}
	if err := phi.AddIncoming([]*ir.Value{ab, ba}, []*ir.BasicBlock{bigger, smaller}); err != nil {
		return nil, err
	}
	if _, err := bld.Ret(phi); err != nil {
		return nil, err
	}

	return mod, nil
}
