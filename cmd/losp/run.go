package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/lemonberrylabs/losp/pkg/builtins"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/host"
	"github.com/lemonberrylabs/losp/pkg/parser"
	"github.com/lemonberrylabs/losp/pkg/printer"
)

func runFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := readSource(path)
	if err != nil {
		return err
	}

	node, err := parser.Parse(src, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if printAST, _ := cmd.Flags().GetBool("ast"); printAST {
		fmt.Print(printer.DumpAST(node))
		return nil
	}

	e := eval.NewEvaluator(nil)
	builtins.Register(e)

	if globalsPath, _ := cmd.Flags().GetString("globals"); globalsPath != "" {
		globals, err := host.LoadManifest(globalsPath)
		if err != nil {
			log.Printf("warning: %v", err)
		} else {
			for name, v := range globals {
				e.SetGlobal(name, v)
			}
		}
	}

	res := e.Eval(node)
	if res.Kind == eval.KindAsync {
		done := make(chan eval.Result, 1)
		res.Proxy.OnCompleted(func(r eval.Result) { done <- r })
		res = <-done
	}

	if res.Kind == eval.KindError {
		return fmt.Errorf("%s", res.Err.Error())
	}

	for _, v := range res.Values {
		fmt.Println(printer.FormatValue(v))
	}
	return nil
}
