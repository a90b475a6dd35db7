// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command monoc monomorphizes the generic definitions declared in session files and checks
// their match expressions.
//
// Usage:
//
//	monoc [-color=auto|always|never] [-watch] [-j N] session.yaml...
//
// Each session file declares structs, enums, functions, methods, traits, impls and trait
// bounds, then lists the instantiations, method resolutions, inference queries and matches
// to run against them. Reports are written to stdout in argument order.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"golang.org/x/sync/errgroup"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("monoc: ")

	var (
		colorMode string
		watch     bool
		jobs      int
	)
	flag.StringVar(&colorMode, "color", "auto", "colorize reports: auto, always or never")
	flag.BoolVar(&watch, "watch", false, "re-run sessions when their files change")
	flag.IntVar(&jobs, "j", runtime.NumCPU(), "number of sessions to run concurrently")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: monoc [flags] session.yaml...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	pal, err := colorPalette(colorMode)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok, err := runAll(ctx, flag.Args(), jobs, pal, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if watch {
		if err = watchSessions(ctx, flag.Args(), pal, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	if !ok {
		os.Exit(1)
	}
}

// runAll runs the sessions at paths concurrently, then writes their reports to w in order.
// It reports whether every session succeeded.
func runAll(ctx context.Context, paths []string, jobs int, pal palette, w io.Writer) (bool, error) {
	outs := make([]bytes.Buffer, len(paths))
	failed := make([]bool, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := &outs[i]
			fmt.Fprintf(out, "%s\n", pal.heading("== "+path))
			if err := runSession(path, out, pal); err != nil {
				fmt.Fprintf(out, "%s %v\n", pal.bad("error:"), err)
				failed[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	ok := true
	for i := range outs {
		if _, err := outs[i].WriteTo(w); err != nil {
			return false, err
		}
		ok = ok && !failed[i]
	}
	return ok, nil
}
