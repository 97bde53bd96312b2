// cvparse parses CV files from the command line and writes one JSON
// artifact per input into the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	cfg "github.com/mikawi/g2scv/config"
	"github.com/mikawi/g2scv/internal/service/document"
	"github.com/mikawi/g2scv/pkg/artifact"
	"github.com/mikawi/g2scv/pkg/logger"
)

func main() {
	outDir := flag.String("out", ".", "directory for result JSON files")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: cvparse [-out dir] file...")
		os.Exit(2)
	}

	log, err := logger.NewLogger(
		logger.WithLevel(cfg.GetServerConfig().LogLevel),
		logger.WithEncoding("console"),
		logger.WithOutputPaths([]string{"stderr"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	p, err := document.BuildParser(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cvparse: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	ctx := context.Background()
	failed := 0

	for _, path := range flag.Args() {
		doc, err := p.Parse(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cvparse: %s: %v\n", path, err)
			failed++
			continue
		}

		out, err := artifact.WriteFile(*outDir, doc, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "cvparse: %s: %v\n", path, err)
			failed++
			continue
		}

		fmt.Printf("%s: format=%s pages=%d sections=%d emails=%d -> %s\n",
			path, doc.Format, len(doc.Pages), len(doc.CVSections),
			len(doc.ContactInfo.Emails), out)
		if doc.Error != "" {
			fmt.Printf("%s: partial result: %s\n", path, doc.Error)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
