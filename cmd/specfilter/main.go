package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	specfilter "github.com/goliatone/go-specfilter"
	"github.com/goliatone/go-specfilter/internal/prompt"
	pkgfilter "github.com/goliatone/go-specfilter/pkg/filter"
	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
	"github.com/goliatone/go-specfilter/pkg/orchestrator"
)

const httpTimeout = 30 * time.Second

func main() {
	log.SetFlags(0)
	log.SetPrefix("specfilter: ")

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := loadConfig(args, os.Stderr)
	if err != nil {
		return err
	}

	src := pkgopenapi.ParseSource(cfg.Input)
	if src == nil {
		return fmt.Errorf("invalid input: %q", cfg.Input)
	}

	var format pkgopenapi.Format
	if cfg.Format != "" {
		if format, err = pkgopenapi.ParseFormat(cfg.Format); err != nil {
			return err
		}
	}

	output := cfg.Output
	if output == "" {
		output = defaultOutput(src, format)
	}

	writerOptions := []pkgopenapi.WriterOption{pkgopenapi.WithOverwrite(!cfg.NoClobber)}
	if cfg.Interactive && prompt.Interactive() {
		writerOptions = append(writerOptions, pkgopenapi.WithConfirm(prompt.OverwriteConfirm(prompt.NewSurveyDriver())))
	}

	loaderOptions := []pkgopenapi.LoaderOption{}
	if src.Kind() == pkgopenapi.SourceKindURL {
		loaderOptions = append(loaderOptions, pkgopenapi.WithHTTPFallback(httpTimeout))
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(specfilter.NewLoader(loaderOptions...)),
		orchestrator.WithWriter(specfilter.NewWriter(writerOptions...)),
	}
	if len(cfg.Sections) > 0 {
		options = append(options, orchestrator.WithFilter(specfilter.NewFilter(pkgfilter.WithSections(cfg.Sections...))))
	}

	orch := specfilter.NewOrchestrator(options...)

	result, err := orch.Run(ctx, orchestrator.Request{
		Source:     src,
		Output:     output,
		PolicyName: cfg.Policy,
		Match:      cfg.Match,
		Format:     format,
		Report:     cfg.Report,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		for _, p := range result.Kept {
			log.Printf("kept %s", p)
		}
		for _, p := range result.Dropped {
			log.Printf("dropped %s", p)
		}
		for _, section := range result.DroppedSections {
			log.Printf("dropped section %s", section)
		}
	}

	if cfg.Report {
		for _, op := range result.Operations {
			fmt.Fprintln(stdout, op.String())
		}
	}

	fmt.Fprintf(stdout, "Kept %d of %d paths (%s) → %s\n",
		len(result.Kept), len(result.Kept)+len(result.Dropped), result.Policy, result.Output)
	return nil
}

// defaultOutput derives <name>-filtered<ext> next to the input. URL inputs
// land in the working directory.
func defaultOutput(src pkgopenapi.Source, format pkgopenapi.Format) string {
	location := src.Location()
	dir := filepath.Dir(location)
	base := filepath.Base(location)
	if src.Kind() == pkgopenapi.SourceKindURL {
		dir = "."
		base = "openapi"
		if u, err := url.Parse(location); err == nil && path.Base(u.Path) != "/" && path.Base(u.Path) != "." {
			base = path.Base(u.Path)
		}
	}

	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if format != "" {
		ext = format.Extension()
	} else if _, ok := pkgopenapi.FormatFromExtension(base); !ok {
		ext = ""
	}
	return filepath.Join(dir, name+"-filtered"+ext)
}
