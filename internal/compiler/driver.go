package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/arnavsurve/fanc/internal/compiler/ast"
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/compiler/lexer"
	"github.com/arnavsurve/fanc/internal/compiler/parser"
	"github.com/arnavsurve/fanc/internal/compiler/semantic"
	scopetrace "github.com/arnavsurve/fanc/internal/compiler/trace"
	"github.com/arnavsurve/fanc/internal/observability"
)

// TraceExt is the extension of written scope traces.
const TraceExt = ".scopes"

// Result describes one successful check.
type Result struct {
	ID       string // run ID, unique per check
	Source   string // file path or label the source came from
	Trace    string // rendered scope trace
	Events   []scopetrace.Event
	Duration time.Duration
}

// Check lexes, parses and analyzes src. A program that fails to compile is
// reported as a *diag.Diagnostic; any other error is an internal failure.
func Check(ctx context.Context, name, src string) (*Result, error) {
	id := uuid.NewString()
	logger := slog.Default().With("run", id, "source", name)

	ctx, span := observability.Tracer.Start(ctx, "compiler.Check",
		trace.WithAttributes(attribute.String("fanc.source", name), attribute.String("fanc.run", id)))
	defer span.End()

	start := time.Now()
	res, err := check(ctx, logger, name, src)
	elapsed := time.Since(start)

	if err != nil {
		observability.AnalysesTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if d, ok := diag.As(err); ok {
			observability.DiagnosticsTotal.WithLabelValues(string(d.Kind)).Inc()
			span.SetAttributes(attribute.String("fanc.diagnostic", string(d.Kind)))
		}
		logger.Debug("check failed", "error", err, "elapsed", elapsed)
		return nil, err
	}

	observability.AnalysesTotal.WithLabelValues("ok").Inc()
	res.ID = id
	res.Duration = elapsed
	logger.Debug("check passed", "elapsed", elapsed, "events", len(res.Events))
	return res, nil
}

func check(ctx context.Context, logger *slog.Logger, name, src string) (*Result, error) {
	prog, err := parseProgram(ctx, src)
	if err != nil {
		return nil, err
	}

	_, span := observability.Tracer.Start(ctx, "compiler.Analyze")
	defer span.End()
	start := time.Now()

	printer := scopetrace.NewPrinter()
	analyzer := semantic.NewAnalyzer(printer, semantic.WithLogger(logger))
	err = analyzer.Analyze(prog)
	observability.PhaseDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	return &Result{
		Source: name,
		Trace:  printer.String(),
		Events: printer.Events(),
	}, nil
}

func parseProgram(ctx context.Context, src string) (*ast.Funcs, error) {
	_, span := observability.Tracer.Start(ctx, "compiler.Parse")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.PhaseDuration.WithLabelValues("parse").Observe(time.Since(start).Seconds())
	}()

	lex := lexer.NewLexer(src)
	p := parser.NewParser(lex)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// CheckFile checks the source file at path, which must carry ext.
func CheckFile(ctx context.Context, path, ext string) (*Result, error) {
	if err := validateExtension(path, ext); err != nil {
		return nil, err
	}

	content, err := readSource(path)
	if err != nil {
		return nil, err
	}

	return Check(ctx, path, content)
}

func validateExtension(path, ext string) error {
	if !strings.EqualFold(filepath.Ext(path), ext) {
		return fmt.Errorf("%s: source must have %s extension", path, ext)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}

// WriteTrace writes res.Trace to outDir as <source base name>.scopes and
// returns the written path.
func WriteTrace(res *Result, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Base(res.Source)
	outFile := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+TraceExt)
	if err := os.WriteFile(outFile, []byte(res.Trace), 0o644); err != nil {
		return "", fmt.Errorf("write trace: %w", err)
	}
	return outFile, nil
}
