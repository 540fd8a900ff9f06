package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/schyrsivochter/soundchange/internal/compiler"
	"github.com/schyrsivochter/soundchange/internal/engine"
	"github.com/schyrsivochter/soundchange/internal/ir"
)

// Input holds the raw lines of one batch.
type Input struct {
	Categories []string
	Rules      []string
	Rewrites   []string
	Words      []string
}

// Options controls how a batch is run and formatted.
type Options struct {
	// OutFormat selects a preset template (0, 1 or 2).
	OutFormat int

	// Template, when set, overrides OutFormat.
	Template string

	// RewriteOutput reverses the rewrite rules on the transduced word.
	// The input word is always reversed.
	RewriteOutput bool

	// Workers bounds the number of words transduced at once.
	// Values below 2 run sequentially.
	Workers int

	// Normalize converts every input line to Unicode NFC first.
	Normalize bool

	// MaxScanFactor bounds each rule pass; see engine.WithMaxScanFactor.
	MaxScanFactor int

	// Logger receives per-site Debug records from the engine. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns preset format 0, NFC normalisation on and one
// worker per CPU.
func DefaultOptions() Options {
	return Options{
		OutFormat:     FormatOutput,
		Workers:       runtime.GOMAXPROCS(0),
		Normalize:     true,
		MaxScanFactor: engine.DefaultMaxScanFactor,
	}
}

// Result summarises a finished batch.
type Result struct {
	Categories int `json:"categories"`
	Rules      int `json:"rules"`
	Rewrites   int `json:"rewrites"`
	Words      int `json:"words"`
	Changed    int `json:"changed"`
}

// Line is one processed word line.
type Line struct {
	Transduction ir.Transduction
	Output       string
}

// Changed reports whether any rule altered the word.
func (l Line) Changed() bool {
	return l.Transduction.Input != l.Transduction.Output
}

// Batch is a prepared rule set: rewrites, registry, compiled rules and
// output template. A Batch is immutable and safe for concurrent use.
type Batch struct {
	rewriter      *Rewriter
	registry      *ir.Registry
	rules         []*compiler.CompiledRule
	transducer    *engine.Transducer
	template      *Template
	rewriteOutput bool
	normalize     bool
}

// Prepare parses and compiles everything in in except the words.
//
// Rewrite rules are applied to category and rule lines before parsing.
// Any rule-set error aborts preparation and is returned as
// *compiler.RuleSetError.
func Prepare(in Input, opts Options) (*Batch, error) {
	b := &Batch{
		rewriteOutput: opts.RewriteOutput,
		normalize:     opts.Normalize,
	}

	var err error
	if opts.Template != "" {
		b.template, err = ParseTemplate(opts.Template)
	} else {
		b.template, err = PresetTemplate(opts.OutFormat)
	}
	if err != nil {
		return nil, err
	}

	rewrites, err := compiler.ParseRewrites(b.normalizeAll(in.Rewrites))
	if err != nil {
		return nil, err
	}
	b.rewriter = NewRewriter(rewrites)

	b.registry, err = compiler.ParseCategories(b.forwardAll(in.Categories))
	if err != nil {
		return nil, err
	}

	rules, err := compiler.ParseRules(b.forwardAll(in.Rules))
	if err != nil {
		return nil, err
	}
	b.rules, err = compiler.CompileRules(rules, b.registry)
	if err != nil {
		return nil, err
	}

	engineOpts := []engine.Option{engine.WithMaxScanFactor(opts.MaxScanFactor)}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, engine.WithLogger(opts.Logger))
	}
	b.transducer = engine.NewTransducer(b.rules, b.registry, engineOpts...)
	return b, nil
}

// Registry returns the category registry.
func (b *Batch) Registry() *ir.Registry {
	return b.registry
}

// Rules returns the compiled rules in application order.
func (b *Batch) Rules() []*compiler.CompiledRule {
	return b.rules
}

// Rewriter returns the rewrite rules.
func (b *Batch) Rewriter() *Rewriter {
	return b.rewriter
}

// Process transduces and formats one word line.
func (b *Batch) Process(raw string) (Line, error) {
	w := ir.ParseWord(b.normalizeLine(raw))
	w.Text = ir.Pad(b.rewriter.Forward(w.Text))

	td, err := b.transducer.Transduce(w)
	if err != nil {
		return Line{}, fmt.Errorf("word %q: %w", raw, err)
	}
	return Line{Transduction: td, Output: b.format(td)}, nil
}

// Trace pads and rewrites a single word like Process and reports the
// rules that changed it.
func (b *Batch) Trace(word string) ([]engine.Step, error) {
	text := ir.Pad(b.rewriter.Forward(b.normalizeLine(word)))
	return b.transducer.Trace(text)
}

// format renders one transduction. A line whose input, output and gloss
// are all empty after reversing the rewrites renders as "".
func (b *Batch) format(td ir.Transduction) string {
	inw := ir.Unpad(b.rewriter.Reverse(td.Input))
	outw := ir.Unpad(td.Output)
	if b.rewriteOutput {
		outw = ir.Unpad(b.rewriter.Reverse(td.Output))
	}
	if inw == "" && ir.Unpad(b.rewriter.Reverse(td.Output)) == "" && td.Gloss == "" {
		return ""
	}
	return b.template.Execute(inw, outw, td.Gloss)
}

func (b *Batch) normalizeLine(s string) string {
	if b.normalize {
		return norm.NFC.String(s)
	}
	return s
}

func (b *Batch) normalizeAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = b.normalizeLine(l)
	}
	return out
}

// forwardAll normalises and rewrites lines for parsing. Rewrites must
// already be set.
func (b *Batch) forwardAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = b.rewriter.Forward(b.normalizeLine(l))
	}
	return out
}

// Run prepares in and writes one formatted line per word line to sink.
//
// Words are transduced by up to opts.Workers goroutines; the sink always
// sees lines in input order. The first error stops the batch before
// anything is written.
func Run(ctx context.Context, in Input, opts Options, sink Sink) (Result, error) {
	b, err := Prepare(in, opts)
	if err != nil {
		return Result{}, err
	}
	return b.Run(ctx, in.Words, opts.Workers, sink)
}

// Run processes word lines with this batch.
func (b *Batch) Run(ctx context.Context, words []string, workers int, sink Sink) (Result, error) {
	res := Result{
		Categories: b.registry.Len(),
		Rules:      len(b.rules),
		Rewrites:   b.rewriter.Len(),
		Words:      len(words),
	}

	lines := make([]Line, len(words))
	if workers < 2 {
		for i, w := range words {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			line, err := b.Process(w)
			if err != nil {
				return res, err
			}
			lines[i] = line
		}
	} else {
		eg, egctx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for i, w := range words {
			if egctx.Err() != nil {
				break
			}
			eg.Go(func() error {
				if err := egctx.Err(); err != nil {
					return err
				}
				line, err := b.Process(w)
				if err != nil {
					return err
				}
				lines[i] = line
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return res, err
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}

	for _, line := range lines {
		if line.Changed() {
			res.Changed++
		}
		if err := sink.WriteLine(line.Output); err != nil {
			return res, fmt.Errorf("write output: %w", err)
		}
	}
	return res, nil
}
