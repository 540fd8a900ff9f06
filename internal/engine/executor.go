package engine

import (
	"log/slog"

	"github.com/schyrsivochter/soundchange/internal/compiler"
	"github.com/schyrsivochter/soundchange/internal/ir"
)

// Executor applies one compiled rule to one word per call.
//
// Thread-safety: an Executor is immutable after construction and safe
// for concurrent use.
type Executor struct {
	reg           *ir.Registry
	logger        *slog.Logger
	maxScanFactor int
}

// NewExecutor creates an executor resolving categories against reg.
// reg must be the registry the rules were compiled with.
func NewExecutor(reg *ir.Registry, opts ...Option) *Executor {
	o := applyOptions(opts)
	return &Executor{
		reg:           reg,
		logger:        o.logger,
		maxScanFactor: o.maxScanFactor,
	}
}

// Apply runs rule over word in a single left-to-right pass and returns the
// rewritten word.
//
// At every scan position the rule's full pattern is tried against the live
// word. On a match the target span is replaced (or kept, if the exception
// claims the same target start) and scanning resumes after the
// replacement. Target sites that would start inside text written earlier in
// this pass, or on the leading boundary pad, are skipped.
func (x *Executor) Apply(word string, rule *compiler.CompiledRule) (string, error) {
	w := []rune(word)
	raw := rule.Rule.Raw

	pos := 0
	floor := 0
	if len(w) > 0 && w[0] == ir.Boundary {
		floor = 1
	}

	quota := NewScanQuota(x.maxScanFactor)
	for pos < len(w) {
		if err := quota.Check(raw, string(w), len(w)); err != nil {
			return "", err
		}

		span, ok, err := rule.Main.Match(w[pos:])
		if err != nil {
			return "", newMatchError(raw, string(w), err)
		}
		if !ok {
			pos++
			continue
		}

		start := pos + span.TargetStart
		end := pos + span.TargetEnd
		if start < floor {
			pos++
			continue
		}
		matched := w[start:end]

		suppressed, err := x.excepted(w, rule, start)
		if err != nil {
			return "", newMatchError(raw, string(w), err)
		}

		var rep []rune
		if suppressed {
			rep = append(rep, matched...)
		} else {
			rep = Resolve(matched, rule.Rule, x.reg)
		}

		x.logger.Debug("rule site",
			"rule", raw,
			"word", string(w),
			"at", start,
			"target", string(matched),
			"replacement", string(rep),
			"suppressed", suppressed,
		)

		next := make([]rune, 0, len(w)-len(matched)+len(rep))
		next = append(next, w[:start]...)
		next = append(next, rep...)
		next = append(next, w[end:]...)
		w = next

		adv := len(rep)
		if rule.BareEpenthesis {
			adv++
		}
		if adv == 0 && span.TargetStart == span.TargetEnd {
			adv = 1
		}
		floor = start + adv
		pos += adv
	}
	return string(w), nil
}

// excepted reports whether the rule's exception matches anywhere in w with
// its target starting at start.
func (x *Executor) excepted(w []rune, rule *compiler.CompiledRule, start int) (bool, error) {
	if rule.Except == nil {
		return false, nil
	}
	for off := 0; off <= start && off < len(w); off++ {
		span, ok, err := rule.Except.Match(w[off:])
		if err != nil {
			return false, err
		}
		if ok && off+span.TargetStart == start {
			return true, nil
		}
	}
	return false, nil
}
