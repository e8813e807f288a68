package questiongen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/closer/internal/content"
)

// ErrNothingPassed is returned when a run ends without a single question
// passing review.
var ErrNothingPassed = errors.New("no questions passed review")

// Pipeline runs generate, validate and review rounds and stores what passes.
type Pipeline struct {
	Generator  Generator
	Validators []Validator
	Reviewer   Reviewer
	Cards      content.CardStore
	Config     Config
	Logger     *slog.Logger

	// Now stamps saved cards. Defaults to time.Now.
	Now func() time.Time
}

func NewPipeline(gen Generator, rev Reviewer, cards content.CardStore, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Generator:  gen,
		Validators: DefaultValidators(),
		Reviewer:   rev,
		Cards:      cards,
		Config:     cfg,
		Logger:     logger,
		Now:        time.Now,
	}
}

// Run generates until Config.Target questions have passed or
// Config.MaxAttempts rounds are used, then saves the passed questions.
// The Result is returned alongside any error.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	seen := dedup{}
	var passed []content.Raw

	for res.Attempts < p.Config.MaxAttempts && len(passed) < p.Config.Target {
		res.Attempts++
		want := p.Config.Target - len(passed) + p.Config.Overshoot

		batch, err := p.Generator.Generate(ctx, want)
		if err != nil {
			return res, fmt.Errorf("attempt %d: %w", res.Attempts, err)
		}
		res.Generated += len(batch)

		candidates := p.filter(batch, seen, res)
		verdicts, err := p.review(ctx, candidates)
		if err != nil {
			return res, err
		}

		for i, q := range candidates {
			v := verdicts[i]
			switch {
			case v == nil:
				res.ReviewErrors++
			case !v.Pass:
				res.Rejected++
				p.Logger.Debug("question rejected", "score", v.Score, "reason", v.Reason, "question", q.Prompt)
			case len(passed) < p.Config.Target:
				passed = append(passed, q)
			}
		}
		p.Logger.Info("pipeline round finished",
			"attempt", res.Attempts, "generated", len(batch), "passed_total", len(passed))
	}

	res.Passed = len(passed)
	if len(passed) == 0 {
		return res, ErrNothingPassed
	}

	now := p.now()
	cards := make([]content.Card, len(passed))
	for i, q := range passed {
		cards[i] = content.Normalize(q, now.Add(time.Duration(i)*time.Millisecond))
	}
	if err := p.Cards.SaveCards(ctx, cards); err != nil {
		return res, fmt.Errorf("save cards: %w", err)
	}
	res.Saved = len(cards)
	return res, nil
}

// filter drops questions that fail a validator or repeat an earlier prompt.
func (p *Pipeline) filter(batch []content.Raw, seen dedup, res *Result) []content.Raw {
	out := make([]content.Raw, 0, len(batch))
next:
	for _, q := range batch {
		for _, v := range p.Validators {
			if verr := v.Validate(q); verr != nil {
				res.Invalid++
				p.Logger.Debug("question invalid", "error", verr, "question", q.Prompt)
				continue next
			}
		}
		if !seen.add(q.Prompt) {
			res.Invalid++
			continue
		}
		out = append(out, q)
	}
	return out
}

// review scores candidates concurrently. The returned slice is parallel to
// candidates; a nil entry means the review failed and was logged. Only
// cancellation of ctx is returned as an error.
func (p *Pipeline) review(ctx context.Context, candidates []content.Raw) ([]*Verdict, error) {
	verdicts := make([]*Verdict, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Config.Workers, 1))
	for i, q := range candidates {
		g.Go(func() error {
			v, err := p.Reviewer.Review(gctx, q)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				p.Logger.Warn("review failed", "error", err, "question", q.Prompt)
				return nil
			}
			verdicts[i] = &v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	return verdicts, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
