// Package service runs the batched import, classify and delete check workflow
package service

import (
	"context"
	"io"
	"time"

	"tgcheck/internal/core/phonelist"
	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"
	"tgcheck/internal/platform/metrics"
	dom "tgcheck/internal/services/checker/domain"

	"github.com/google/uuid"
)

// Config for the check workflow
type Config struct {
	BatchSize        int
	BatchDelay       time.Duration
	FirstDelay       bool
	PopularThreshold int
	MaxNumbers       int
}

const (
	defaultBatchSize = 10
	maxBatchSize     = 100
)

// Service implements domain.ServicePort over the contacts and gate ports
type Service struct {
	contacts dom.Contacts
	gate     dom.Gate
	cfg      Config
}

// seams
var (
	sleep = func(ctx context.Context, d time.Duration) error {
		if d <= 0 {
			return nil
		}
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	newRunID   = func() string { return uuid.NewString() }
	now        = time.Now
	classifyFn = classify
)

// New constructs the check service
func New(contacts dom.Contacts, gate dom.Gate, cfg Config) *Service {
	switch {
	case cfg.BatchSize <= 0:
		cfg.BatchSize = defaultBatchSize
	case cfg.BatchSize > maxBatchSize:
		cfg.BatchSize = maxBatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = 0
	}
	if cfg.PopularThreshold < 0 {
		cfg.PopularThreshold = 0
	}
	if cfg.MaxNumbers <= 0 {
		cfg.MaxNumbers = phonelist.DefaultLimit
	}
	return &Service{contacts: contacts, gate: gate, cfg: cfg}
}

// Config returns the effective configuration after defaults and clamping
func (s *Service) Config() Config { return s.cfg }

// CheckFile parses a CSV upload and checks the accepted phones
func (s *Service) CheckFile(ctx context.Context, r io.Reader) dom.Report {
	r0 := s.begin(ctx)
	r0.enter(dom.StateParsingInput)
	cands, err := phonelist.Parse(r, s.cfg.MaxNumbers)
	if err != nil {
		return r0.finish(err)
	}
	return s.run(r0, cands)
}

// CheckOne checks a single raw phone
func (s *Service) CheckOne(ctx context.Context, raw string) dom.Report {
	r0 := s.begin(ctx)
	r0.enter(dom.StateParsingInput)
	return s.run(r0, phonelist.Single(raw))
}

// CheckList checks an already split list of raw phones, capped like an upload
func (s *Service) CheckList(ctx context.Context, raws []string) dom.Report {
	r0 := s.begin(ctx)
	r0.enter(dom.StateParsingInput)
	return s.run(r0, phonelist.FromStrings(raws, s.cfg.MaxNumbers))
}

// Check runs the workflow over already parsed candidates
func (s *Service) Check(ctx context.Context, candidates []dom.Candidate) dom.Report {
	return s.run(s.begin(ctx), candidates)
}

func (s *Service) begin(ctx context.Context) *run {
	id := newRunID()
	ctx = logger.WithRun(ctx, id)
	return &run{
		ctx:     ctx,
		log:     logger.C(ctx),
		started: now(),
		rep:     dom.Report{RunID: id, State: dom.StateIdle},
	}
}

func (s *Service) run(r *run, cands []dom.Candidate) dom.Report {
	r.rep.Accepted = len(cands)
	r.rep.Results = make([]dom.CheckResult, 0, len(cands))
	if len(cands) == 0 {
		return r.finish(nil)
	}

	batches := partition(cands, s.cfg.BatchSize)
	r.enter(dom.StateBatching)
	r.log.Info().Int("numbers", len(cands)).Int("batches", len(batches)).Msg("check run started")

	err := s.gate.Exclusive(r.ctx, func(ctx context.Context) error {
		for i, b := range batches {
			if i > 0 || s.cfg.FirstDelay {
				if err := sleep(ctx, s.cfg.BatchDelay); err != nil {
					return perr.Wrap(err, perr.ErrorCodeUnavailable, "check interrupted")
				}
			}
			res, err := s.batch(ctx, r, i, b)
			if res != nil {
				r.rep.Results = append(r.rep.Results, res...)
				r.rep.Batches++
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	return r.finish(err)
}

// batch imports, classifies and deletes one batch. Results are returned
// whenever classification finished, even if cleanup failed afterwards
func (s *Service) batch(ctx context.Context, r *run, idx int, b []dom.Candidate) (res []dom.CheckResult, err error) {
	start := now()
	log := r.log.With().Int("batch", idx).Int("size", len(b)).Logger()
	// upstream calls must finish even when the run is interrupted
	api := context.WithoutCancel(ctx)

	r.enter(dom.StateImportingBatch)
	out, err := s.contacts.Import(api, b)
	if err != nil {
		metrics.CheckBatches.WithLabelValues(batchOutcome(err)).Inc()
		log.Warn().Err(err).Msg("contact import failed")
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("classification panicked")
			res, err = nil, perr.PanicErrf("classify batch %d: %v", idx, rec)
		}
		r.enter(dom.StateDeletingBatch)
		if derr := s.cleanup(api, out); derr != nil {
			log.Error().Err(derr).Msg("transient contacts may remain")
			metrics.CheckBatches.WithLabelValues("cleanup_failed").Inc()
			if err == nil {
				err = derr
			}
		} else if err == nil {
			metrics.CheckBatches.WithLabelValues("ok").Inc()
		}
		metrics.CheckBatchDuration.Observe(now().Sub(start).Seconds())
	}()

	r.enter(dom.StateClassifyingBatch)
	res = classifyFn(b, out, s.cfg.PopularThreshold)
	log.Debug().Int("found", countFound(res)).Msg("batch classified")
	return res, nil
}

func (s *Service) cleanup(ctx context.Context, out dom.ImportOutcome) error {
	refs := out.Refs()
	if len(refs) == 0 {
		return nil
	}
	if err := s.contacts.Delete(ctx, refs); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "cleanup failed")
	}
	return nil
}

// classify maps every candidate of b to exactly one result, in order
func classify(b []dom.Candidate, out dom.ImportOutcome, threshold int) []dom.CheckResult {
	phones := make(map[string]struct{}, len(out.Users))
	for _, u := range out.Users {
		if u.Phone != "" {
			phones[phonelist.Digits(u.Phone)] = struct{}{}
		}
	}
	retry := make(map[int64]struct{}, len(out.Retry))
	for _, id := range out.Retry {
		retry[id] = struct{}{}
	}

	res := make([]dom.CheckResult, len(b))
	for i, c := range b {
		id := int64(c.Index)
		r := dom.CheckResult{Phone: c.Phone, Comment: dom.CommentNotFound}
		_, imported := out.Imported[id]
		_, byPhone := phones[phonelist.Digits(c.Phone)]
		_, again := retry[id]
		switch {
		case imported || byPhone:
			r.Exists, r.Comment = true, dom.CommentFound
		case again:
			r.Comment = dom.CommentRetry
		case threshold > 0 && out.Popular[id] >= threshold:
			r.Comment = dom.CommentPrivacy
		}
		res[i] = r
	}
	return res
}

func partition(cands []dom.Candidate, size int) [][]dom.Candidate {
	out := make([][]dom.Candidate, 0, (len(cands)+size-1)/size)
	for lo := 0; lo < len(cands); lo += size {
		hi := min(lo+size, len(cands))
		out = append(out, cands[lo:hi])
	}
	return out
}

func batchOutcome(err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeTooManyRequests:
		return "rate_limited"
	case perr.ErrorCodeUnauthorized, perr.ErrorCodeForbidden:
		return "denied"
	default:
		return "failed"
	}
}

func countFound(res []dom.CheckResult) int {
	n := 0
	for _, r := range res {
		if r.Exists {
			n++
		}
	}
	return n
}

func numberOutcome(c string) string {
	switch c {
	case dom.CommentFound:
		return "found"
	case dom.CommentRetry:
		return "retry"
	case dom.CommentPrivacy:
		return "privacy"
	default:
		return "not_found"
	}
}
