package service

import (
	"context"
	"time"

	"tgcheck/internal/platform/logger"
	"tgcheck/internal/platform/metrics"
	dom "tgcheck/internal/services/checker/domain"
)

// run tracks one workflow execution
type run struct {
	ctx     context.Context
	log     *logger.Logger
	started time.Time
	rep     dom.Report
}

// enter moves the run to s; a finished run never leaves its terminal state
func (r *run) enter(s dom.State) {
	if r.rep.State.Terminal() {
		r.log.Warn().Str("state", string(r.rep.State)).Str("to", string(s)).Msg("transition after run finished ignored")
		return
	}
	r.log.Trace().Str("from", string(r.rep.State)).Str("to", string(s)).Msg("state")
	r.rep.State = s
}

// finish moves the run into its terminal state and records metrics
func (r *run) finish(err error) dom.Report {
	if r.rep.Results == nil {
		r.rep.Results = []dom.CheckResult{}
	}
	r.rep.Elapsed = time.Since(r.started)
	if err != nil {
		r.rep.Err = err
		r.enter(dom.StateAbortedOnError)
		r.log.Warn().Err(err).Int("checked", len(r.rep.Results)).Int("batches", r.rep.Batches).Msg("check run aborted")
	} else {
		r.enter(dom.StateCompleted)
		r.log.Info().Int("checked", len(r.rep.Results)).Int("batches", r.rep.Batches).Dur("elapsed", r.rep.Elapsed).Msg("check run completed")
	}
	for _, x := range r.rep.Results {
		metrics.CheckNumbers.WithLabelValues(numberOutcome(x.Comment)).Inc()
	}
	metrics.CheckRuns.WithLabelValues(string(r.rep.State)).Inc()
	return r.rep
}
