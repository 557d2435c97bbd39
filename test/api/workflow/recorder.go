/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/drivingschool/enrollment-harness/test/api"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ErrAssertion is returned when a response was received but the platform
// did not behave as expected.
var ErrAssertion = errors.New("assertion failed")

// Outcome is the result of a single step.
type Outcome string

const (
	OutcomePassed Outcome = "PASSED"
	// OutcomeFailed means a response arrived but was wrong.
	OutcomeFailed Outcome = "FAILED"
	// OutcomeError means no usable response arrived at all.
	OutcomeError Outcome = "ERROR"
)

// StepResult records one step of a run.
type StepResult struct {
	Name     string
	Outcome  Outcome
	Details  string
	Duration time.Duration
}

// Recorder accumulates step results for a run. It is not safe for
// concurrent use, runs are strictly sequential.
type Recorder struct {
	results []StepResult
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func classify(err error) Outcome {
	if errors.Is(err, api.ErrTransport) {
		return OutcomeError
	}

	return OutcomeFailed
}

// Step runs fn as a named step, records the outcome and returns fn's error
// so the caller can decide whether to continue.
func (r *Recorder) Step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	log := log.FromContext(ctx).WithValues("step", name)

	start := time.Now()
	err := fn(ctx)

	result := StepResult{
		Name:     name,
		Outcome:  OutcomePassed,
		Duration: time.Since(start),
	}

	if err != nil {
		result.Outcome = classify(err)
		result.Details = err.Error()

		log.Info("step did not pass", "outcome", result.Outcome, "details", result.Details)
	} else {
		log.V(1).Info("step passed", "duration", result.Duration)
	}

	r.results = append(r.results, result)

	return err
}

// Check records an assertion over data already fetched by an earlier step.
func (r *Recorder) Check(ctx context.Context, name string, ok bool, format string, args ...any) error {
	return r.Step(ctx, name, func(context.Context) error {
		if ok {
			return nil
		}

		return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
	})
}

// Results returns every recorded step in execution order.
func (r *Recorder) Results() []StepResult {
	return r.results
}

func (r *Recorder) Run() int {
	return len(r.results)
}

func (r *Recorder) Passed() int {
	var passed int

	for i := range r.results {
		if r.results[i].Outcome == OutcomePassed {
			passed++
		}
	}

	return passed
}

// Failed returns the steps that failed or errored.
func (r *Recorder) Failed() []StepResult {
	var failed []StepResult

	for i := range r.results {
		if r.results[i].Outcome != OutcomePassed {
			failed = append(failed, r.results[i])
		}
	}

	return failed
}

// Err aggregates every failed step into one error, nil when all passed.
func (r *Recorder) Err() error {
	failed := r.Failed()

	errs := make([]error, 0, len(failed))

	for i := range failed {
		errs = append(errs, fmt.Errorf("%s: %s", failed[i].Name, failed[i].Details))
	}

	return utilerrors.NewAggregate(errs)
}

// PassRate is the percentage of steps that passed.
func (r *Recorder) PassRate() float64 {
	if r.Run() == 0 {
		return 0
	}

	return float64(r.Passed()) / float64(r.Run()) * 100
}

//nolint:gochecknoglobals
var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Summary renders the pass count, pass rate and each failed step.
func (r *Recorder) Summary() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Test Results Summary"))
	b.WriteString("\n")

	style := passStyle
	if r.Passed() != r.Run() {
		style = failStyle
	}

	b.WriteString(style.Render(fmt.Sprintf("Tests passed: %d/%d (%.1f%%)", r.Passed(), r.Run(), r.PassRate())))
	b.WriteString("\n")

	failed := r.Failed()
	if len(failed) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(failStyle.Render("Failed Tests:"))
	b.WriteString("\n")

	for i := range failed {
		fmt.Fprintf(&b, "  - %s [%s]: %s\n", failed[i].Name, failed[i].Outcome, failed[i].Details)
	}

	return b.String()
}
