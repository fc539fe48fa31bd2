package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"

	"github.com/Fepozopo/shotframe/pkg/codec"
	"github.com/Fepozopo/shotframe/pkg/frame"
)

// ErrOutputCollision is returned for an input whose output path is already
// claimed by an earlier input of the same run.
var ErrOutputCollision = errors.New("output path collision")

// Runner applies a pipeline to many files. Each file gets its own buffer, so
// files are processed concurrently without locking.
type Runner struct {
	Config *Config

	// Concurrency bounds the number of files in flight; zero means NumCPU.
	Concurrency int

	// Metrics, when set, are updated for every file.
	Metrics *Metrics
}

// NewRunner validates cfg and returns a runner for it.
func NewRunner(cfg *Config) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil pipeline config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{Config: cfg}, nil
}

// Steps runs every configured step on buf and returns the final frame.
func (r *Runner) Steps(ctx context.Context, buf *frame.Buffer) (*frame.Buffer, error) {
	for i, s := range r.Config.Steps {
		logger.Tracef(ctx, "step %d: %s on %dx%d", i+1, s, buf.Width(), buf.Height())
		out, err := Apply(buf, s.Name, s.Args)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.Name, err)
		}
		buf = out
	}
	return buf, nil
}

// ProcessFile loads input, runs the steps and saves the result next to it
// or into the configured output directory. It returns the path written.
func (r *Runner) ProcessFile(ctx context.Context, input string) (string, error) {
	dst := r.Config.OutputPath(input)
	if r.Config.Output != "" {
		if err := os.MkdirAll(r.Config.Output, 0o755); err != nil {
			return "", fmt.Errorf("unable to create output directory %q: %w", r.Config.Output, err)
		}
	}
	if err := r.ProcessFileTo(ctx, input, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// ProcessFileTo is ProcessFile with an explicit destination.
func (r *Runner) ProcessFileTo(ctx context.Context, input, dst string) error {
	buf, format, err := codec.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf(ctx, "loaded %s", codec.Info(buf, format))

	out, err := r.Steps(ctx, buf)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := codec.Save(dst, out); err != nil {
		return err
	}
	r.Metrics.addPixels(out.Width() * out.Height())
	logger.Infof(ctx, "wrote %s (%dx%d)", dst, out.Width(), out.Height())
	return nil
}

// Run processes every input. Failures do not stop the other files; they are
// collected and returned together. Cancelling ctx stops scheduling new files.
// When several inputs map to the same output path only the first one is
// processed; the others fail with ErrOutputCollision.
func (r *Runner) Run(ctx context.Context, inputs []string) error {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)
	sem := make(chan struct{}, concurrency)

	skip := func(input string) {
		r.Metrics.observe(ResultSkipped, 0)
		mu.Lock()
		result = multierror.Append(result, fmt.Errorf("%s: not processed: %w", input, ctx.Err()))
		mu.Unlock()
	}
	claimed := make(map[string]string, len(inputs))
	for _, input := range inputs {
		dst := filepath.Clean(r.Config.OutputPath(input))
		if first, ok := claimed[dst]; ok {
			err := fmt.Errorf("%s: %w: %s is already written for %s", input, ErrOutputCollision, dst, first)
			logger.Errorf(ctx, "%v", err)
			r.Metrics.observe(ResultError, 0)
			mu.Lock()
			result = multierror.Append(result, err)
			mu.Unlock()
			continue
		}
		claimed[dst] = input

		if ctx.Err() != nil {
			skip(input)
			continue
		}
		select {
		case <-ctx.Done():
			skip(input)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			defer func() { <-sem }()
			ctx := belt.WithField(ctx, "input", input)
			started := time.Now()
			_, err := r.ProcessFile(ctx, input)
			if err != nil {
				r.Metrics.observe(ResultError, time.Since(started).Seconds())
				logger.Errorf(ctx, "%v", err)
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
				return
			}
			r.Metrics.observe(ResultOK, time.Since(started).Seconds())
		}(input)
	}
	wg.Wait()

	return result.ErrorOrNil()
}
