// Package updater re-checks catalog entries against an external source and
// reports proposed changes for human review. It never rewrites the dataset.
package updater

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v3"

	llmref "github.com/kingfs/go-llm-reference"
)

// Observation is what a source currently reports for a model. Nil fields are unknown.
type Observation struct {
	ContextWindow *int
	InputPer1M    *float64
	OutputPer1M   *float64
}

// Source looks up current facts for a model. found is false when the source has
// nothing to say about it.
type Source interface {
	Lookup(ctx context.Context, m llmref.Model) (obs Observation, found bool, err error)
}

// NoopSource performs no network calls and never reports anything. It is the
// default until a real pricing feed is wired in.
type NoopSource struct{}

// Lookup implements Source.
func (NoopSource) Lookup(context.Context, llmref.Model) (Observation, bool, error) {
	return Observation{}, false, nil
}

// Change is one proposed field update.
type Change struct {
	ID    string `yaml:"id"`
	Model string `yaml:"model"`
	Field string `yaml:"field"`
	Old   string `yaml:"old"`
	New   string `yaml:"new"`
}

// Report summarises one check run.
type Report struct {
	CheckedAt string   `yaml:"checked_at"`
	Source    string   `yaml:"source"`
	Models    int      `yaml:"models"`
	Changes   []Change `yaml:"changes"`
}

// Checker walks a dataset and compares it with a Source.
type Checker struct {
	Source Source
	now    func() time.Time
}

// NewChecker returns a Checker over src; a nil src means NoopSource.
func NewChecker(src Source) *Checker {
	if src == nil {
		src = NoopSource{}
	}
	return &Checker{Source: src, now: time.Now}
}

func (c *Checker) sourceName() string {
	if _, ok := c.Source.(NoopSource); ok {
		return "mock"
	}
	return fmt.Sprintf("%T", c.Source)
}

// Check compares every model with the source. A lookup error aborts the run.
func (c *Checker) Check(ctx context.Context, models []llmref.Model) (Report, error) {
	r := Report{
		CheckedAt: c.now().UTC().Format(time.RFC3339),
		Source:    c.sourceName(),
		Models:    len(models),
		Changes:   []Change{},
	}

	fiberlog.Infof("Checking %d models...", len(models))
	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		fiberlog.Infof("Checking %s...", m.ModelName)

		obs, found, err := c.Source.Lookup(ctx, m)
		if err != nil {
			return r, fmt.Errorf("lookup %s: %w", m.ID, err)
		}
		if !found {
			continue
		}
		r.Changes = append(r.Changes, diff(m, obs)...)
	}

	if len(r.Changes) == 0 {
		if r.Source == "mock" {
			fiberlog.Info("Update check complete. No changes detected (Mock).")
		} else {
			fiberlog.Info("Update check complete. No changes detected.")
		}
	} else {
		fiberlog.Infof("Update check complete. %d changes flagged for review.", len(r.Changes))
	}
	return r, nil
}

func diff(m llmref.Model, obs Observation) []Change {
	var out []Change
	add := func(field, was, now string) {
		if was != now {
			out = append(out, Change{ID: m.ID, Model: m.ModelName, Field: field, Old: was, New: now})
		}
	}
	if obs.ContextWindow != nil {
		add("context_window", strconv.Itoa(m.ContextWindow), strconv.Itoa(*obs.ContextWindow))
	}
	if obs.InputPer1M != nil {
		add("pricing.input_per_1m", formatPrice(m.Pricing.InputPer1M), formatPrice(*obs.InputPer1M))
	}
	if obs.OutputPer1M != nil {
		add("pricing.output_per_1m", formatPrice(m.Pricing.OutputPer1M), formatPrice(*obs.OutputPer1M))
	}
	return out
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Run loads the dataset at dataPath, checks it against src and, when reportPath
// is set, writes the report there as YAML.
func Run(ctx context.Context, dataPath, reportPath string, src Source) (Report, error) {
	fiberlog.Info("Starting model update check...")

	catalog, err := llmref.Load(dataPath)
	if err != nil {
		return Report{}, err
	}

	r, err := NewChecker(src).Check(ctx, catalog.Models())
	if err != nil {
		return r, err
	}

	if reportPath != "" {
		if err := WriteReport(reportPath, r); err != nil {
			return r, err
		}
		fiberlog.Infof("Wrote report to %s", reportPath)
	}
	return r, nil
}

// WriteReport saves r as YAML with two-space indentation.
func WriteReport(path string, r Report) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
