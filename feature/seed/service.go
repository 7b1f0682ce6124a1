package seed

import (
	"context"
	"errors"
	"fmt"

	"seedfix/core/gateway"
	"seedfix/core/logger"
	"seedfix/core/reconcile"

	"go.uber.org/zap"
)

// ErrNotConfirmed is returned when a changing plan is applied without confirmation.
var ErrNotConfirmed = errors.New("apply requires confirmation")

// Service runs the seed reconciliation pipeline against a gateway.
type Service struct {
	gw     gateway.Gateway
	cfg    Config
	logger *zap.Logger
}

// NewService creates a new seed service.
func NewService(gw gateway.Gateway, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		gw:     gw,
		cfg:    cfg,
		logger: logger,
	}
}

// Run holds a loaded document and its plan, between Plan and Apply.
type Run struct {
	Name     string
	Original reconcile.Document
	Spec     *reconcile.Spec
	Plan     *reconcile.ReconcilePlan
	// Before is the verification of the document as loaded.
	Before *reconcile.VerifyReport
}

// ApplyOptions gates Apply the same way the CLI flags do.
type ApplyOptions struct {
	// DryRun computes and verifies the result without saving it.
	DryRun bool
	// Confirmed must be set to save a changing plan.
	Confirmed bool
}

// Result describes the outcome of Apply.
type Result struct {
	Document reconcile.Document
	Report   *reconcile.ApplyReport
	Verify   *reconcile.VerifyReport
	Saved    bool
}

// Plan loads the document and computes the reconciliation plan.
// An empty name selects the configured document.
func (s *Service) Plan(ctx context.Context, name string, opts reconcile.Options) (*Run, error) {
	name = s.documentName(name)
	l := logger.WithDocument(s.logger, name)

	spec, err := s.cfg.Spec()
	if err != nil {
		return nil, fmt.Errorf("invalid seed profile: %w", err)
	}

	doc, err := s.gw.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	l.Debug("Document loaded", zap.Int("bytes", len(doc)))

	plan, err := reconcile.Plan(doc, spec, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to plan %s: %w", name, err)
	}

	for _, w := range plan.Warnings {
		l.Warn("Planning warning", zap.String("kind", string(w.Kind)), zap.String("detail", w.Message))
	}
	l.Info("Plan ready",
		zap.Int("canonical_ids", plan.Summary.CanonicalIDs),
		zap.Int("actions", len(plan.Actions)),
		zap.Int("pending_substitutions", plan.Summary.PendingSubstitutions),
	)

	return &Run{
		Name:     name,
		Original: doc,
		Spec:     spec,
		Plan:     plan,
		Before:   reconcile.Verify(doc, spec),
	}, nil
}

// Apply applies the run's plan, verifies the result and saves it.
// Nothing is saved for a dry run or an unchanged document.
func (s *Service) Apply(ctx context.Context, run *Run, opts ApplyOptions) (*Result, error) {
	l := logger.WithDocument(s.logger, run.Name)

	if run.Plan.Changed() && !opts.DryRun && !opts.Confirmed {
		return nil, ErrNotConfirmed
	}

	out, report := reconcile.ApplyPlan(run.Original, run.Plan)
	for _, w := range report.Warnings {
		l.Warn("Apply warning", zap.String("kind", string(w.Kind)), zap.String("detail", w.Message))
	}

	result := &Result{
		Document: out,
		Report:   report,
		Verify:   reconcile.Verify(out, run.Spec),
	}

	if !result.Verify.Healthy() {
		l.Warn("Document still violates integrity",
			zap.Int("duplicates", len(result.Verify.Duplicates)),
			zap.Int("orphans", len(result.Verify.Orphans)),
		)
	}

	if opts.DryRun || out == run.Original {
		l.Info("Document not saved", zap.Bool("dry_run", opts.DryRun), zap.Bool("changed", out != run.Original))
		return result, nil
	}

	if err := s.gw.Save(ctx, run.Name, out); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", run.Name, err)
	}
	result.Saved = true

	l.Info("Document saved",
		zap.Strings("replaced_blocks", report.ReplacedBlocks),
		zap.Int("substitutions", report.Total()),
	)
	return result, nil
}

// Check loads the document and verifies it without planning any change.
func (s *Service) Check(ctx context.Context, name string) (*reconcile.VerifyReport, error) {
	name = s.documentName(name)

	spec, err := s.cfg.Spec()
	if err != nil {
		return nil, fmt.Errorf("invalid seed profile: %w", err)
	}

	doc, err := s.gw.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	report := reconcile.Verify(doc, spec)
	logger.WithDocument(s.logger, name).Info("Document verified",
		zap.Bool("healthy", report.Healthy()),
		zap.Int("parent_ids", len(report.ParentIDs)),
		zap.Int("child_refs", len(report.ChildRefs)),
		zap.Int("orphans", len(report.Orphans)),
	)
	return report, nil
}

func (s *Service) documentName(name string) string {
	if name == "" {
		return s.cfg.Document
	}
	return name
}
