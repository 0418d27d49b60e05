// Package pipeline orchestrates a repair run: cluster diagnostics,
// try deterministic rules (tier 1), delegate unmatched clusters to the
// external generator (tier 2), and apply accepted patches as one batch
// with rollback.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/remedykit/remedy-cli/internal/cluster"
	"github.com/remedykit/remedy-cli/internal/diag"
	"github.com/remedykit/remedy-cli/internal/generator"
	"github.com/remedykit/remedy-cli/internal/patch"
	"github.com/remedykit/remedy-cli/internal/rule"
	"go.uber.org/zap"
)

// Config is passed explicitly into the pipeline constructor; there is
// no module-level configuration.
type Config struct {
	// WorkDir is the workspace root patches are applied under.
	WorkDir string

	// MaxGeneratedPatches caps tier-2 calls per run. The cap is the
	// run's only budget: generation proceeds sequentially to respect
	// generator rate limits, and there is no other deadline.
	MaxGeneratedPatches int

	// ContextLines is the code window around a diagnostic fed to the
	// generator.
	ContextLines int

	// SupportingDocs holds upgrade notes / changelog text for tier-2
	// prompts.
	SupportingDocs string
}

// DefaultConfig returns the config used when the caller has no
// overrides.
func DefaultConfig() Config {
	return Config{
		WorkDir:             ".",
		MaxGeneratedPatches: 10,
		ContextLines:        6,
	}
}

// Tier identifies which stage resolved a cluster.
type Tier int

const (
	// TierNone marks clusters neither tier could fix.
	TierNone Tier = 0
	// TierPattern marks clusters fixed by a deterministic rule.
	TierPattern Tier = 1
	// TierGenerated marks clusters fixed by the external generator.
	TierGenerated Tier = 2
)

// ClusterOutcome records what happened to one cluster.
type ClusterOutcome struct {
	Cluster *cluster.ErrorCluster
	Tier    Tier
	RuleID  string // tier-1 rule id, empty otherwise
	Patches []patch.Patch
	Err     error // generator failure; informational, never fatal
}

// Plan is the reviewed-but-not-applied result of the matching stages.
type Plan struct {
	RunID    string
	Outcomes []ClusterOutcome
}

// Patches returns every accepted patch in cluster order then patch
// order, ready for batch application.
func (p *Plan) Patches() []patch.Patch {
	var out []patch.Patch
	for _, o := range p.Outcomes {
		out = append(out, o.Patches...)
	}
	return out
}

// Summary is the run report handed back to the CLI and MCP surfaces.
type Summary struct {
	RunID              string
	TotalDiagnostics   int
	ClusterCount       int
	MatchedClusters    int
	GeneratedClusters  int
	UnresolvedClusters int
	PatchesApplied     int
	RolledBack         bool
	FailureReason      string
	RollbackErrors     []string
}

// Pipeline wires the clustering, matching, generation, and patch
// application stages together.
type Pipeline struct {
	cfg    Config
	rules  *rule.Registry
	gen    generator.FixGenerator // nil disables tier 2
	engine *patch.Engine
	log    *zap.Logger
}

// New creates a pipeline. gen may be nil, which disables tier 2 and
// reports unmatched clusters as unresolved.
func New(cfg Config, rules *rule.Registry, gen generator.FixGenerator, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxGeneratedPatches <= 0 {
		cfg.MaxGeneratedPatches = DefaultConfig().MaxGeneratedPatches
	}
	if cfg.ContextLines <= 0 {
		cfg.ContextLines = DefaultConfig().ContextLines
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	return &Pipeline{
		cfg:    cfg,
		rules:  rules,
		gen:    gen,
		engine: patch.NewEngine(log),
		log:    log,
	}
}

// Plan clusters the diagnostics and runs both matching tiers without
// touching any file. Tier-2 generation is sequential and capped by
// MaxGeneratedPatches; a generator failure marks the cluster
// unresolved and the run continues.
func (p *Pipeline) Plan(ctx context.Context, diagnostics []diag.Diagnostic) *Plan {
	plan := &Plan{RunID: uuid.NewString()}

	clusters := cluster.Cluster(diagnostics)
	p.log.Debug("clustered diagnostics",
		zap.Int("diagnostics", len(diagnostics)),
		zap.Int("clusters", len(clusters)))

	generated := 0
	for _, c := range clusters {
		outcome := ClusterOutcome{Cluster: c}

		// Tier 1: first matching rule, in registration order.
		if r := p.rules.Match(c); r != nil {
			outcome.Tier = TierPattern
			outcome.RuleID = r.ID
			outcome.Patches = rule.GenerateFixes(c, r)
			plan.Outcomes = append(plan.Outcomes, outcome)
			continue
		}

		// Tier 2: external generator, budget permitting.
		if p.gen != nil && generated < p.cfg.MaxGeneratedPatches {
			patches, err := p.generateForCluster(ctx, c)
			if err != nil {
				// Treated as zero patches produced, never fatal.
				outcome.Err = err
				p.log.Warn("generator failed for cluster",
					zap.String("cluster", c.ID), zap.Error(err))
			}
			if len(patches) > 0 {
				outcome.Tier = TierGenerated
				outcome.Patches = patches
				generated++
			}
		}

		plan.Outcomes = append(plan.Outcomes, outcome)
	}

	return plan
}

// generateForCluster asks tier 2 for a fix based on the cluster's
// representative diagnostic.
func (p *Pipeline) generateForCluster(ctx context.Context, c *cluster.ErrorCluster) ([]patch.Patch, error) {
	rep := c.Representative

	codeContext := p.readContext(rep)
	patches, err := p.gen.GenerateFixForError(ctx, rep.String(), codeContext, p.cfg.SupportingDocs)
	if err != nil {
		return nil, err
	}

	// Generated diffs may omit the target file; default to the
	// representative's.
	for i := range patches {
		if patches[i].FilePath == "" {
			patches[i].FilePath = rep.File
		}
	}
	return patches, nil
}

// readContext extracts the lines around the diagnostic, best effort.
func (p *Pipeline) readContext(d diag.Diagnostic) string {
	data, err := os.ReadFile(filepath.Join(p.cfg.WorkDir, d.File))
	if err != nil {
		return ""
	}

	lines := strings.Split(string(data), "\n")
	start := d.Line - 1 - p.cfg.ContextLines
	if start < 0 {
		start = 0
	}
	end := d.Line + p.cfg.ContextLines
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%d: %s\n", i+1, lines[i])
	}
	return b.String()
}

// Apply applies every accepted patch from the plan as one batch and
// builds the run summary. Per-patch failures inside the batch trigger
// reverse-order rollback of that batch.
func (p *Pipeline) Apply(plan *Plan) *Summary {
	s := p.summarize(plan)

	items := make([]patch.BatchItem, 0)
	for _, pt := range plan.Patches() {
		items = append(items, patch.BatchItem{
			FilePath: filepath.Join(p.cfg.WorkDir, pt.FilePath),
			Patch:    &patch.Patch{Diff: pt.Diff, Description: pt.Description, FilePath: pt.FilePath, Source: pt.Source},
		})
	}

	if len(items) == 0 {
		return s
	}

	result := p.engine.ApplyBatch(items)
	s.PatchesApplied = result.Applied
	s.RolledBack = result.RolledBack
	s.FailureReason = result.FailureReason()
	for _, err := range result.RollbackErrors {
		s.RollbackErrors = append(s.RollbackErrors, err.Error())
	}

	return s
}

// Run executes the full pipeline: plan then apply.
func (p *Pipeline) Run(ctx context.Context, diagnostics []diag.Diagnostic) *Summary {
	return p.Apply(p.Plan(ctx, diagnostics))
}

// summarize fills the per-tier accounting from the plan.
func (p *Pipeline) summarize(plan *Plan) *Summary {
	s := &Summary{RunID: plan.RunID, ClusterCount: len(plan.Outcomes)}

	total := 0
	for _, o := range plan.Outcomes {
		total += o.Cluster.Size()
		switch o.Tier {
		case TierPattern:
			s.MatchedClusters++
		case TierGenerated:
			s.GeneratedClusters++
		default:
			s.UnresolvedClusters++
		}
	}
	s.TotalDiagnostics = total

	return s
}
