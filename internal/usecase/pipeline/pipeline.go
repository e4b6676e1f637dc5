// Package pipeline chains the three generation stages in strict order:
// Intake → Risk → Review. A failure in any stage stops the run immediately;
// no partial output is treated as success. Artifacts persisted by earlier
// successful stages stay on disk: the orchestrator performs no rollback.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/application/port/output"
	infraconfig "github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/config"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/journal"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/parser"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/repository/prompt"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/pkg/runpath"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/intake"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/review"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/risk"
)

// Artifact file names under the run's output root.
const (
	IntakeArtifact  = "intake_output.json"
	RiskArtifact    = "risk_output.json"
	ReviewArtifact  = "test_plan.md"
	JournalArtifact = "journal.ndjson"
)

// Result reports a fully successful run.
type Result struct {
	RunID        string
	OutputRoot   string
	IntakePath   string
	RiskPath     string
	ReviewPath   string
	Requirements int
	TestCases    int
}

// Pipeline drives the three stages. State passed between stages is owned by
// the run and never mutated after creation; each stage's output is persisted
// before the next stage begins.
type Pipeline struct {
	gateway   output.AgentGateway
	store     output.ArtifactStore
	prompts   *prompt.Repository
	fs        afero.Fs
	outputDir string
	log       hclog.Logger
}

// New creates a pipeline over the given collaborators.
func New(gateway output.AgentGateway, store output.ArtifactStore, prompts *prompt.Repository, fs afero.Fs, outputDir string, log hclog.Logger) *Pipeline {
	return &Pipeline{
		gateway:   gateway,
		store:     store,
		prompts:   prompts,
		fs:        fs,
		outputDir: outputDir,
		log:       log,
	}
}

// Run executes the full sequence against one PRD. The first failure wins and
// halts the run; the returned error carries the stage name and cause.
func (p *Pipeline) Run(ctx context.Context, prdPath string) (*Result, error) {
	prdContent, err := afero.ReadFile(p.fs, prdPath)
	if err != nil {
		return nil, &infraconfig.ConfigError{Reason: fmt.Sprintf("PRD file not found: %s", prdPath)}
	}

	stem := runpath.Stem(prdPath)
	root := filepath.Join(p.outputDir, stem)
	jw := journal.NewWriter(p.fs, filepath.Join(root, JournalArtifact))

	p.log.Info("pipeline starting", "input", prdPath, "output", root, "run_id", jw.RunID())

	intakeOut, err := p.runIntake(ctx, jw, string(prdContent), filepath.Join(root, IntakeArtifact))
	if err != nil {
		return nil, err
	}

	riskOut, err := p.runRisk(ctx, jw, intakeOut, filepath.Join(root, RiskArtifact))
	if err != nil {
		return nil, err
	}

	reviewPath := filepath.Join(root, ReviewArtifact)
	if err := p.runReview(ctx, jw, intakeOut, riskOut, stem, reviewPath); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:        jw.RunID(),
		OutputRoot:   root,
		IntakePath:   filepath.Join(root, IntakeArtifact),
		RiskPath:     filepath.Join(root, RiskArtifact),
		ReviewPath:   reviewPath,
		Requirements: countRequirements(intakeOut),
		TestCases:    countTestCases(riskOut),
	}
	p.log.Info("pipeline complete", "test_plan", reviewPath)
	return result, nil
}

// runIntake turns the PRD into structured requirements.
func (p *Pipeline) runIntake(ctx context.Context, jw *journal.Writer, prdContent, outPath string) (map[string]interface{}, error) {
	start := time.Now()
	p.log.Info("intake: loading prompt")

	systemPrompt, err := p.prompts.Load(intake.Stage)
	if err != nil {
		return nil, p.fail(jw, intake.Stage, start, err)
	}

	p.log.Info("intake: calling model")
	userContent := fmt.Sprintf("Here is the PRD to parse:\n\n%s", prdContent)
	raw, err := p.gateway.Complete(ctx, systemPrompt, userContent)
	if err != nil {
		return nil, p.fail(jw, intake.Stage, start, err)
	}

	decoded, err := parser.Parse(raw)
	if err != nil {
		return nil, p.fail(jw, intake.Stage, start, err)
	}
	if err := intake.Validate(decoded); err != nil {
		return nil, p.fail(jw, intake.Stage, start, err)
	}
	data := decoded.(map[string]interface{})

	if err := p.store.SaveJSON(ctx, outPath, data); err != nil {
		return nil, p.fail(jw, intake.Stage, start, fmt.Errorf("save artifact: %w", err))
	}
	p.ok(jw, intake.Stage, start, outPath)

	p.log.Info("intake complete", "requirements", countRequirements(data))
	return data, nil
}

// runRisk assesses each requirement and generates test cases.
func (p *Pipeline) runRisk(ctx context.Context, jw *journal.Writer, intakeOut map[string]interface{}, outPath string) ([]interface{}, error) {
	start := time.Now()
	p.log.Info("risk: loading prompt")

	systemPrompt, err := p.prompts.Load(risk.Stage)
	if err != nil {
		return nil, p.fail(jw, risk.Stage, start, err)
	}

	userContent := fmt.Sprintf(
		"Here are the inputs to process:\n\nPROJECT CONTEXT:\n%s\n\nREQUIREMENTS:\n%s",
		indentJSON(intakeOut["project_context"]),
		indentJSON(intakeOut["requirements"]),
	)

	p.log.Info("risk: calling model")
	raw, err := p.gateway.Complete(ctx, systemPrompt, userContent)
	if err != nil {
		return nil, p.fail(jw, risk.Stage, start, err)
	}

	decoded, err := parser.Parse(raw)
	if err != nil {
		return nil, p.fail(jw, risk.Stage, start, err)
	}
	if err := risk.Validate(decoded); err != nil {
		return nil, p.fail(jw, risk.Stage, start, err)
	}
	entries := decoded.([]interface{})

	if err := p.store.SaveJSON(ctx, outPath, entries); err != nil {
		return nil, p.fail(jw, risk.Stage, start, fmt.Errorf("save artifact: %w", err))
	}
	p.ok(jw, risk.Stage, start, outPath)

	p.log.Info("risk complete", "entries", len(entries), "test_cases", countTestCases(entries))
	return entries, nil
}

// runReview merges both prior outputs into the final test plan document.
func (p *Pipeline) runReview(ctx context.Context, jw *journal.Writer, intakeOut map[string]interface{}, riskOut []interface{}, stem, outPath string) error {
	start := time.Now()
	p.log.Info("review: loading prompt")

	systemPrompt, err := p.prompts.Load(review.Stage)
	if err != nil {
		return p.fail(jw, review.Stage, start, err)
	}

	userContent := fmt.Sprintf(
		"Here are the two inputs to render:\n\nINTAKE OUTPUT:\n%s\n\nRISK OUTPUT:\n%s\n\nArtifact ID: qraft-v1-%s\nPRD Source: %s.md\nGenerated: %s",
		indentJSON(intakeOut),
		indentJSON(riskOut),
		stem,
		stem,
		time.Now().Format("2006-01-02"),
	)

	p.log.Info("review: calling model")
	raw, err := p.gateway.Complete(ctx, systemPrompt, userContent)
	if err != nil {
		return p.fail(jw, review.Stage, start, err)
	}

	// Review output is raw text: no parse step, only the section check.
	content := mojibakeReplacer.Replace(strings.TrimSpace(raw))
	if err := review.Validate(content); err != nil {
		return p.fail(jw, review.Stage, start, err)
	}

	if err := p.store.SaveText(ctx, outPath, content); err != nil {
		return p.fail(jw, review.Stage, start, fmt.Errorf("save artifact: %w", err))
	}
	p.ok(jw, review.Stage, start, outPath)

	p.log.Info("review complete", "test_plan", outPath)
	return nil
}

func (p *Pipeline) ok(jw *journal.Writer, stage string, start time.Time, artifact string) {
	if err := jw.Record(stage, "OK", time.Since(start), "", artifact); err != nil {
		p.log.Warn("journal write failed", "stage", stage, "error", err)
	}
}

// fail journals the stage failure and wraps the cause with the stage name.
// The typed cause stays reachable through errors.As.
func (p *Pipeline) fail(jw *journal.Writer, stage string, start time.Time, err error) error {
	if jerr := jw.Record(stage, "FAILED", time.Since(start), err.Error(), ""); jerr != nil {
		p.log.Warn("journal write failed", "stage", stage, "error", jerr)
	}
	return fmt.Errorf("%s stage: %w", stage, err)
}

// indentJSON renders a decoded value the way it is embedded into stage user
// messages: two-space indented, "null" for absent values.
func indentJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(data)
}

func countRequirements(intakeOut map[string]interface{}) int {
	reqs, _ := intakeOut["requirements"].([]interface{})
	return len(reqs)
}

func countTestCases(riskOut []interface{}) int {
	total := 0
	for _, item := range riskOut {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		tcs, _ := entry["test_cases"].([]interface{})
		total += len(tcs)
	}
	return total
}

// mojibakeReplacer repairs the common UTF-8-as-Windows-1252 punctuation
// artifacts that occasionally show up in generated markdown.
var mojibakeReplacer = strings.NewReplacer(
	"â", "—", // em dash
	"â", "–", // en dash
	"â", "’", // right single quote
	"â", "“", // left double quote
	"â", "”", // right double quote
)
