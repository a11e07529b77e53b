package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifToolURI   = "https://github.com/yaklabco/gotslint"
)

// SARIF 2.1.0 document types. Only the properties gotslint fills are
// modeled.
type (
	SARIFOutput struct {
		Schema  string     `json:"$schema"`
		Version string     `json:"version"`
		Runs    []SARIFRun `json:"runs"`
	}

	SARIFRun struct {
		Tool              SARIFTool              `json:"tool"`
		AutomationDetails SARIFAutomationDetails `json:"automationDetails"`
		Artifacts         []SARIFArtifact        `json:"artifacts,omitempty"`
		Results           []SARIFResult          `json:"results"`
	}

	SARIFAutomationDetails struct {
		ID   string `json:"id"`
		GUID string `json:"guid"`
	}

	SARIFTool struct {
		Driver SARIFDriver `json:"driver"`
	}

	SARIFDriver struct {
		Name           string      `json:"name"`
		Version        string      `json:"version,omitempty"`
		InformationURI string      `json:"informationUri"`
		Rules          []SARIFRule `json:"rules"`
	}

	SARIFRule struct {
		ID               string       `json:"id"`
		ShortDescription SARIFMessage `json:"shortDescription"`
		DefaultConfig    *SARIFLevel  `json:"defaultConfiguration,omitempty"`
	}

	SARIFLevel struct {
		Level string `json:"level"`
	}

	SARIFArtifact struct {
		Location SARIFArtifactLocation `json:"location"`
	}

	SARIFResult struct {
		RuleID    string          `json:"ruleId"`
		RuleIndex int             `json:"ruleIndex"`
		Level     string          `json:"level"`
		Message   SARIFMessage    `json:"message"`
		Locations []SARIFLocation `json:"locations"`
		Fixes     []SARIFFix      `json:"fixes,omitempty"`
	}

	SARIFMessage struct {
		Text string `json:"text"`
	}

	SARIFLocation struct {
		PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	}

	SARIFPhysicalLocation struct {
		ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
		Region           SARIFRegion           `json:"region"`
	}

	SARIFArtifactLocation struct {
		URI   string `json:"uri"`
		Index *int   `json:"index,omitempty"`
	}

	// SARIFRegion is addressed either by 1-based line and column or by
	// 0-based byte offset and length.
	SARIFRegion struct {
		StartLine   int  `json:"startLine,omitempty"`
		StartColumn int  `json:"startColumn,omitempty"`
		EndLine     int  `json:"endLine,omitempty"`
		EndColumn   int  `json:"endColumn,omitempty"`
		CharOffset  *int `json:"charOffset,omitempty"`
		CharLength  *int `json:"charLength,omitempty"`
	}

	SARIFFix struct {
		Description     SARIFMessage          `json:"description"`
		ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
	}

	SARIFArtifactChange struct {
		ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
		Replacements     []SARIFReplacement    `json:"replacements"`
	}

	SARIFReplacement struct {
		DeletedRegion   SARIFRegion   `json:"deletedRegion"`
		InsertedContent *SARIFMessage `json:"insertedContent,omitempty"`
	}
)

// SARIFReporter writes one SARIF run for code-scanning services.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	b := newSARIFBuilder(r.opts)
	if result != nil {
		for _, file := range result.Files {
			for _, entry := range fileEntries(r.opts, file) {
				b.add(entry)
			}
		}
	}

	doc := SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{b.run}}
	enc := json.NewEncoder(r.out)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(b.run.Results), nil
}

// sarifBuilder accumulates a run, numbering rules and artifacts in the
// order they are first seen.
type sarifBuilder struct {
	opts      Options
	run       SARIFRun
	rules     map[string]int
	artifacts map[string]int
}

func newSARIFBuilder(opts Options) *sarifBuilder {
	return &sarifBuilder{
		opts: opts,
		run: SARIFRun{
			Tool: SARIFTool{Driver: SARIFDriver{
				Name:           "gotslint",
				Version:        opts.Version,
				InformationURI: sarifToolURI,
				Rules:          []SARIFRule{},
			}},
			AutomationDetails: SARIFAutomationDetails{ID: "gotslint/lint", GUID: uuid.NewString()},
			Results:           []SARIFResult{},
		},
		rules:     make(map[string]int),
		artifacts: make(map[string]int),
	}
}

func (b *sarifBuilder) add(entry analysis.FailureEntry) {
	level := sarifLevel(config.Severity(entry.Severity))
	location := b.artifact(entry.FilePath)

	res := SARIFResult{
		RuleID:    entry.RuleName,
		RuleIndex: b.rule(entry, level),
		Level:     level,
		Message:   SARIFMessage{Text: entry.Message},
		Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: location,
			Region: SARIFRegion{
				StartLine:   entry.StartLine,
				StartColumn: entry.StartColumn,
				EndLine:     entry.EndLine,
				EndColumn:   entry.EndColumn,
			},
		}}},
	}
	if entry.Fixable {
		res.Fixes = []SARIFFix{sarifFix(entry, location)}
	}
	b.run.Results = append(b.run.Results, res)
}

// rule returns the driver index of the entry's rule, registering it on
// first use. Its description falls back to the first message seen.
func (b *sarifBuilder) rule(entry analysis.FailureEntry, level string) int {
	if idx, ok := b.rules[entry.RuleName]; ok {
		return idx
	}
	description := b.opts.RuleDescriptions[entry.RuleName]
	if description == "" {
		description = entry.Message
	}
	idx := len(b.run.Tool.Driver.Rules)
	b.rules[entry.RuleName] = idx
	b.run.Tool.Driver.Rules = append(b.run.Tool.Driver.Rules, SARIFRule{
		ID:               entry.RuleName,
		ShortDescription: SARIFMessage{Text: description},
		DefaultConfig:    &SARIFLevel{Level: level},
	})
	return idx
}

func (b *sarifBuilder) artifact(uri string) SARIFArtifactLocation {
	idx, ok := b.artifacts[uri]
	if !ok {
		idx = len(b.run.Artifacts)
		b.artifacts[uri] = idx
		b.run.Artifacts = append(b.run.Artifacts, SARIFArtifact{Location: SARIFArtifactLocation{URI: uri}})
	}
	return SARIFArtifactLocation{URI: uri, Index: &idx}
}

func sarifFix(entry analysis.FailureEntry, location SARIFArtifactLocation) SARIFFix {
	change := SARIFArtifactChange{ArtifactLocation: location}
	for _, rep := range entry.Fix {
		offset, length := rep.Start, rep.Length
		change.Replacements = append(change.Replacements, SARIFReplacement{
			DeletedRegion:   SARIFRegion{CharOffset: &offset, CharLength: &length},
			InsertedContent: &SARIFMessage{Text: rep.Text},
		})
	}
	return SARIFFix{
		Description:     SARIFMessage{Text: "Fix " + entry.RuleName},
		ArtifactChanges: []SARIFArtifactChange{change},
	}
}

func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	}
	return "note"
}
