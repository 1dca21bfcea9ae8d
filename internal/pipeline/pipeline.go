// Package pipeline turns reference solution files into challenges.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/classify"
	"github.com/abhisek/codearena/internal/describe"
	"github.com/abhisek/codearena/internal/evaluator"
	"github.com/abhisek/codearena/internal/judge"
	"github.com/abhisek/codearena/internal/source"
)

// Extensions lists the file extensions treated as reference solutions.
var Extensions = []string{".star", ".py"}

// Parser derives challenges from reference files.
type Parser struct {
	Dir       string
	Evaluator evaluator.Evaluator
	Registry  *judge.Registry
	Strategy  judge.Strategy
	Logger    *slog.Logger
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// ID derives the challenge identifier from a file path: the base name,
// lowercased, without its extension.
func ID(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ParseFile builds one challenge from the reference file at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*challenge.Challenge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	src := string(data)

	facts, err := source.Parse(filepath.Base(path), src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	id := ID(path)
	category, difficulty := classify.Classify(id, src, facts)
	description, hints := describe.Describe(facts, src)

	ch := &challenge.Challenge{
		ID:          id,
		Title:       describe.Title(facts.Name),
		Description: description,
		Category:    category,
		Difficulty:  difficulty,
		Hints:       hints,
		Checker: judge.MakeChecker(p.Evaluator, p.Registry, id, facts, src,
			judge.WithStrategy(p.Strategy), judge.WithLogger(p.logger())),
		ExpectedAnswer: source.ExtractFunction(src, facts.Name),
		Source:         path,
		Facts:          &facts,
		SampleCases:    source.ScanSampleCases(src),
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	return ch, nil
}

// ParseDir parses every reference file in p.Dir, in name order. Files that
// fail to parse are logged and skipped. A missing directory yields no
// challenges.
func (p *Parser) ParseDir(ctx context.Context) ([]*challenge.Challenge, error) {
	log := p.logger()

	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("problems directory not found", "dir", p.Dir)
			return nil, nil
		}
		return nil, fmt.Errorf("read problems dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "__") || !hasExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var out []*challenge.Challenge
	for _, name := range names {
		path := filepath.Join(p.Dir, name)
		ch, err := p.ParseFile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			log.Warn("failed to parse challenge", "file", path, "error", err)
			continue
		}
		log.Debug("parsed challenge", "id", ch.ID, "category", ch.Category, "difficulty", ch.Difficulty.String())
		out = append(out, ch)
	}
	return out, nil
}

func hasExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
