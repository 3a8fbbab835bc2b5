package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
	"github.com/qamus-labs/rootscan-cli/internal/logger"
	"github.com/qamus-labs/rootscan-cli/internal/ratelimit"
)

// Ensure AnnotatorService implements the interface.
var _ driving.AnnotatorService = (*AnnotatorService)(nil)

// refusalPattern matches common Arabic refusal phrasing ("sorry",
// "I cannot", apologies). A reply is only treated as a refusal when it
// is also short or near-empty; a long analysis quoting an apology is fine.
var refusalPattern = regexp.MustCompile(`آسف|عذرًا|لا\s+أ(?:ستطيع|قدر)|أ(?:عتذر|سف)|معذرة`)

// DefaultMaxRetries is how often a refused root is reprompted.
const DefaultMaxRetries = 1

// rateLimitAttempts bounds how often one model call is repeated after
// the provider reports a rate limit.
const rateLimitAttempts = 3

// DefaultRateLimitPause is the backoff, in seconds, applied when the
// provider rate-limits a call without saying how long to wait.
const DefaultRateLimitPause = 60

// AnnotatorConfig configures one bulk annotation run. All ambient state
// of the annotator (budgets, retries, dump directories) is explicit here.
type AnnotatorConfig struct {
	// TokenBudget caps the estimated prompt size.
	TokenBudget int

	// MaxVerses caps how many verses are quoted per prompt.
	MaxVerses int

	// MaxRetries is how many times a refused root is reprompted.
	MaxRetries int

	// MaxTokens is the completion size requested from the model.
	MaxTokens int

	// Temperature is the sampling temperature for the model.
	Temperature float64

	// VerseDir, when set, receives one <root>.json file per root with
	// the verses quoted in the prompt.
	VerseDir string

	// RateLimitPause is the backoff, in seconds, after the provider
	// reports a rate limit.
	RateLimitPause int

	// ReplyDir, when set, receives the raw model reply of every attempt
	// as <root>_try<n>.txt.
	ReplyDir string
}

// withDefaults fills unset config fields.
func (c AnnotatorConfig) withDefaults() AnnotatorConfig {
	if c.TokenBudget <= 0 {
		c.TokenBudget = DefaultTokenBudget
	}
	if c.MaxVerses <= 0 {
		c.MaxVerses = DefaultMaxVerses
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1024
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.RateLimitPause <= 0 {
		c.RateLimitPause = DefaultRateLimitPause
	}
	return c
}

// AnnotatorService obtains semantic analyses for batches of roots,
// strictly sequentially, pacing model calls through a rate limiter.
type AnnotatorService struct {
	locator driving.LocatorService
	llm     driven.LLMService
	store   driven.AnnotationStore
	limiter *ratelimit.Limiter
	cfg     AnnotatorConfig
}

// NewAnnotatorService creates a new annotator service.
// The limiter may be nil, in which case calls are not paced.
func NewAnnotatorService(
	locator driving.LocatorService,
	llm driven.LLMService,
	store driven.AnnotationStore,
	limiter *ratelimit.Limiter,
	cfg AnnotatorConfig,
) *AnnotatorService {
	return &AnnotatorService{
		locator: locator,
		llm:     llm,
		store:   store,
		limiter: limiter,
		cfg:     cfg.withDefaults(),
	}
}

// Annotate processes each root in turn: locate its verses, build the
// prompt, call the model (repropting once on refusal), parse the reply
// and persist the annotation. Roots already present in the store are
// skipped, which makes an interrupted run resumable.
func (s *AnnotatorService) Annotate(ctx context.Context, roots []string) (driving.AnnotateSummary, error) {
	var summary driving.AnnotateSummary

	if s.llm == nil {
		return summary, domain.ErrLLMUnavailable
	}

	processed, err := s.store.Processed(ctx)
	if err != nil {
		return summary, fmt.Errorf("loading annotation progress: %w", err)
	}

	runID := uuid.New().String()
	logger.Section("Bulk Annotation")
	logger.Info("Run %s: %d roots, model %s", runID, len(roots), s.llm.ModelName())

	for _, raw := range roots {
		root := strings.TrimSpace(raw)
		if root == "" {
			continue
		}
		if processed[root] {
			summary.SkippedDone++
			logger.Debug("Root %q already annotated, skipping", root)
			continue
		}

		annotation, refused, err := s.annotateOne(ctx, runID, root)
		if err != nil {
			return summary, fmt.Errorf("annotating %q: %w", root, err)
		}
		if refused {
			summary.Refused++
		}

		if err := s.store.Save(ctx, annotation); err != nil {
			return summary, fmt.Errorf("saving annotation for %q: %w", root, err)
		}
		processed[root] = true
		summary.Annotated++
	}

	return summary, nil
}

// annotateOne runs the locate-prompt-parse cycle for a single root.
// The refusal flag is set when even the final attempt looked refused;
// the reply is persisted regardless so nothing is thrown away.
func (s *AnnotatorService) annotateOne(ctx context.Context, runID, root string) (domain.Annotation, bool, error) {
	matches, err := s.locator.Locate(ctx, root)
	if err != nil {
		return domain.Annotation{}, false, err
	}
	verses := uniqueVerses(matches)

	if err := s.dumpVerses(root, verses); err != nil {
		return domain.Annotation{}, false, err
	}

	prompt, quoted := buildPrompt(root, verses, s.cfg.TokenBudget, s.cfg.MaxVerses)
	logger.Debug("Root %q: %d verses located, %d quoted", root, len(verses), len(quoted))

	var result *driven.GenerateResult
	refused := false
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("Reprompting %q (attempt %d/%d)", root, attempt+1, s.cfg.MaxRetries+1)
		} else {
			logger.Info("Model call for %q", root)
		}

		result, err = s.generate(ctx, root, prompt)
		if err != nil {
			return domain.Annotation{}, false, err
		}

		if err := s.dumpReply(root, attempt+1, result.Content); err != nil {
			return domain.Annotation{}, false, err
		}

		refused = looksLikeRefusal(result.Content)
		if !refused {
			break
		}
	}

	return domain.Annotation{
		Root:             root,
		RunID:            runID,
		VerseCount:       len(quoted),
		Sections:         domain.ParseAnnotationSections(result.Content),
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
		CreatedAt:        time.Now().UTC(),
	}, refused, nil
}

// generate performs one paced model call. A rate-limited call puts the
// limiter into backoff and is repeated after the pause, up to
// rateLimitAttempts tries; any other error aborts immediately.
func (s *AnnotatorService) generate(ctx context.Context, root, prompt string) (*driven.GenerateResult, error) {
	var lastErr error
	for try := 0; try < rateLimitAttempts; try++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		result, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: s.cfg.Temperature,
		})
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrRateLimited) || s.limiter == nil {
			return nil, err
		}

		lastErr = err
		s.limiter.RecordRateLimitError(s.cfg.RateLimitPause)
		logger.Warn("Rate limited on %q, backing off %ds", root, s.cfg.RateLimitPause)
	}
	return nil, lastErr
}

// Export returns every stored annotation in insertion order.
func (s *AnnotatorService) Export(ctx context.Context) ([]domain.Annotation, error) {
	return s.store.List(ctx)
}

// uniqueVerses reduces matches to one entry per verse, keeping corpus
// order. A root occurring three times in one verse is quoted once.
func uniqueVerses(matches []domain.VerseMatch) []domain.VerseMatch {
	seen := make(map[domain.VerseRef]bool)
	out := make([]domain.VerseMatch, 0, len(matches))
	for _, m := range matches {
		key := domain.VerseRef{Sura: m.Ref.Sura, Ayah: m.Ref.Ayah}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// looksLikeRefusal reports whether a reply reads as a refusal rather
// than an analysis.
func looksLikeRefusal(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if len(trimmed) < 50 && refusalPattern.MatchString(trimmed) {
		return true
	}
	if refusalPattern.MatchString(trimmed) && strings.Count(trimmed, "\n") <= 2 {
		return true
	}
	return false
}

// verseDump is the JSON shape of the per-root verse file.
type verseDump struct {
	Sura int    `json:"sura"`
	Ayah int    `json:"ayah"`
	Text string `json:"text"`
}

// dumpVerses writes the verses located for root as <VerseDir>/<root>.json.
func (s *AnnotatorService) dumpVerses(root string, verses []domain.VerseMatch) error {
	if s.cfg.VerseDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.cfg.VerseDir, 0o700); err != nil {
		return fmt.Errorf("creating verse dump directory: %w", err)
	}

	dump := make([]verseDump, len(verses))
	for i, m := range verses {
		dump[i] = verseDump{Sura: m.Verse.Sura, Ayah: m.Verse.Ayah, Text: m.Verse.Text}
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding verse dump: %w", err)
	}

	path := filepath.Join(s.cfg.VerseDir, root+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing verse dump: %w", err)
	}
	return nil
}

// dumpReply logs a raw model reply as <ReplyDir>/<root>_try<n>.txt.
func (s *AnnotatorService) dumpReply(root string, attempt int, content string) error {
	if s.cfg.ReplyDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.cfg.ReplyDir, 0o700); err != nil {
		return fmt.Errorf("creating reply log directory: %w", err)
	}
	path := filepath.Join(s.cfg.ReplyDir, fmt.Sprintf("%s_try%d.txt", root, attempt))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing reply log: %w", err)
	}
	return nil
}
