// Package deepl implements the translation oracle against a DeepL-style
// HTTP API. One word lookup fans out into several phrasing variants (case,
// line context, formality) issued concurrently; individual variant failures
// only shrink the alternative list.
package deepl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/thoga72-SAP/birkenbihllab/internal/config"
	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
	"github.com/thoga72-SAP/birkenbihllab/internal/provider"
)

// maxAlternatives caps the merged alternative list per word lookup.
const maxAlternatives = 12

// echoPattern matches oracle output that merely echoes a translation prompt
// instead of translating. Such results are dropped.
var echoPattern = regexp.MustCompile(`(?i)^(übersetze möglichst|translate)`)

// Provider calls the DeepL translate endpoint.
type Provider struct {
	baseURL    string
	apiKey     string
	sourceLang string
	targetLang string
	httpClient *http.Client
	log        *slog.Logger

	// collator is not safe for concurrent use; collMu guards it.
	collMu   sync.Mutex
	collator *collate.Collator
}

// NewProvider creates a Provider from DeepLConfig. An empty API key is
// allowed; every call then reports an empty result, and the caller falls
// back to its other candidate sources.
func NewProvider(cfg config.DeepLConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		collator:   collate.New(language.German, collate.IgnoreCase),
		log:        logger.With("adapter", "deepl"),
	}
}

// Translate performs one oracle call for the given text.
// Returns an empty result (not an error) when no API key is configured.
func (p *Provider) Translate(ctx context.Context, text string, opts provider.TranslateOptions) (*provider.TranslationResult, error) {
	if p.apiKey == "" {
		return &provider.TranslationResult{}, nil
	}

	params := url.Values{}
	params.Set("auth_key", p.apiKey)
	params.Set("text", text)
	params.Set("source_lang", p.sourceLang)
	params.Set("target_lang", p.targetLang)
	if opts.Formality != "" {
		params.Set("formality", opts.Formality)
	}
	if opts.SplitSentences {
		params.Set("split_sentences", strconv.Itoa(1))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("deepl: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepl: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepl: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("deepl: read body: %w", err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("deepl: decode json: %w", err)
	}

	result := &provider.TranslationResult{}
	if len(decoded.Translations) > 0 {
		result.Text = strings.TrimSpace(decoded.Translations[0].Text)
		for _, alt := range decoded.Translations[0].Alternatives {
			if s := strings.TrimSpace(alt.Text); s != "" {
				result.Alternatives = append(result.Alternatives, s)
			}
		}
	}
	for _, alt := range decoded.Alternatives {
		if s := strings.TrimSpace(alt.Text); s != "" {
			result.Alternatives = append(result.Alternatives, s)
		}
	}

	p.log.DebugContext(ctx, "deepl response",
		slog.Int("text_len", len(text)),
		slog.Int("alternatives", len(result.Alternatives)),
	)

	return result, nil
}

// WordAlternatives gathers candidate translations for a single word by
// querying several phrasing variants concurrently: the word as typed, its
// lowercase form, the surrounding line (reduced to a short phrase), and both
// formality hints. Variant failures are logged and treated as empty
// contributions. The merged list is deduplicated case-insensitively, sorted
// shortest-first then by German collation, and capped at maxAlternatives.
func (p *Provider) WordAlternatives(ctx context.Context, word, contextLine string) ([]string, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	type variant struct {
		text      string
		opts      provider.TranslateOptions
		fromLine  bool
	}

	variants := []variant{
		{text: word},
	}
	if lower := strings.ToLower(word); lower != word {
		variants = append(variants, variant{text: lower})
	}
	if strings.TrimSpace(contextLine) != "" {
		variants = append(variants, variant{text: contextLine, fromLine: true})
	}
	variants = append(variants,
		variant{text: word, opts: provider.TranslateOptions{Formality: provider.FormalityLess}},
		variant{text: word, opts: provider.TranslateOptions{Formality: provider.FormalityMore}},
	)

	results := make([][]string, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			res, err := p.Translate(gctx, v.text, v.opts)
			if err != nil {
				p.log.WarnContext(gctx, "deepl variant failed",
					slog.String("word", word),
					slog.String("error", err.Error()),
				)
				return nil // variant failure must not poison the other variants
			}
			var out []string
			if res.Text != "" {
				text := res.Text
				if v.fromLine {
					text = shortPhrase(text)
				}
				if text != "" {
					out = append(out, text)
				}
			}
			if !v.fromLine {
				out = append(out, res.Alternatives...)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]string, 0, maxAlternatives)
	seen := make(map[string]struct{})
	for _, part := range results {
		for _, cand := range part {
			cand = strings.TrimSpace(cand)
			if cand == "" || echoPattern.MatchString(cand) {
				continue
			}
			key := domain.NormalizeKey(cand)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, cand)
		}
	}

	p.sortShortestFirst(merged)

	if len(merged) > maxAlternatives {
		merged = merged[:maxAlternatives]
	}
	return merged, nil
}

// sortShortestFirst orders candidates by word count, then German collation.
func (p *Provider) sortShortestFirst(candidates []string) {
	p.collMu.Lock()
	defer p.collMu.Unlock()
	sort.SliceStable(candidates, func(i, j int) bool {
		wi, wj := domain.WordCount(candidates[i]), domain.WordCount(candidates[j])
		if wi != wj {
			return wi < wj
		}
		return p.collator.CompareString(candidates[i], candidates[j]) < 0
	})
}

// shortPhrase reduces a full-line translation to a plausible one-word-or-few
// candidate: the first sentence fragment of the first line, capped at three
// words.
func shortPhrase(text string) string {
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		text = text[:idx]
	}
	if idx := strings.IndexAny(text, ".;!?"); idx >= 0 {
		text = text[:idx]
	}
	fields := strings.Fields(text)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	return strings.Join(fields, " ")
}
