package translate

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// ErrNoSourceText indicates no locale of the value holds readable text to
// translate from.
var ErrNoSourceText = errors.New("translate: no readable source text")

// Result reports the outcome of a fill pass over a localized value or block.
// Failures are partial: locales that could not be translated stay untouched
// and are listed in Failed keyed by locale (for blocks, by field path and
// locale).
type Result struct {
	Filled  []string
	Skipped []string
	Failed  map[string]error
}

// Merge folds another result into this one, prefixing its keys with path.
func (r *Result) Merge(path string, other Result) {
	for _, locale := range other.Filled {
		r.Filled = append(r.Filled, path+"."+locale)
	}
	for _, locale := range other.Skipped {
		r.Skipped = append(r.Skipped, path+"."+locale)
	}
	for locale, err := range other.Failed {
		if r.Failed == nil {
			r.Failed = map[string]error{}
		}
		r.Failed[path+"."+locale] = err
	}
}

// Ok reports whether the pass completed without failures.
func (r Result) Ok() bool { return len(r.Failed) == 0 }

// ServiceOption configures the service at construction time.
type ServiceOption func(*Service)

// WithLocales overrides the locale set gaps are filled for.
func WithLocales(locales []string) ServiceOption {
	return func(s *Service) {
		if normalized := i18n.NormalizeLocales(locales); len(normalized) > 0 {
			s.locales = normalized
		}
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service fills locale gaps in localized values by fanning out to a
// Translator. It only ever writes locales whose current text is missing or
// unreadable; human-authored content is never overwritten.
type Service struct {
	translator interfaces.Translator
	locales    []string
	logger     interfaces.Logger
}

// NewService constructs a translation service.
func NewService(translator interfaces.Translator, opts ...ServiceOption) *Service {
	s := &Service{
		translator: translator,
		locales:    i18n.DefaultLocales(),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TranslateValue returns a copy of the value with missing or unreadable locales
// translated from the best available source. Target locales are translated
// concurrently; a failing locale is left as it was and reported in the
// result, it never aborts the others.
func (s *Service) TranslateValue(ctx context.Context, value i18n.LocalizedString, format interfaces.TranslationFormat) (i18n.LocalizedString, Result) {
	out := value.Clone()
	if out == nil {
		out = i18n.LocalizedString{}
	}

	result := Result{}
	source, sourceText, ok := s.pickSource(map[string]string(out), format)
	if !ok {
		for _, locale := range s.locales {
			if !s.needsFill(out[locale], format) {
				result.Skipped = append(result.Skipped, locale)
			}
		}
		return out, result
	}

	var targets []string
	for _, locale := range s.locales {
		if locale == source || !s.needsFill(out[locale], format) {
			result.Skipped = append(result.Skipped, locale)
			continue
		}
		targets = append(targets, locale)
	}
	if len(targets) == 0 {
		return out, result
	}

	type outcome struct {
		locale string
		text   string
		err    error
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes []outcome
	)
	for _, target := range targets {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			text, err := s.translator.Translate(ctx, interfaces.TranslateRequest{
				Text:         sourceText,
				SourceLocale: source,
				TargetLocale: target,
				Format:       format,
			})
			mu.Lock()
			outcomes = append(outcomes, outcome{locale: target, text: text, err: err})
			mu.Unlock()
		}(target)
	}
	wg.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].locale < outcomes[j].locale })
	for _, o := range outcomes {
		if o.err != nil {
			if result.Failed == nil {
				result.Failed = map[string]error{}
			}
			result.Failed[o.locale] = o.err
			s.logger.Warn("translation failed", "source", source, "target", o.locale, "error", o.err)
			continue
		}
		if !s.readable(o.text, format) {
			if result.Failed == nil {
				result.Failed = map[string]error{}
			}
			result.Failed[o.locale] = ErrNoSourceText
			continue
		}
		out = out.Set(o.locale, o.text)
		result.Filled = append(result.Filled, o.locale)
	}
	return out, result
}

// TranslateHTML is TranslateValue for HTML-bearing values.
func (s *Service) TranslateHTML(ctx context.Context, value i18n.LocalizedHTML, format interfaces.TranslationFormat) (i18n.LocalizedHTML, Result) {
	filled, result := s.TranslateValue(ctx, i18n.LocalizedString(value), format)
	return i18n.LocalizedHTML(filled), result
}

// TranslateBlock walks every localized field of a block, including nested list
// items, and fills locale gaps in each. Fields are translated concurrently;
// the input block is not mutated.
func (s *Service) TranslateBlock(ctx context.Context, block blocks.Block) (blocks.Block, Result) {
	block.Data = blocks.CloneData(block.Data)
	result := Result{}

	text := interfaces.TranslationFormatText
	html := interfaces.TranslationFormatHTML

	// Each fill owns a distinct field pointer, so the goroutines below never
	// write the same location. Results are merged in declaration order.
	type fieldFill struct {
		path   string
		run    func() Result
		result Result
	}
	var fills []*fieldFill

	fillText := func(path string, value *i18n.LocalizedString) {
		fills = append(fills, &fieldFill{path: path, run: func() Result {
			filled, r := s.TranslateValue(ctx, *value, text)
			*value = filled
			return r
		}})
	}
	fillHTML := func(path string, value *i18n.LocalizedHTML) {
		fills = append(fills, &fieldFill{path: path, run: func() Result {
			filled, r := s.TranslateHTML(ctx, *value, html)
			*value = filled
			return r
		}})
	}

	switch data := block.Data.(type) {
	case *blocks.HeroData:
		fillText("badge", &data.Badge)
		fillText("title", &data.Title)
		fillText("subtitle", &data.Subtitle)
		fillHTML("description", &data.Description)
		fillText("primary_cta.label", &data.PrimaryCTA.Label)
		fillText("secondary_cta.label", &data.SecondaryCTA.Label)
		fillText("image.alt", &data.Image.Alt)
	case *blocks.RichTextData:
		fillHTML("content", &data.Content)
	case *blocks.ImageData:
		fillText("alt", &data.Alt)
		fillText("caption", &data.Caption)
	case *blocks.ImageTextData:
		fillText("image.alt", &data.Image.Alt)
		fillHTML("content", &data.Content)
	case *blocks.GalleryData:
		for i := range data.Images {
			fillText(indexed("images", i, "alt"), &data.Images[i].Alt)
			fillText(indexed("images", i, "caption"), &data.Images[i].Caption)
		}
	case *blocks.VideoData:
		fillText("title", &data.Title)
	case *blocks.PortfolioData:
		fillText("title", &data.Title)
		fillText("subtitle", &data.Subtitle)
		for i := range data.Items {
			fillText(indexed("items", i, "title"), &data.Items[i].Title)
			fillHTML(indexed("items", i, "description"), &data.Items[i].Description)
			fillText(indexed("items", i, "link_label"), &data.Items[i].LinkLabel)
		}
	case *blocks.CTAData:
		fillText("title", &data.Title)
		fillText("description", &data.Description)
		fillText("button_label", &data.ButtonLabel)
	case *blocks.FAQData:
		fillText("title", &data.Title)
		for i := range data.Items {
			fillText(indexed("items", i, "question"), &data.Items[i].Question)
			fillHTML(indexed("items", i, "answer"), &data.Items[i].Answer)
		}
	case *blocks.ContactData:
		fillText("title", &data.Title)
		fillText("description", &data.Description)
		fillText("address", &data.Address)
	case *blocks.SocialData:
		fillText("title", &data.Title)
		for i := range data.Links {
			fillText(indexed("links", i, "label"), &data.Links[i].Label)
		}
	case *blocks.ChatData:
		fillText("title", &data.Title)
		fillText("description", &data.Description)
	}

	var wg sync.WaitGroup
	for _, fill := range fills {
		wg.Add(1)
		go func(fill *fieldFill) {
			defer wg.Done()
			fill.result = fill.run()
		}(fill)
	}
	wg.Wait()

	for _, fill := range fills {
		result.Merge(fill.path, fill.result)
	}

	return block, result
}

// TranslateBlocks fills a whole block list, translating blocks concurrently.
func (s *Service) TranslateBlocks(ctx context.Context, list []blocks.Block) ([]blocks.Block, Result) {
	out := make([]blocks.Block, len(list))
	results := make([]Result, len(list))

	var wg sync.WaitGroup
	for i := range list {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i], results[i] = s.TranslateBlock(ctx, list[i])
		}(i)
	}
	wg.Wait()

	total := Result{}
	for i, r := range results {
		total.Merge(indexed("blocks", i, string(list[i].Type)), r)
	}
	return out, total
}

// pickSource chooses the locale to translate from: the first readable locale
// in fallback order, then any readable locale in sorted order.
func (s *Service) pickSource(value map[string]string, format interfaces.TranslationFormat) (string, string, bool) {
	for _, locale := range s.locales {
		if text, ok := value[locale]; ok && s.readable(text, format) {
			return locale, text, true
		}
	}
	keys := make([]string, 0, len(value))
	for locale := range value {
		keys = append(keys, locale)
	}
	sort.Strings(keys)
	for _, locale := range keys {
		if s.readable(value[locale], format) {
			return locale, value[locale], true
		}
	}
	return "", "", false
}

func (s *Service) needsFill(text string, format interfaces.TranslationFormat) bool {
	return !s.readable(text, format)
}

func (s *Service) readable(text string, format interfaces.TranslationFormat) bool {
	if format == interfaces.TranslationFormatHTML {
		return i18n.ReadableHTML(text)
	}
	return i18n.ReadableText(text)
}

func indexed(list string, i int, field string) string {
	return list + "[" + strconv.Itoa(i) + "]." + field
}
