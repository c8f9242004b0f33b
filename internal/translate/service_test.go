package translate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/translate"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

type recordingTranslator struct {
	mu       sync.Mutex
	requests []interfaces.TranslateRequest
	fail     map[string]error
}

func (r *recordingTranslator) Translate(_ context.Context, req interfaces.TranslateRequest) (string, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	if err, ok := r.fail[req.TargetLocale]; ok {
		return "", err
	}
	return "[" + req.TargetLocale + "] " + req.Text, nil
}

func TestTranslateValueOnlyFillsGaps(t *testing.T) {
	translator := &recordingTranslator{}
	svc := translate.NewService(translator)

	value := i18n.LocalizedString{
		"en": "Hello",
		"de": "Hallo",
		"ru": "",
	}
	filled, result := svc.TranslateValue(context.Background(), value, interfaces.TranslationFormatText)

	if filled.Get("de") != "Hallo" {
		t.Fatalf("readable locale overwritten: %q", filled.Get("de"))
	}
	if filled.Get("ru") != "[ru] Hello" {
		t.Fatalf("gap not filled from en source: %q", filled.Get("ru"))
	}
	if len(result.Filled) != 1 || result.Filled[0] != "ru" {
		t.Fatalf("unexpected fill report: %+v", result)
	}
	if len(translator.requests) != 1 {
		t.Fatalf("expected exactly one upstream call got %d", len(translator.requests))
	}
	if translator.requests[0].SourceLocale != "en" {
		t.Fatalf("expected en source got %q", translator.requests[0].SourceLocale)
	}

	// Input untouched.
	if value["ru"] != "" {
		t.Fatalf("input mutated: %q", value["ru"])
	}
}

func TestTranslateValueReplacesUnreadableText(t *testing.T) {
	svc := translate.NewService(&recordingTranslator{})

	value := i18n.LocalizedString{
		"en": "Hello",
		"de": "???",
		"ru": "Ð¿Ñ€Ð¸Ð²ÐµÑ‚",
	}
	filled, result := svc.TranslateValue(context.Background(), value, interfaces.TranslationFormatText)

	if filled.Get("de") != "[de] Hello" {
		t.Fatalf("question-mark placeholder kept: %q", filled.Get("de"))
	}
	if filled.Get("ru") != "[ru] Hello" {
		t.Fatalf("mojibake kept: %q", filled.Get("ru"))
	}
	if len(result.Filled) != 2 {
		t.Fatalf("unexpected fill report: %+v", result)
	}
}

func TestTranslateValuePartialFailureKeepsOtherLocales(t *testing.T) {
	upstreamErr := errors.New("boom")
	translator := &recordingTranslator{fail: map[string]error{"de": upstreamErr}}
	svc := translate.NewService(translator)

	value := i18n.LocalizedString{"en": "Hello", "de": "", "ru": ""}
	filled, result := svc.TranslateValue(context.Background(), value, interfaces.TranslationFormatText)

	if filled.Get("ru") != "[ru] Hello" {
		t.Fatalf("healthy locale not filled: %q", filled.Get("ru"))
	}
	if filled["de"] != "" {
		t.Fatalf("failed locale must stay empty: %q", filled["de"])
	}
	if !errors.Is(result.Failed["de"], upstreamErr) {
		t.Fatalf("failure not reported: %+v", result.Failed)
	}
	if result.Ok() {
		t.Fatal("result must not report success")
	}
}

func TestTranslateValueNoReadableSource(t *testing.T) {
	translator := &recordingTranslator{}
	svc := translate.NewService(translator)

	filled, result := svc.TranslateValue(context.Background(), i18n.LocalizedString{"en": "", "de": "???"}, interfaces.TranslationFormatText)
	if len(translator.requests) != 0 {
		t.Fatalf("no source text, expected no upstream calls, got %d", len(translator.requests))
	}
	if len(result.Filled) != 0 {
		t.Fatalf("nothing should be filled: %+v", result)
	}
	if filled["de"] != "???" {
		t.Fatalf("value should be unchanged: %q", filled["de"])
	}
}

func TestTranslateBlockWalksNestedFields(t *testing.T) {
	translator := &recordingTranslator{}
	svc := translate.NewService(translator)
	factory := blocks.NewFactory(i18n.DefaultLocales())

	block := factory.New(blocks.TypeFAQ)
	data := block.Data.(*blocks.FAQData)
	data.Title = data.Title.Set("en", "Questions")
	item := factory.NewFAQItem()
	item.Question = item.Question.Set("en", "Why?")
	item.Answer = item.Answer.Set("en", "<p>Because.</p>")
	data.Items = append(data.Items, item)

	filled, result := svc.TranslateBlock(context.Background(), block)
	filledData := filled.Data.(*blocks.FAQData)

	if filledData.Title.Get("de") != "[de] Questions" {
		t.Fatalf("title gap not filled: %q", filledData.Title.Get("de"))
	}
	if filledData.Items[0].Question.Get("ru") != "[ru] Why?" {
		t.Fatalf("nested question not filled: %q", filledData.Items[0].Question.Get("ru"))
	}
	if filledData.Items[0].Answer.Get("de") != "[de] <p>Because.</p>" {
		t.Fatalf("nested answer not filled: %q", filledData.Items[0].Answer.Get("de"))
	}
	if !result.Ok() {
		t.Fatalf("unexpected failures: %+v", result.Failed)
	}

	// HTML fields go upstream marked as html.
	sawHTML := false
	for _, req := range translator.requests {
		if req.Format == interfaces.TranslationFormatHTML {
			sawHTML = true
		}
	}
	if !sawHTML {
		t.Fatal("expected html-format request for answer field")
	}

	// Source block untouched.
	if data.Title["de"] != "" {
		t.Fatalf("input block mutated: %q", data.Title["de"])
	}
}

func TestTranslateBlockFillsFieldsConcurrently(t *testing.T) {
	var (
		mu       sync.Mutex
		once     sync.Once
		inFlight int
		peak     int
	)
	release := make(chan struct{})
	translator := interfaces.TranslatorFunc(func(_ context.Context, req interfaces.TranslateRequest) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		if inFlight >= 2 {
			once.Do(func() { close(release) })
		}
		mu.Unlock()

		select {
		case <-release:
		case <-time.After(5 * time.Second):
			return "", errors.New("field translations did not overlap")
		}

		mu.Lock()
		inFlight--
		mu.Unlock()
		return "[" + req.TargetLocale + "] " + req.Text, nil
	})

	svc := translate.NewService(translator, translate.WithLocales([]string{"en", "de"}))
	factory := blocks.NewFactory([]string{"en", "de"})

	block := factory.New(blocks.TypeChat)
	data := block.Data.(*blocks.ChatData)
	data.Title = data.Title.Set("en", "Chat")
	data.Description = data.Description.Set("en", "Say hello")

	filled, result := svc.TranslateBlock(context.Background(), block)
	if !result.Ok() {
		t.Fatalf("unexpected failures: %+v", result.Failed)
	}
	filledData := filled.Data.(*blocks.ChatData)
	if filledData.Title.Get("de") != "[de] Chat" {
		t.Fatalf("title gap not filled: %q", filledData.Title.Get("de"))
	}
	if filledData.Description.Get("de") != "[de] Say hello" {
		t.Fatalf("description gap not filled: %q", filledData.Description.Get("de"))
	}

	mu.Lock()
	defer mu.Unlock()
	if peak < 2 {
		t.Fatalf("expected overlapping field translations got peak %d", peak)
	}
}

func TestTranslateBlocksTranslatesEveryBlock(t *testing.T) {
	svc := translate.NewService(&recordingTranslator{})
	factory := blocks.NewFactory(i18n.DefaultLocales())

	cta := factory.New(blocks.TypeCTA)
	ctaData := cta.Data.(*blocks.CTAData)
	ctaData.Title = ctaData.Title.Set("en", "Work with me")

	video := factory.New(blocks.TypeVideo)
	videoData := video.Data.(*blocks.VideoData)
	videoData.Title = videoData.Title.Set("en", "Showreel")

	filled, result := svc.TranslateBlocks(context.Background(), []blocks.Block{cta, video})
	if len(filled) != 2 {
		t.Fatalf("expected 2 blocks got %d", len(filled))
	}
	if got := filled[0].Data.(*blocks.CTAData).Title.Get("ru"); got != "[ru] Work with me" {
		t.Fatalf("cta not filled: %q", got)
	}
	if got := filled[1].Data.(*blocks.VideoData).Title.Get("de"); got != "[de] Showreel" {
		t.Fatalf("video not filled: %q", got)
	}
	if !result.Ok() {
		t.Fatalf("unexpected failures: %+v", result.Failed)
	}
}

func TestHTTPTranslatorRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translatedText":"Hallo"}`))
	}))
	defer server.Close()

	translator := translate.NewHTTPTranslator(server.URL)
	got, err := translator.Translate(context.Background(), interfaces.TranslateRequest{
		Text:         "Hello",
		SourceLocale: "en",
		TargetLocale: "de",
		Format:       interfaces.TranslationFormatText,
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Hallo" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestHTTPTranslatorSurfacesUpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	translator := translate.NewHTTPTranslator(server.URL)
	_, err := translator.Translate(context.Background(), interfaces.TranslateRequest{
		Text:         "Hello",
		TargetLocale: "de",
	})
	var upstream *translate.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError got %v", err)
	}
	if upstream.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", upstream.Status)
	}
}

func TestHTTPTranslatorWithoutEndpoint(t *testing.T) {
	translator := translate.NewHTTPTranslator("")
	_, err := translator.Translate(context.Background(), interfaces.TranslateRequest{Text: "x", TargetLocale: "de"})
	if !errors.Is(err, interfaces.ErrTranslatorUnavailable) {
		t.Fatalf("expected ErrTranslatorUnavailable got %v", err)
	}
}
