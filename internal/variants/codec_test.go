package variants

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-sections/internal/domain"
)

func canonicalPayloads() map[domain.SectionType]map[string]any {
	return map[domain.SectionType]map[string]any{
		domain.SectionTriple: {
			"items": []any{
				map[string]any{"title": "Plan", "content": "<p>Scope</p>"},
				map[string]any{"title": "Build", "content": ""},
			},
		},
		domain.SectionTextImage: {
			"title":      "About",
			"content":    "<p>Team</p>",
			"imageUrl":   "/img/team.jpg",
			"imageAlt":   "Team",
			"imageAlign": "right",
			"buttons": []any{
				map[string]any{"text": "Contact", "link": "/kontakt", "linkType": "internal", "style": "secondary"},
			},
		},
		domain.SectionBlackCTA: {
			"title":    "Start now",
			"content":  "",
			"imageUrl": "",
			"buttons": []any{
				map[string]any{"text": "Go", "link": "https://example.com", "style": "primary"},
			},
		},
		domain.SectionNumbers: {
			"stats": []any{
				map[string]any{"number": "120+", "title": "Clients"},
			},
		},
		domain.SectionAccordion: {
			"cards": []any{
				map[string]any{"title": "Q", "content": "A", "linkUrl": "", "linkText": "", "style": "primary"},
			},
		},
	}
}

func TestEncodeDecodeRoundTripOnCanonicalPayloads(t *testing.T) {
	for sectionType, payload := range canonicalPayloads() {
		fields, err := Decode(sectionType, payload)
		if err != nil {
			t.Fatalf("%s: decode: %v", sectionType, err)
		}
		encoded, err := Encode(fields)
		if err != nil {
			t.Fatalf("%s: encode: %v", sectionType, err)
		}
		if !reflect.DeepEqual(encoded, payload) {
			t.Fatalf("%s: expected %#v, got %#v", sectionType, payload, encoded)
		}
	}
}

func TestDecodeEncodeRoundTripOnTypedFields(t *testing.T) {
	cases := []Fields{
		&Triple{Items: []TripleItem{{Title: "a", Content: "b"}, {}, {}}},
		&TextImage{Title: "t", ImageAlign: AlignLeft, Buttons: []LinkButton{{Text: "x", Link: "/x", LinkType: LinkExternal, Style: StylePrimary}}},
		&BlackCTA{Title: "cta", Buttons: []Button{}},
		&Numbers{Stats: []Stat{{Number: "7", Title: "days"}}},
		&Accordion{Cards: []Card{{Title: "c", Style: StyleSecondary}}},
	}
	for _, original := range cases {
		encoded, err := Encode(original)
		if err != nil {
			t.Fatalf("%s: encode: %v", original.Type(), err)
		}
		decoded, err := Decode(original.Type(), encoded)
		if err != nil {
			t.Fatalf("%s: decode: %v", original.Type(), err)
		}
		if !reflect.DeepEqual(decoded, original) {
			t.Fatalf("%s: expected %#v, got %#v", original.Type(), original, decoded)
		}
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := Decode("carousel", map[string]any{})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Issues[0].Location != "#/type" {
		t.Fatalf("expected #/type location, got %q", vErr.Issues[0].Location)
	}
}

func TestDecodeRejectsForeignKeys(t *testing.T) {
	_, err := Decode(domain.SectionNumbers, map[string]any{
		"stats": []any{},
		"items": []any{},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for foreign key, got %v", err)
	}
}

func TestDecodeRejectsWrongElementShape(t *testing.T) {
	_, err := Decode(domain.SectionTriple, map[string]any{
		"items": []any{"not an object"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = Decode(domain.SectionNumbers, map[string]any{
		"stats": []any{map[string]any{"number": 12, "title": "n"}},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected numeric stat number to be rejected, got %v", err)
	}
}

func TestDecodeRejectsNonListWhereListRequired(t *testing.T) {
	_, err := Decode(domain.SectionTextImage, map[string]any{"buttons": map[string]any{"text": "x"}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeRejectsIllegalEnumValues(t *testing.T) {
	_, err := Decode(domain.SectionTextImage, map[string]any{"imageAlign": "center"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected imageAlign rejection, got %v", err)
	}
	_, err = Decode(domain.SectionBlackCTA, map[string]any{
		"title":   "x",
		"buttons": []any{map[string]any{"style": "tertiary"}},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected style rejection, got %v", err)
	}
}

func TestDecodeRejectsExplicitEmptyEnums(t *testing.T) {
	cases := map[string]struct {
		sectionType domain.SectionType
		payload     map[string]any
	}{
		"imageAlign": {domain.SectionTextImage, map[string]any{"imageAlign": ""}},
		"linkType": {domain.SectionTextImage, map[string]any{
			"buttons": []any{map[string]any{"text": "More", "linkType": ""}},
		}},
		"text_image style": {domain.SectionTextImage, map[string]any{
			"buttons": []any{map[string]any{"text": "More", "style": ""}},
		}},
		"black_cta style": {domain.SectionBlackCTA, map[string]any{
			"title":   "x",
			"buttons": []any{map[string]any{"text": "Go", "style": ""}},
		}},
		"card style": {domain.SectionAccordion, map[string]any{
			"cards": []any{map[string]any{"title": "Q", "style": ""}},
		}},
	}
	for name, tc := range cases {
		if _, err := Decode(tc.sectionType, tc.payload); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected empty value rejection, got %v", name, err)
		}
	}
}

func TestDecodeAppliesDefaultsForAbsentEnums(t *testing.T) {
	fields, err := Decode(domain.SectionTextImage, map[string]any{
		"buttons": []any{map[string]any{"text": "More"}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	textImage := fields.(*TextImage)
	if textImage.ImageAlign != AlignLeft {
		t.Fatalf("expected imageAlign left, got %q", textImage.ImageAlign)
	}
	button := textImage.Buttons[0]
	if button.LinkType != LinkInternal || button.Style != StylePrimary {
		t.Fatalf("expected defaulted button, got %+v", button)
	}
}

func TestDecodeBlackCTARequiresTitle(t *testing.T) {
	_, err := Decode(domain.SectionBlackCTA, map[string]any{"content": "x"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Issues[0].Location != "#/title" {
		t.Fatalf("expected #/title, got %+v", vErr.Issues)
	}
}

func TestDefaults(t *testing.T) {
	triple, err := Defaults(domain.SectionTriple)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if got := len(triple.(*Triple).Items); got != 3 {
		t.Fatalf("expected 3 triple items, got %d", got)
	}
	cta, _ := Defaults(domain.SectionBlackCTA)
	if cta.(*BlackCTA).Title != DefaultCTATitle {
		t.Fatalf("expected default cta title")
	}
	if _, err := Defaults("unknown"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown type")
	}
}

func TestMergeReplacesTopLevelKeys(t *testing.T) {
	current := canonicalPayloads()[domain.SectionTextImage]
	fields, err := Merge(domain.SectionTextImage, current, map[string]any{"title": "Renamed"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	textImage := fields.(*TextImage)
	if textImage.Title != "Renamed" || textImage.ImageAlign != AlignRight || len(textImage.Buttons) != 1 {
		t.Fatalf("unexpected merge result %+v", textImage)
	}
	if current["title"] != "About" {
		t.Fatalf("merge mutated current payload")
	}
	if _, err := Merge(domain.SectionTextImage, current, map[string]any{"stats": []any{}}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected foreign partial key to be rejected, got %v", err)
	}
}

func TestInitialOverlaysDefaults(t *testing.T) {
	fields, err := Initial(domain.SectionBlackCTA, map[string]any{"content": "Hi"})
	if err != nil {
		t.Fatalf("initial: %v", err)
	}
	cta := fields.(*BlackCTA)
	if cta.Title != DefaultCTATitle || cta.Content != "Hi" {
		t.Fatalf("unexpected initial fields %+v", cta)
	}
}

func TestSanitizeStripsScripts(t *testing.T) {
	fields := Sanitize(&TextImage{Content: `<p>Hello</p><script>alert(1)</script>`})
	content := fields.(*TextImage).Content
	if strings.Contains(content, "script") {
		t.Fatalf("expected script to be stripped, got %q", content)
	}
	if !strings.Contains(content, "<p>Hello</p>") {
		t.Fatalf("expected paragraph to survive, got %q", content)
	}
}

func TestCardsRoundTrip(t *testing.T) {
	cards, err := DecodeCards([]any{
		map[string]any{"title": "One"},
		map[string]any{"title": "Two", "style": "secondary"},
	})
	if err != nil {
		t.Fatalf("decode cards: %v", err)
	}
	if cards[0].Style != StylePrimary || cards[1].Style != StyleSecondary {
		t.Fatalf("unexpected card styles %+v", cards)
	}
	encoded, err := EncodeCards(cards)
	if err != nil {
		t.Fatalf("encode cards: %v", err)
	}
	again, err := DecodeCards(encoded)
	if err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if !reflect.DeepEqual(again, cards) {
		t.Fatalf("expected %+v, got %+v", cards, again)
	}
	if _, err := DecodeCards([]any{map[string]any{"title": "x", "icon": "star"}}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected unknown card key to be rejected")
	}
}
