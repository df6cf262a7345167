package variants

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sections/internal/domain"
)

// Enumerated values accepted by the variant field bags.
const (
	StylePrimary   = "primary"
	StyleSecondary = "secondary"

	LinkInternal = "internal"
	LinkExternal = "external"

	AlignLeft  = "left"
	AlignRight = "right"

	DefaultCTATitle = "Call to action"
)

// Fields is the typed field bag of one section variant.
type Fields interface {
	Type() domain.SectionType
	applyDefaults()
	normalize()
	Validate() error
}

// Triple is the three column feature block.
type Triple struct {
	Items []TripleItem `json:"items"`
}

type TripleItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (*Triple) Type() domain.SectionType { return domain.SectionTriple }

func (t *Triple) applyDefaults() {}

func (t *Triple) normalize() {
	if t.Items == nil {
		t.Items = []TripleItem{}
	}
}

func (t *Triple) Validate() error { return nil }

// TextImage pairs rich text with an aligned image and link buttons.
type TextImage struct {
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	ImageURL   string       `json:"imageUrl"`
	ImageAlt   string       `json:"imageAlt"`
	ImageAlign string       `json:"imageAlign"`
	Buttons    []LinkButton `json:"buttons"`
}

// LinkButton is a text_image call to action.
type LinkButton struct {
	Text     string `json:"text"`
	Link     string `json:"link"`
	LinkType string `json:"linkType"`
	Style    string `json:"style"`
}

func (b LinkButton) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.LinkType, validation.In(LinkInternal, LinkExternal)),
		validation.Field(&b.Style, validation.In(StylePrimary, StyleSecondary)),
	)
}

func (*TextImage) Type() domain.SectionType { return domain.SectionTextImage }

func (t *TextImage) applyDefaults() {
	if t.ImageAlign == "" {
		t.ImageAlign = AlignLeft
	}
	for i := range t.Buttons {
		if t.Buttons[i].LinkType == "" {
			t.Buttons[i].LinkType = LinkInternal
		}
		if t.Buttons[i].Style == "" {
			t.Buttons[i].Style = StylePrimary
		}
	}
}

func (t *TextImage) normalize() {
	if t.Buttons == nil {
		t.Buttons = []LinkButton{}
	}
}

func (t *TextImage) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.ImageAlign, validation.In(AlignLeft, AlignRight)),
		validation.Field(&t.Buttons),
	)
}

// BlackCTA is the dark call to action block.
type BlackCTA struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageURL string   `json:"imageUrl"`
	Buttons  []Button `json:"buttons"`
}

// Button is a styled link without a link type.
type Button struct {
	Text  string `json:"text"`
	Link  string `json:"link"`
	Style string `json:"style"`
}

func (b Button) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Style, validation.In(StylePrimary, StyleSecondary)),
	)
}

func (*BlackCTA) Type() domain.SectionType { return domain.SectionBlackCTA }

func (c *BlackCTA) applyDefaults() {
	for i := range c.Buttons {
		if c.Buttons[i].Style == "" {
			c.Buttons[i].Style = StylePrimary
		}
	}
}

func (c *BlackCTA) normalize() {
	if c.Buttons == nil {
		c.Buttons = []Button{}
	}
}

func (c *BlackCTA) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Buttons),
	)
}

// Numbers is a list of headline statistics.
type Numbers struct {
	Stats []Stat `json:"stats"`
}

// Stat keeps number as display text ("120+", "24/7").
type Stat struct {
	Number string `json:"number"`
	Title  string `json:"title"`
}

func (*Numbers) Type() domain.SectionType { return domain.SectionNumbers }

func (n *Numbers) applyDefaults() {}

func (n *Numbers) normalize() {
	if n.Stats == nil {
		n.Stats = []Stat{}
	}
}

func (n *Numbers) Validate() error { return nil }

// Accordion is the card list owned by a homepage section.
type Accordion struct {
	Cards []Card `json:"cards"`
}

// Card is one accordion entry. Its position is its index in the list.
type Card struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	LinkURL  string `json:"linkUrl"`
	LinkText string `json:"linkText"`
	Style    string `json:"style"`
}

func (c Card) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Style, validation.In(StylePrimary, StyleSecondary)),
	)
}

func (*Accordion) Type() domain.SectionType { return domain.SectionAccordion }

func (a *Accordion) applyDefaults() {
	for i := range a.Cards {
		if a.Cards[i].Style == "" {
			a.Cards[i].Style = StylePrimary
		}
	}
}

func (a *Accordion) normalize() {
	if a.Cards == nil {
		a.Cards = []Card{}
	}
}

func (a *Accordion) Validate() error {
	return validation.ValidateStruct(a, validation.Field(&a.Cards))
}

func newFields(sectionType domain.SectionType) (Fields, bool) {
	switch sectionType {
	case domain.SectionTriple:
		return &Triple{}, true
	case domain.SectionTextImage:
		return &TextImage{}, true
	case domain.SectionBlackCTA:
		return &BlackCTA{}, true
	case domain.SectionNumbers:
		return &Numbers{}, true
	case domain.SectionAccordion:
		return &Accordion{}, true
	default:
		return nil, false
	}
}
