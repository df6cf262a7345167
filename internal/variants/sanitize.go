package variants

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func contentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// SanitizeHTML strips scripts and unsafe attributes from rich text.
func SanitizeHTML(content string) string {
	if content == "" {
		return ""
	}
	return contentPolicy().Sanitize(content)
}

// Sanitize cleans every rich text content field in place and returns fields.
func Sanitize(fields Fields) Fields {
	switch f := fields.(type) {
	case *Triple:
		for i := range f.Items {
			f.Items[i].Content = SanitizeHTML(f.Items[i].Content)
		}
	case *TextImage:
		f.Content = SanitizeHTML(f.Content)
	case *BlackCTA:
		f.Content = SanitizeHTML(f.Content)
	case *Accordion:
		f.Cards = SanitizeCards(f.Cards)
	}
	return fields
}

// SanitizeCards cleans card content in place.
func SanitizeCards(cards []Card) []Card {
	for i := range cards {
		cards[i].Content = SanitizeHTML(cards[i].Content)
	}
	return cards
}
