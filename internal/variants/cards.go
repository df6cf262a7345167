package variants

import (
	"github.com/goliatone/go-sections/internal/domain"
)

// DecodeCards validates an accordion card list. Array order is card order.
func DecodeCards(raw []any) ([]Card, error) {
	if raw == nil {
		raw = []any{}
	}
	fields, err := Decode(domain.SectionAccordion, map[string]any{"cards": raw})
	if err != nil {
		return nil, err
	}
	return fields.(*Accordion).Cards, nil
}

// EncodeCards renders cards in their canonical list form.
func EncodeCards(cards []Card) ([]any, error) {
	encoded, err := Encode(&Accordion{Cards: cards})
	if err != nil {
		return nil, err
	}
	list, _ := encoded["cards"].([]any)
	if list == nil {
		list = []any{}
	}
	return list, nil
}
