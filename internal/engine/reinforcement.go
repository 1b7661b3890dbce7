package engine

import (
	"strings"

	"github.com/brightsteps/scribe/internal/lexicon"
)

var deliveryVerbs = lexicon.Compile(
	"gave", "give", "delivered", "deliver", "provided", "provide",
	"earned", "reinforced", "rewarded",
)

// reinforcerItems includes the named items plus generic reinforcer terms
// that satisfy the co-occurrence rule without naming an item.
var reinforcerItems = lexicon.Compile(
	"token", "praise", "sticker", "candy", "reward", "reinforcement",
	"preferred item", "ipad", "break",
)

// namedItems is the fixed enumeration order for the aggregated type string,
// independent of the order items appear in the input.
var namedItems = []struct {
	kw      lexicon.Keyword
	display string
}{
	{lexicon.Compile("token")[0], "Token"},
	{lexicon.Compile("praise")[0], "Praise"},
	{lexicon.Compile("sticker")[0], "Sticker"},
	{lexicon.Compile("candy")[0], "Candy"},
	{lexicon.Compile("ipad")[0], "iPad"},
	{lexicon.Compile("break")[0], "Break"},
}

// ExtractReinforcement fires only when a delivery verb and a reinforcer item
// co-occur in the utterance. All named items present are aggregated into a
// "+"-joined type in fixed enumeration order.
func ExtractReinforcement(text string) *Reinforcement {
	norm := lexicon.Normalize(text)
	if !lexicon.Any(norm, deliveryVerbs) || !lexicon.Any(norm, reinforcerItems) {
		return nil
	}

	var items []string
	for _, item := range namedItems {
		if item.kw.In(norm) {
			items = append(items, item.display)
		}
	}

	typ := "Reinforcement"
	if len(items) > 0 {
		typ = strings.Join(items, " + ")
	}

	return &Reinforcement{
		Type:      typ,
		Delivered: true,
		Details:   text,
	}
}
