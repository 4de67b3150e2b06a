package garden

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/vovakirdan/tui-garden/internal/catalog"
)

// CompleteWord pays for a finished typing word: WordReward per letter,
// multiplied when a lucky gnome is placed anywhere and the luck roll hits.
func (e *Economy) CompleteWord(word string) (float64, bool) {
	n := len([]rune(word))
	if n == 0 {
		return 0, false
	}
	reward := float64(n * e.rules.WordReward)

	lucky := e.owns(catalog.LuckyGnomeID) && e.rng.Float64() < e.rules.LuckyChance
	if lucky {
		reward *= float64(e.rules.LuckyMultiplier)
	}
	e.state.Suns += reward
	e.emit(Event{Kind: EventWord, Amount: reward})
	return reward, lucky
}

func (e *Economy) owns(id catalog.ID) bool {
	for _, p := range e.state.Plots {
		for _, it := range p.Items {
			if it.CatalogID == id {
				return true
			}
		}
	}
	return false
}

// Typist tracks progress through the current practice word. Wrong keys are
// ignored; the word must be typed in order.
type Typist struct {
	words []string
	rng   *rand.Rand
	word  string
	typed int
}

// NewTypist creates a Typist drawing words from the list.
func NewTypist(words []string, rng *rand.Rand) *Typist {
	t := &Typist{rng: rng}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			t.words = append(t.words, w)
		}
	}
	if len(t.words) == 0 {
		t.words = []string{"garden"}
	}
	t.next()
	return t
}

func (t *Typist) next() {
	t.word = t.words[t.rng.IntN(len(t.words))]
	t.typed = 0
}

// Word returns the current word.
func (t *Typist) Word() string { return t.word }

// Typed returns the correctly typed prefix.
func (t *Typist) Typed() string { return string([]rune(t.word)[:t.typed]) }

// Key feeds one key. When it completes the word, the finished word is
// returned and a new one is drawn.
func (t *Typist) Key(r rune) (string, bool) {
	runes := []rune(t.word)
	if unicode.ToLower(r) != runes[t.typed] {
		return "", false
	}
	t.typed++
	if t.typed < len(runes) {
		return "", false
	}
	done := t.word
	t.next()
	return done, true
}
