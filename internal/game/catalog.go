package game

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds the immutable card and hero tables an engine is built with.
type Catalog struct {
	cards  map[string]*Card
	heroes map[string]*HeroProfile
}

// NewCatalog validates and indexes cards and heroes.
func NewCatalog(cards []*Card, heroes []*HeroProfile) (*Catalog, error) {
	c := &Catalog{
		cards:  make(map[string]*Card, len(cards)),
		heroes: make(map[string]*HeroProfile, len(heroes)),
	}
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has no id", card.Name)
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		if card.PACost < 0 {
			return nil, fmt.Errorf("card %q: negative PA cost %d", card.ID, card.PACost)
		}
		c.cards[card.ID] = card
	}
	for _, hero := range heroes {
		key := strings.ToLower(hero.ID)
		if key == "" {
			return nil, fmt.Errorf("hero %q has no id", hero.Name)
		}
		if _, dup := c.heroes[key]; dup {
			return nil, fmt.Errorf("duplicate hero id %q", hero.ID)
		}
		if err := c.validateHero(hero); err != nil {
			return nil, fmt.Errorf("hero %q: %w", hero.ID, err)
		}
		c.heroes[key] = hero
	}
	return c, nil
}

func (c *Catalog) validateHero(h *HeroProfile) error {
	if h.BaseHP <= 0 {
		return fmt.Errorf("base HP must be > 0")
	}
	if len(h.InitialDeck) == 0 {
		return fmt.Errorf("empty initial deck")
	}
	for _, id := range h.InitialDeck {
		if _, ok := c.cards[id]; !ok {
			return fmt.Errorf("initial deck references unknown card %q", id)
		}
	}
	sig := h.Signature
	if sig.A == "" && sig.B == "" {
		return nil
	}
	if sig.A == sig.B {
		return fmt.Errorf("signature pair must name two distinct cards")
	}
	a, okA := c.cards[sig.A]
	b, okB := c.cards[sig.B]
	if !okA || !okB {
		return fmt.Errorf("signature pair references unknown card (%q, %q)", sig.A, sig.B)
	}
	if !Compatible(a, b) {
		return fmt.Errorf("signature cards %q and %q do not share a combo symbol", sig.A, sig.B)
	}
	return nil
}

// Card looks up a card by id.
func (c *Catalog) Card(id string) (*Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Hero looks up a hero by id or name, case-insensitively.
func (c *Catalog) Hero(idOrName string) (*HeroProfile, bool) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if h, ok := c.heroes[key]; ok {
		return h, true
	}
	for _, h := range c.heroes {
		if strings.EqualFold(h.Name, key) {
			return h, true
		}
	}
	return nil, false
}

// Cards returns all cards sorted by id.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, 0, len(c.cards))
	for _, card := range c.cards {
		out = append(out, card)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Heroes returns all heroes sorted by id.
func (c *Catalog) Heroes() []*HeroProfile {
	out := make([]*HeroProfile, 0, len(c.heroes))
	for _, h := range c.heroes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- YAML catalog files ---

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	Cards  []CardEntry `yaml:"cards"`
	Heroes []HeroEntry `yaml:"heroes"`
}

// CardEntry represents a single card in the YAML file.
type CardEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PACost      int    `yaml:"pa_cost"`
	Type        string `yaml:"type"`
	Symbol      string `yaml:"symbol"`
	Value       int    `yaml:"value"`
}

// HeroEntry represents a single hero in the YAML file.
type HeroEntry struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Class       string      `yaml:"class"`
	HP          int         `yaml:"hp"`
	Def         int         `yaml:"def"`
	ResourceMax int         `yaml:"resource_max"`
	Signature   []string    `yaml:"signature"`
	Deck        []DeckEntry `yaml:"deck"`
}

// DeckEntry represents a card and its count in a hero's starting deck.
type DeckEntry struct {
	Card  string `yaml:"card"`
	Count int    `yaml:"count"`
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML catalog data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cards := make([]*Card, 0, len(cf.Cards))
	for _, e := range cf.Cards {
		ct, err := ParseCardType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.ID, err)
		}
		sym, err := ParseComboSymbol(e.Symbol)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.ID, err)
		}
		cards = append(cards, &Card{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			PACost:      e.PACost,
			Type:        ct,
			Symbol:      sym,
			Value:       e.Value,
		})
	}

	heroes := make([]*HeroProfile, 0, len(cf.Heroes))
	for _, e := range cf.Heroes {
		h := &HeroProfile{
			ID:          e.ID,
			Name:        e.Name,
			Class:       e.Class,
			BaseHP:      e.HP,
			BaseDef:     e.Def,
			ResourceMax: e.ResourceMax,
		}
		switch len(e.Signature) {
		case 0:
		case 2:
			h.Signature = SignaturePair{A: e.Signature[0], B: e.Signature[1]}
		default:
			return nil, fmt.Errorf("hero %q: signature needs exactly 2 cards, got %d", e.ID, len(e.Signature))
		}
		for _, d := range e.Deck {
			count := d.Count
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				h.InitialDeck = append(h.InitialDeck, d.Card)
			}
		}
		heroes = append(heroes, h)
	}

	return NewCatalog(cards, heroes)
}
