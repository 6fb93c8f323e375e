package game

// Base cards shared by every hero's starting deck.
const (
	CardAttackBase  = "card_atk_base"
	CardDefenseBase = "card_def_base"
	CardHealBase    = "card_heal_base"
	CardUtilityBase = "card_util_base"
	CardMoveBase    = "card_move_base"
	CardDebuffBase  = "card_debuff_base"
)

func baseCards() []*Card {
	return []*Card{
		{ID: CardAttackBase, Name: "Attacco Base", Description: "Infligge danni al nemico.", PACost: 1, Type: CardTypeAttack, Value: 3},
		{ID: CardDefenseBase, Name: "Difesa Base", Description: "Ottieni scudo per questo turno.", PACost: 1, Type: CardTypeDefense, Value: 3},
		{ID: CardHealBase, Name: "Cura Base", Description: "Recupera punti vita.", PACost: 2, Type: CardTypeHeal, Value: 4},
		{ID: CardUtilityBase, Name: "Utilità Base", Description: "Effetto di supporto.", PACost: 1, Type: CardTypeUtility, Value: 1},
		{ID: CardMoveBase, Name: "Movimento Base", Description: "Riposizionamento.", PACost: 1, Type: CardTypeMovement, Value: 2},
		{ID: CardDebuffBase, Name: "Indebolimento", Description: "Indebolisce il nemico.", PACost: 2, Type: CardTypeDebuff, Value: 2},
	}
}

func signatureCards() []*Card {
	return []*Card{
		{ID: "sig_baluardo_1", Name: "Onda d'Urto", PACost: 2, Type: CardTypeAttack, Symbol: SymbolShield, Value: 4},
		{ID: "sig_baluardo_2", Name: "Muro di Carne", PACost: 1, Type: CardTypeDefense, Symbol: SymbolShield, Value: 6},
		{ID: "sig_sentinella_1", Name: "Guardia Assoluta", PACost: 2, Type: CardTypeDefense, Symbol: SymbolShield, Value: 5},
		{ID: "sig_sentinella_2", Name: "Controffensiva", PACost: 1, Type: CardTypeAttack, Symbol: SymbolShield, Value: 4},
		{ID: "sig_ombra_1", Name: "Lama Oscura", PACost: 2, Type: CardTypeAttack, Symbol: SymbolVolt, Value: 6},
		{ID: "sig_ombra_2", Name: "Passo Fantasma", PACost: 1, Type: CardTypeAttack, Symbol: SymbolVolt, Value: 4},
		{ID: "sig_assassina_1", Name: "Veleno Letale", PACost: 2, Type: CardTypeAttack, Symbol: SymbolVolt, Value: 5},
		{ID: "sig_assassina_2", Name: "Stiletto Rapido", PACost: 1, Type: CardTypeAttack, Symbol: SymbolVolt, Value: 5},
		{ID: "sig_cronomante_1", Name: "Distorsione Temporale", PACost: 2, Type: CardTypeUtility, Symbol: SymbolLink, Value: 3},
		{ID: "sig_cronomante_2", Name: "Eco Futuro", PACost: 1, Type: CardTypeUtility, Symbol: SymbolLink, Value: 2},
		{ID: "sig_elementalista_1", Name: "Tempesta Elementale", PACost: 2, Type: CardTypeAttack, Symbol: SymbolFire, Value: 6},
		{ID: "sig_elementalista_2", Name: "Catalizzatore", PACost: 1, Type: CardTypeUtility, Symbol: SymbolFire, Value: 3},
		{ID: "sig_archivista_1", Name: "Tomo Sacro", PACost: 2, Type: CardTypeHeal, Symbol: SymbolLink, Value: 5},
		{ID: "sig_archivista_2", Name: "Benedizione", PACost: 1, Type: CardTypeHeal, Symbol: SymbolLink, Value: 4},
		{ID: "sig_mistica_1", Name: "Illusione Perfetta", PACost: 2, Type: CardTypeUtility, Symbol: SymbolLink, Value: 4},
		{ID: "sig_mistica_2", Name: "Velo Arcano", PACost: 1, Type: CardTypeDefense, Symbol: SymbolLink, Value: 5},
		{ID: "sig_ingegnere_1", Name: "Torretta MK-II", PACost: 2, Type: CardTypeAttack, Symbol: SymbolFire, Value: 5},
		{ID: "sig_ingegnere_2", Name: "Kit Riparazione", PACost: 1, Type: CardTypeHeal, Symbol: SymbolFire, Value: 4},
		{ID: "sig_predatore_1", Name: "Trappola Letale", PACost: 2, Type: CardTypeAttack, Symbol: SymbolVolt, Value: 5},
		{ID: "sig_predatore_2", Name: "Istinto Selvaggio", PACost: 1, Type: CardTypeAttack, Symbol: SymbolVolt, Value: 4},
	}
}

// Starting deck shapes per hero class, after the two signature cards.
var (
	tankDeck       = []string{CardAttackBase, CardAttackBase, CardDefenseBase, CardDefenseBase, CardHealBase, CardUtilityBase}
	dpsDeck        = []string{CardAttackBase, CardAttackBase, CardDefenseBase, CardMoveBase, CardUtilityBase, CardDebuffBase}
	controlDeck    = []string{CardAttackBase, CardDefenseBase, CardHealBase, CardUtilityBase, CardMoveBase, CardDebuffBase}
	supportDeck    = []string{CardAttackBase, CardDefenseBase, CardHealBase, CardHealBase, CardUtilityBase, CardMoveBase}
	specialistDeck = controlDeck
)

func hero(id, name, class string, hp, def, resMax int, shape []string) *HeroProfile {
	sigA, sigB := "sig_"+id+"_1", "sig_"+id+"_2"
	deck := append([]string{sigA, sigB}, shape...)
	return &HeroProfile{
		ID:          id,
		Name:        name,
		Class:       class,
		BaseHP:      hp,
		BaseDef:     def,
		ResourceMax: resMax,
		InitialDeck: deck,
		Signature:   SignaturePair{A: sigA, B: sigB},
	}
}

// DefaultCatalog returns the built-in card and hero tables.
func DefaultCatalog() *Catalog {
	cards := append(signatureCards(), baseCards()...)
	heroes := []*HeroProfile{
		hero("baluardo", "Baluardo", "Tank", 15, 1, 5, tankDeck),
		hero("sentinella", "Sentinella", "Tank", 14, 2, 4, tankDeck),
		hero("ombra", "Ombra", "DPS", 12, 0, 4, dpsDeck),
		hero("assassina", "Assassina", "DPS", 11, 0, 5, dpsDeck),
		hero("cronomante", "Cronomante", "Control", 10, 0, 6, controlDeck),
		hero("elementalista", "Elementalista", "Control", 10, 0, 5, controlDeck),
		hero("archivista", "Archivista", "Support", 11, 0, 4, supportDeck),
		hero("mistica", "Mistica", "Support", 10, 0, 4, supportDeck),
		hero("ingegnere", "Ingegnere", "Specialist", 13, 1, 5, specialistDeck),
		hero("predatore", "Predatore", "Specialist", 14, 0, 5, specialistDeck),
	}
	c, err := NewCatalog(cards, heroes)
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}
