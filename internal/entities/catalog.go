package entities

// Boss catalog keys
const (
	BossGoblin = "goblin"
	BossOrc    = "orc"
	BossDragon = "dragon"
	BossDemon  = "demon"
)

// bossCatalog is the fixed adversary table. Stats and rewards grow
// monotonically with level.
var bossCatalog = map[string]Boss{
	BossGoblin: {
		Name:       "Goblin Warrior",
		Level:      1,
		HP:         50,
		MaxHP:      50,
		Attack:     8,
		Defense:    2,
		XPReward:   50,
		CoinReward: 30,
		Sprite:     "goblin",
	},
	BossOrc: {
		Name:       "Orc Berserker",
		Level:      3,
		HP:         100,
		MaxHP:      100,
		Attack:     15,
		Defense:    5,
		XPReward:   100,
		CoinReward: 60,
		Sprite:     "orc",
	},
	BossDragon: {
		Name:       "Ancient Dragon",
		Level:      5,
		HP:         200,
		MaxHP:      200,
		Attack:     25,
		Defense:    10,
		XPReward:   200,
		CoinReward: 150,
		Sprite:     "dragon",
	},
	BossDemon: {
		Name:       "Demon Lord",
		Level:      7,
		HP:         350,
		MaxHP:      350,
		Attack:     35,
		Defense:    15,
		XPReward:   350,
		CoinReward: 250,
		Sprite:     "demon",
	},
}

// bossPuzzles are the riddles used by riddle-mode encounters, one per
// catalog boss.
var bossPuzzles = map[string]Puzzle{
	BossGoblin: {
		Question: "I speak without a mouth and hear without ears. I have no body, but I come alive with wind. What am I?",
		Answer:   "echo",
		Hint:     "You hear it in caves and canyons.",
	},
	BossOrc: {
		Question: "The more you take, the more you leave behind. What am I?",
		Answer:   "footsteps",
		Hint:     "Look down while you walk.",
	},
	BossDragon: {
		Question: "I am not alive, but I grow; I have no lungs, but I need air; I have no mouth, and water kills me. What am I?",
		Answer:   "fire",
		Hint:     "A dragon breathes it.",
	},
	BossDemon: {
		Question: "What walks on four legs in the morning, two legs at noon, and three in the evening?",
		Answer:   "man",
		Hint:     "The Sphinx asked this one first.",
	},
}

// BossKeys returns the catalog keys ordered by boss level
func BossKeys() []string {
	return []string{BossGoblin, BossOrc, BossDragon, BossDemon}
}

// BossByKey returns a copy of the catalog entry, so callers can mutate
// HP freely
func BossByKey(key string) (Boss, bool) {
	b, ok := bossCatalog[key]
	return b, ok
}

// PuzzleByKey returns the riddle for a catalog boss
func PuzzleByKey(key string) (Puzzle, bool) {
	p, ok := bossPuzzles[key]
	return p, ok
}

// ItemEffect says what a shop purchase does to the buyer
type ItemEffect string

// Item effects
const (
	EffectRestoreHP    ItemEffect = "hp"
	EffectBoostAttack  ItemEffect = "attack"
	EffectBoostDefense ItemEffect = "defense"
)

// Item is a shop catalog entry
type Item struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Cost   int        `json:"cost"`
	Effect ItemEffect `json:"effect"`
	Value  int        `json:"value"`
	Icon   string     `json:"icon"`
}

// Equipment reports whether the item grants a permanent stat boost and
// therefore lands in the buyer's inventory as a purchase record
func (i Item) Equipment() bool {
	return i.Effect != EffectRestoreHP
}

// shopCatalog is the fixed shop. Potions heal; equipment boosts a stat
// permanently and is recorded in the inventory.
var shopCatalog = []Item{
	{ID: "potion", Name: "Health Potion", Cost: 25, Effect: EffectRestoreHP, Value: 15, Icon: "potion"},
	{ID: "sword", Name: "Sword", Cost: 50, Effect: EffectBoostAttack, Value: 5, Icon: "sword"},
	{ID: "shield", Name: "Shield", Cost: 50, Effect: EffectBoostDefense, Value: 3, Icon: "shield"},
	{ID: "armor", Name: "Armor", Cost: 75, Effect: EffectBoostDefense, Value: 5, Icon: "armor"},
}

// ShopItems returns the catalog in display order
func ShopItems() []Item {
	items := make([]Item, len(shopCatalog))
	copy(items, shopCatalog)
	return items
}

// ItemByID looks up a shop item
func ItemByID(id string) (Item, bool) {
	for _, it := range shopCatalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// PenaltyTaskTitles is the catalog of small remedial actions a missed
// deadline draws from, uniformly at random.
var PenaltyTaskTitles = []string{
	"Drink a glass of water",
	"Take a five minute walk",
	"Tidy your desk",
	"Do ten push-ups",
	"Stretch for five minutes",
	"Write down tomorrow's top priority",
}
