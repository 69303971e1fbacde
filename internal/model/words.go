package model

// WordPair holds the two related words for a round: the villager word shown
// to the majority, and a similar knight word shown to the informed minority.
type WordPair struct {
	VillagerWord string
	KnightWord   string
}
