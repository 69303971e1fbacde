package words

import "github.com/mcoot/dragonword-go/internal/model"

// DefaultPairs is the built-in word list, seeded into storage when no
// pairs are present. Each pair holds the villager word and a related but
// distinct knight word.
var DefaultPairs = []model.WordPair{
	{VillagerWord: "cat", KnightWord: "tiger"},
	{VillagerWord: "dog", KnightWord: "wolf"},
	{VillagerWord: "penguin", KnightWord: "puffin"},
	{VillagerWord: "dolphin", KnightWord: "whale"},
	{VillagerWord: "eagle", KnightWord: "falcon"},
	{VillagerWord: "rabbit", KnightWord: "hare"},
	{VillagerWord: "frog", KnightWord: "toad"},
	{VillagerWord: "bee", KnightWord: "wasp"},
	{VillagerWord: "pizza", KnightWord: "calzone"},
	{VillagerWord: "coffee", KnightWord: "espresso"},
	{VillagerWord: "pancake", KnightWord: "waffle"},
	{VillagerWord: "soup", KnightWord: "stew"},
	{VillagerWord: "cookie", KnightWord: "biscuit"},
	{VillagerWord: "burger", KnightWord: "sandwich"},
	{VillagerWord: "butter", KnightWord: "margarine"},
	{VillagerWord: "jam", KnightWord: "marmalade"},
	{VillagerWord: "guitar", KnightWord: "banjo"},
	{VillagerWord: "violin", KnightWord: "cello"},
	{VillagerWord: "piano", KnightWord: "organ"},
	{VillagerWord: "umbrella", KnightWord: "parasol"},
	{VillagerWord: "mirror", KnightWord: "window"},
	{VillagerWord: "ladder", KnightWord: "staircase"},
	{VillagerWord: "boat", KnightWord: "ship"},
	{VillagerWord: "bicycle", KnightWord: "motorcycle"},
	{VillagerWord: "airplane", KnightWord: "helicopter"},
	{VillagerWord: "train", KnightWord: "tram"},
	{VillagerWord: "beach", KnightWord: "desert"},
	{VillagerWord: "mountain", KnightWord: "volcano"},
	{VillagerWord: "river", KnightWord: "canal"},
	{VillagerWord: "castle", KnightWord: "palace"},
	{VillagerWord: "library", KnightWord: "bookstore"},
	{VillagerWord: "hospital", KnightWord: "clinic"},
	{VillagerWord: "theater", KnightWord: "cinema"},
	{VillagerWord: "teacher", KnightWord: "professor"},
	{VillagerWord: "doctor", KnightWord: "nurse"},
	{VillagerWord: "chef", KnightWord: "baker"},
	{VillagerWord: "painter", KnightWord: "sculptor"},
	{VillagerWord: "soccer", KnightWord: "rugby"},
	{VillagerWord: "tennis", KnightWord: "badminton"},
	{VillagerWord: "boxing", KnightWord: "wrestling"},
	{VillagerWord: "rain", KnightWord: "drizzle"},
	{VillagerWord: "snow", KnightWord: "hail"},
	{VillagerWord: "thunder", KnightWord: "lightning"},
	{VillagerWord: "sunrise", KnightWord: "sunset"},
}
