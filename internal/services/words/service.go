package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mcoot/dragonword-go/internal/dependencies/random"
	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/storage"
)

// Service hands out word pairs for new games. Pairs live in storage so
// every server process sharing a redis backend draws from the same list.
type Service struct {
	store storage.Storage
	rnd   random.Random
}

func NewService(store storage.Storage, rnd random.Random) *Service {
	return &Service{
		store: store,
		rnd:   rnd,
	}
}

// Seed stores the built-in pairs if storage has none yet.
func (s *Service) Seed(ctx context.Context) error {
	_, err := s.store.GetWordPairs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrWordsNotLoaded) {
		return err
	}
	return s.store.SaveWordPairs(ctx, DefaultPairs)
}

// LoadFromFile replaces the stored pairs with the contents of a word
// list file. Each line is "villagerword,knightword"; blank lines and
// lines starting with '#' are skipped.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	var pairs []model.WordPair
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return fmt.Errorf("word list line %d: expected \"villager,knight\", got %q", lineNo, line)
		}
		villager := strings.TrimSpace(parts[0])
		knight := strings.TrimSpace(parts[1])
		if villager == "" || knight == "" {
			return fmt.Errorf("word list line %d: empty word in %q", lineNo, line)
		}
		pairs = append(pairs, model.WordPair{
			VillagerWord: villager,
			KnightWord:   knight,
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading word list: %w", err)
	}
	if len(pairs) == 0 {
		return fmt.Errorf("word list %s contains no pairs", path)
	}
	return s.store.SaveWordPairs(ctx, pairs)
}

// RandomPair picks a pair uniformly at random.
func (s *Service) RandomPair(ctx context.Context) (model.WordPair, error) {
	pairs, err := s.store.GetWordPairs(ctx)
	if err != nil {
		return model.WordPair{}, err
	}
	if len(pairs) == 0 {
		return model.WordPair{}, model.ErrWordsNotLoaded
	}
	return pairs[s.rnd.Intn(len(pairs))], nil
}

// Count reports how many pairs are loaded.
func (s *Service) Count(ctx context.Context) (int, error) {
	pairs, err := s.store.GetWordPairs(ctx)
	if err != nil {
		if errors.Is(err, model.ErrWordsNotLoaded) {
			return 0, nil
		}
		return 0, err
	}
	return len(pairs), nil
}
