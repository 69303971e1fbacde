package factory

import (
	"context"
	"time"

	"github.com/mcoot/dragonword-go/internal/dependencies/mocks"
	"github.com/mcoot/dragonword-go/internal/storage/memory"
	"github.com/mcoot/dragonword-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, 0, 0, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// SeedTestWords loads the built-in word list
func (t *TestApp) SeedTestWords(ctx context.Context) error {
	return t.WordService.Seed(ctx)
}
