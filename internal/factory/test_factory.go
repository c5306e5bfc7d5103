package factory

import (
	"time"

	"github.com/vkaradzhov/belot-server/internal/dependencies/mocks"
	"github.com/vkaradzhov/belot-server/internal/dependencies/random"
	"github.com/vkaradzhov/belot-server/internal/services/auth"
	"github.com/vkaradzhov/belot-server/internal/storage/memory"
	"github.com/vkaradzhov/belot-server/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock controls time in tests
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing: in-memory storage,
// a fixed clock and a seeded shuffle so deals are reproducible.
func NewTestApp(dealSeed int64) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := random.NewSeeded(dealSeed)

	app := newWithDependencies(store, mockClock, rnd, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
