package routing

import (
	"context"
	"testing"
	"time"

	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestHuntFindsTradeOff(t *testing.T) {
	re := newTestEngine(t, diamondGraph(t))
	sampler := NewScenarioSampler(re, rand.New(rand.NewSource(7)), WithMaxAttempts(500), WithNumWorkers(4))

	result, err := sampler.Hunt(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 500, result.Attempts)
	assert.LessOrEqual(t, result.Evaluated, result.Attempts)

	// 0 -> 3 is the only pair whose greenest route differs from its fastest one
	require.NotNil(t, result.BestSaving)
	assert.Equal(t, da.Index(0), result.BestSaving.Source)
	assert.Equal(t, da.Index(3), result.BestSaving.Target)
	assert.InDelta(t, 60, result.BestSaving.PollutionSavingPercent, 1e-9)
	require.NotNil(t, result.BestSaving.Route)

	require.NotNil(t, result.BestTimeLoss)
	assert.InDelta(t, 1-1.0/3, result.BestTimeLoss.TimeLossMinutes, 1e-9)
}

func TestHuntReproducible(t *testing.T) {
	g := randomGraph(t, rand.New(rand.NewSource(3)), 12, 0.25)
	re := newTestEngine(t, g)

	hunt := func(workers int) *HuntResult {
		sampler := NewScenarioSampler(re, rand.New(rand.NewSource(99)),
			WithMaxAttempts(60), WithNumWorkers(workers), WithBatchSize(8))
		result, err := sampler.Hunt(context.Background(), 0)
		require.NoError(t, err)
		return result
	}

	first, second := hunt(1), hunt(4)
	assert.Equal(t, 60, first.Attempts)
	assert.Equal(t, first.Attempts, second.Attempts)
	assert.Equal(t, first.Evaluated, second.Evaluated)

	key := func(s *Scenario) [2]da.Index {
		if s == nil {
			return [2]da.Index{da.INVALID_VERTEX_ID, da.INVALID_VERTEX_ID}
		}
		return [2]da.Index{s.Source, s.Target}
	}
	assert.Equal(t, key(first.BestSaving), key(second.BestSaving))
	assert.Equal(t, key(first.BestTimeLoss), key(second.BestTimeLoss))
}

func TestHuntStops(t *testing.T) {
	re := newTestEngine(t, diamondGraph(t))

	t.Run("unbounded", func(t *testing.T) {
		_, err := NewScenarioSampler(re, rand.New(rand.NewSource(1))).Hunt(context.Background(), 0)
		assert.ErrorIs(t, err, ErrUnboundedHunt)
	})

	t.Run("empty graph", func(t *testing.T) {
		empty := newTestEngine(t, da.NewGraphBuilder().Build())
		_, err := NewScenarioSampler(empty, rand.New(rand.NewSource(1)), WithMaxAttempts(5)).
			Hunt(context.Background(), time.Second)
		assert.ErrorIs(t, err, ErrEmptyGraph)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := NewScenarioSampler(re, rand.New(rand.NewSource(1)), WithMaxAttempts(100)).Hunt(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, result.Attempts)
		assert.Nil(t, result.BestSaving)
	})

	t.Run("time budget", func(t *testing.T) {
		start := time.Now()
		result, err := NewScenarioSampler(re, rand.New(rand.NewSource(1))).Hunt(context.Background(),
			50*time.Millisecond)
		require.NoError(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
		assert.LessOrEqual(t, result.Evaluated, result.Attempts)
	})
}

func TestSampleDistantPair(t *testing.T) {
	t.Run("falls back to first and last vertex", func(t *testing.T) {
		re := newTestEngine(t, diamondGraph(t))
		sampler := NewScenarioSampler(re, rand.New(rand.NewSource(1)))
		s, tgt, err := sampler.SampleDistantPair(2000, 5000, 50)
		require.NoError(t, err)
		assert.Equal(t, da.Index(0), s)
		assert.Equal(t, da.Index(4), tgt)
	})

	t.Run("pair within range", func(t *testing.T) {
		// about 3.3 km apart
		g := buildGraph(t, [][2]float64{{-6.2, 106.8}, {-6.2, 106.83}}, nil)
		re := newTestEngine(t, g)
		sampler := NewScenarioSampler(re, rand.New(rand.NewSource(5)))
		s, tgt, err := sampler.SampleDistantPair(2000, 5000, 200)
		require.NoError(t, err)
		assert.NotEqual(t, s, tgt)
		dist := re.GetHaversineDistanceFromUtoV(s, tgt)
		assert.Greater(t, dist, 2000.0)
		assert.Less(t, dist, 5000.0)
	})

	t.Run("empty graph", func(t *testing.T) {
		re := newTestEngine(t, da.NewGraphBuilder().Build())
		_, _, err := NewScenarioSampler(re, rand.New(rand.NewSource(1))).SampleDistantPair(0, 1, 1)
		assert.ErrorIs(t, err, ErrEmptyGraph)
	})
}
