package scheduler

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accumulator struct {
	base float64
}

func (a accumulator) Add(x float64) float64 {
	return a.base + x
}

func TestSolveQuadraticEquation(t *testing.T) {
	// x^2 - 2x + 1, solved as a graph of sub-results.
	s := New()
	a, b, c := 1.0, -2.0, 1.0

	minusFourAC := s.Add(func(a, c float64) float64 { return -4 * a * c }, a, c)
	discriminant := s.Add(func(b, v float64) float64 { return b*b + v }, b, FutureResult[float64](minusFourAC))
	numeratorPlus := s.Add(func(b, d float64) float64 { return -b + math.Sqrt(d) }, b, FutureResult[float64](discriminant))
	numeratorMinus := s.Add(func(b, d float64) float64 { return -b - math.Sqrt(d) }, b, FutureResult[float64](discriminant))
	rootPlus := s.Add(func(a, v float64) float64 { return v / (2 * a) }, a, FutureResult[float64](numeratorPlus))
	rootMinus := s.Add(func(a, v float64) float64 { return v / (2 * a) }, a, FutureResult[float64](numeratorMinus))

	x1, err := Result[float64](s, rootPlus)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x1, 1e-9)

	x2, err := Result[float64](s, rootMinus)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x2, 1e-9)

	assert.Equal(t, 6, s.Size())
}

func TestLazyEvaluation(t *testing.T) {
	t.Run("unrequested task never runs", func(t *testing.T) {
		s := New()
		calls := 0

		s.Add(func() int { calls++; return 1 })
		requested := s.Add(func() int { return 2 })

		_, err := Result[int](s, requested)
		require.NoError(t, err)
		assert.Zero(t, calls)
	})

	t.Run("registration alone evaluates nothing", func(t *testing.T) {
		s := New()
		calls := 0

		id := s.Add(func() int { calls++; return 1 })
		dependent := s.Add(func(x int) int { return x + 1 }, FutureResult[int](id))

		assert.Zero(t, calls)
		assert.False(t, s.Evaluated(id))
		assert.False(t, s.Evaluated(dependent))
	})
}

func TestMemoization(t *testing.T) {
	t.Run("repeated retrieval runs the computation once", func(t *testing.T) {
		s := New()
		calls := 0
		id := s.Add(func() int { calls++; return 42 })

		for i := 0; i < 3; i++ {
			v, err := Result[int](s, id)
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("multiple consumers share a single producer", func(t *testing.T) {
		s := New()
		calls := 0

		producer := s.Add(func() float64 { calls++; return 5 })
		doubled := s.Add(func(x float64) float64 { return x * 2 }, FutureResult[float64](producer))
		shifted := s.Add(func(x float64) float64 { return x + 7 }, FutureResult[float64](producer))

		d, err := Result[float64](s, doubled)
		require.NoError(t, err)
		assert.Equal(t, 10.0, d)

		sh, err := Result[float64](s, shifted)
		require.NoError(t, err)
		assert.Equal(t, 12.0, sh)

		assert.Equal(t, 1, calls)
	})
}

func TestCycleDetection(t *testing.T) {
	t.Run("two tasks referencing each other", func(t *testing.T) {
		s := New()
		// The second id is a forward reference at registration time, which
		// is legal; the cycle only exists once both tasks are in place.
		first := s.Add(func(x int) int { return x }, FutureResult[int](1))
		second := s.Add(func(x int) int { return x }, FutureResult[int](0))

		_, err := Result[int](s, first)
		require.ErrorIs(t, err, ErrCyclicDependency)

		_, err = Result[int](s, second)
		require.ErrorIs(t, err, ErrCyclicDependency)
	})

	t.Run("self reference", func(t *testing.T) {
		s := New()
		id := s.Add(func(x int) int { return x }, FutureResult[int](0))

		_, err := Result[int](s, id)
		require.ErrorIs(t, err, ErrCyclicDependency)
	})

	t.Run("longer cycle surfaces from any entry point", func(t *testing.T) {
		s := New()
		one := s.Add(func(x int) int { return x }, FutureResult[int](2))
		two := s.Add(func(x int) int { return x }, FutureResult[int](0))
		three := s.Add(func(x int) int { return x }, FutureResult[int](1))

		for _, id := range []TaskID{one, two, three} {
			_, err := Result[int](s, id)
			assert.ErrorIs(t, err, ErrCyclicDependency)
		}
	})

	t.Run("executeAll reports a cycle anywhere in the graph", func(t *testing.T) {
		s := New()
		s.Add(func() int { return 1 })
		s.Add(func(x int) int { return x }, FutureResult[int](2))
		s.Add(func(x int) int { return x }, FutureResult[int](1))

		err := s.ExecuteAll()
		require.ErrorIs(t, err, ErrCyclicDependency)
	})
}

func TestMethodExpressionComputation(t *testing.T) {
	s := New()
	id := s.Add(accumulator.Add, accumulator{base: 42}, 5.0)

	v, err := Result[float64](s, id)
	require.NoError(t, err)
	assert.Equal(t, 47.0, v)
}

func TestArgumentOrderIsPreserved(t *testing.T) {
	s := New()
	sub := func(a, b float64) float64 { return a - b }

	producer := s.Add(func() float64 { return 3 })
	literalFirst := s.Add(sub, 10.0, FutureResult[float64](producer))
	literalSecond := s.Add(sub, FutureResult[float64](producer), 10.0)

	v, err := Result[float64](s, literalFirst)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = Result[float64](s, literalSecond)
	require.NoError(t, err)
	assert.Equal(t, -7.0, v)
}

func TestExecuteAll(t *testing.T) {
	t.Run("every task ends evaluated exactly once", func(t *testing.T) {
		s := New()
		calls := make([]int, 3)

		base := s.Add(func() int { calls[0]++; return 5 })
		doubled := s.Add(func(x int) int { calls[1]++; return x * 2 }, FutureResult[int](base))
		final := s.Add(func(x int) int { calls[2]++; return x * 2 }, FutureResult[int](doubled))

		require.NoError(t, s.ExecuteAll())

		for i, c := range calls {
			assert.Equalf(t, 1, c, "task %d should have run exactly once", i)
		}
		for _, id := range []TaskID{base, doubled, final} {
			assert.True(t, s.Evaluated(id))
		}

		v, err := Result[int](s, final)
		require.NoError(t, err)
		assert.Equal(t, 20, v)
		assert.Equal(t, []int{1, 1, 1}, calls)
	})

	t.Run("empty scheduler", func(t *testing.T) {
		s := New()
		require.NoError(t, s.ExecuteAll())
		assert.Zero(t, s.Size())
	})
}

func TestTypedRetrieval(t *testing.T) {
	t.Run("mismatched type fails, matching type then succeeds", func(t *testing.T) {
		s := New()
		calls := 0
		id := s.Add(func() int { calls++; return 42 })

		_, err := Result[float64](s, id)
		require.ErrorIs(t, err, ErrTypeMismatch)
		assert.ErrorContains(t, err, "got int, want float64")

		v, err := Result[int](s, id)
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		// The mismatch happened after evaluation; the cached result
		// survived it and the computation did not rerun.
		assert.Equal(t, 1, calls)
	})

	t.Run("mismatched dependency declaration fails the dependent", func(t *testing.T) {
		s := New()
		producer := s.Add(func() int { return 42 })
		consumer := s.Add(func(s string) string { return s }, FutureResult[string](producer))

		_, err := Result[string](s, consumer)
		require.ErrorIs(t, err, ErrTypeMismatch)
		assert.ErrorContains(t, err, "argument 0 from task 0")
	})
}

func TestDeepDependencyChain(t *testing.T) {
	s := New()
	inc := func(x int) int { return x + 1 }

	id := s.Add(func() int { return 0 })
	for i := 0; i < 5; i++ {
		id = s.Add(inc, FutureResult[int](id))
	}

	v, err := Result[int](s, id)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestVoidComputation(t *testing.T) {
	s := New()
	ran := false
	id := s.Add(func() { ran = true })

	require.NoError(t, s.ExecuteAll())
	assert.True(t, ran)
	assert.True(t, s.Evaluated(id))

	v, err := s.ResultValue(id)
	require.NoError(t, err)
	assert.False(t, v.HasValue())

	_, err = Result[int](s, id)
	require.ErrorIs(t, err, ErrNoValue)
}

func TestRangeErrors(t *testing.T) {
	s := New()
	s.Add(func() int { return 1 })

	_, err := Result[int](s, TaskID(-1))
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = Result[int](s, TaskID(s.Size()))
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestForwardReference(t *testing.T) {
	t.Run("target registered before resolution", func(t *testing.T) {
		s := New()
		consumer := s.Add(func(x int) int { return x * 2 }, FutureResult[int](1))
		s.Add(func() int { return 21 })

		v, err := Result[int](s, consumer)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("target never registered", func(t *testing.T) {
		s := New()
		consumer := s.Add(func(x int) int { return x * 2 }, FutureResult[int](7))

		_, err := Result[int](s, consumer)
		require.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestFailedComputation(t *testing.T) {
	boom := errors.New("boom")

	t.Run("error propagates to the outermost caller", func(t *testing.T) {
		s := New()
		failing := s.Add(func() (int, error) { return 0, boom })
		dependent := s.Add(func(x int) int { return x }, FutureResult[int](failing))

		_, err := Result[int](s, dependent)
		require.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "computation failed")
	})

	t.Run("failed task can be retried and is not reported as a cycle", func(t *testing.T) {
		s := New()
		attempts := 0
		id := s.Add(func() (int, error) {
			attempts++
			if attempts == 1 {
				return 0, boom
			}
			return 42, nil
		})

		_, err := Result[int](s, id)
		require.ErrorIs(t, err, boom)
		assert.False(t, s.Evaluated(id))

		v, err := Result[int](s, id)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 2, attempts)
	})

	t.Run("failure in a dependency leaves the dependent retryable", func(t *testing.T) {
		s := New()
		attempts := 0
		flaky := s.Add(func() (int, error) {
			attempts++
			if attempts == 1 {
				return 0, boom
			}
			return 10, nil
		})
		dependent := s.Add(func(x int) int { return x + 1 }, FutureResult[int](flaky))

		_, err := Result[int](s, dependent)
		require.ErrorIs(t, err, boom)

		v, err := Result[int](s, dependent)
		require.NoError(t, err)
		assert.Equal(t, 11, v)
	})

	t.Run("error-only computation succeeds with empty result", func(t *testing.T) {
		s := New()
		id := s.Add(func() error { return nil })

		v, err := s.ResultValue(id)
		require.NoError(t, err)
		assert.False(t, v.HasValue())
		assert.True(t, s.Evaluated(id))
	})
}
