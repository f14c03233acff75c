package scheduler

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Empty(t *testing.T) {
	var v Value

	assert.False(t, v.HasValue())
	assert.Nil(t, v.Interface())

	_, err := As[int](v)
	require.ErrorIs(t, err, ErrNoValue)
}

func TestValue_TypedRetrieval(t *testing.T) {
	v := newValue(42)

	t.Run("matching type", func(t *testing.T) {
		got, err := As[int](v)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("mismatched type reports got and want", func(t *testing.T) {
		_, err := As[string](v)
		require.ErrorIs(t, err, ErrTypeMismatch)
		assert.ErrorContains(t, err, "got int, want string")
	})

	t.Run("failed retrieval leaves the value intact", func(t *testing.T) {
		_, err := As[float64](v)
		require.Error(t, err)

		got, err := As[int](v)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("copies share the stored value", func(t *testing.T) {
		cp := v
		got, err := As[int](cp)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})
}

func TestValue_AsType(t *testing.T) {
	intType := reflect.TypeOf(0)
	anyType := reflect.TypeOf((*any)(nil)).Elem()

	t.Run("concrete target", func(t *testing.T) {
		rv, err := newValue(7).asType(intType)
		require.NoError(t, err)
		assert.Equal(t, 7, int(rv.Int()))
	})

	t.Run("interface target accepts any stored value", func(t *testing.T) {
		rv, err := newValue("hello").asType(anyType)
		require.NoError(t, err)
		assert.Equal(t, "hello", rv.Interface())
	})

	t.Run("empty container", func(t *testing.T) {
		var v Value
		_, err := v.asType(intType)
		require.ErrorIs(t, err, ErrNoValue)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := newValue("hello").asType(intType)
		require.ErrorIs(t, err, ErrTypeMismatch)
	})
}
