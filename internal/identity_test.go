package internal_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-smarttrace/internal"
)

type valueError struct{ text string }

func (e valueError) Error() string { return e.text }

type sliceError []error

func (e sliceError) Error() string { return "slice" }

type structWithSlice struct{ causes []error }

func (e structWithSlice) Error() string { return "struct" }

func TestIdentity(t *testing.T) {
	first := errors.New("same")
	second := errors.New("same")

	firstKey, ok := internal.Identity(first)
	require.True(t, ok)
	secondKey, ok := internal.Identity(second)
	require.True(t, ok)
	require.NotEqual(t, firstKey, secondKey)

	valueKey, ok := internal.Identity(valueError{"a"})
	require.True(t, ok)
	otherValueKey, _ := internal.Identity(valueError{"a"})
	require.Equal(t, valueKey, otherValueKey)

	slice := sliceError{first}
	sliceKey, ok := internal.Identity(slice)
	require.True(t, ok)
	sameSliceKey, _ := internal.Identity(slice)
	require.Equal(t, sliceKey, sameSliceKey)

	_, ok = internal.Identity(structWithSlice{})
	require.False(t, ok)

	_, ok = internal.Identity(nil)
	require.False(t, ok)
}

func TestVisited(t *testing.T) {
	visited := internal.Visited{}
	err := errors.New("x")
	require.False(t, visited.Seen(err))
	require.True(t, visited.Visit(err))
	require.False(t, visited.Visit(err))
	require.True(t, visited.Seen(err))

	// unkeyable errors are never reported as seen
	unkeyable := structWithSlice{}
	require.True(t, visited.Visit(unkeyable))
	require.True(t, visited.Visit(unkeyable))
	require.False(t, visited.Seen(unkeyable))
}
