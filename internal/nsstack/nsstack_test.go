package nsstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libxmq/xmq/internal/nsstack"
)

func TestStack(t *testing.T) {
	var s nsstack.Stack

	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{}, s.Used())

	s.Push(map[string]string{
		"":    "urn:default",
		"foo": "http://example.com/foo",
	})

	assert.Equal(t, 1, s.Len())
	uri, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/foo", uri)
	assert.Equal(t, map[string]string{"foo": "http://example.com/foo"}, s.Used())

	s.Push(map[string]string{"foo": "http://example.com/foo/new"})

	assert.Equal(t, 2, s.Len())
	uri, ok = s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/foo/new", uri)

	s.Pop()

	assert.Equal(t, 1, s.Len())
	uri, ok = s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/foo", uri)

	defURI, ok := s.Get("")
	assert.True(t, ok)
	assert.Equal(t, "urn:default", defURI)

	s.Pop()

	assert.Equal(t, 0, s.Len())
	_, ok = s.Get("foo")
	assert.False(t, ok)
}

func TestStackSkipsUnchangedBindings(t *testing.T) {
	var s nsstack.Stack
	s.Push(map[string]string{"x": "urn:x"})
	s.Push(map[string]string{"x": "urn:x"})

	// Re-declaring the same value should not show up as "used" churn beyond
	// what the enclosing scope already provides.
	uri, ok := s.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "urn:x", uri)
	assert.Equal(t, map[string]string{}, s.Used())
}
