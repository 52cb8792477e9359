package attrorder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libxmq/xmq/internal/attrorder"
)

func TestSort(t *testing.T) {
	attrs := []attrorder.NSAttr{
		{Prefix: "b", URI: "urn:b"},
		{Prefix: "", URI: "urn:default"},
		{Prefix: "a", URI: "urn:a"},
	}

	attrorder.Sort(attrs)

	assert.Equal(t, []attrorder.NSAttr{
		{Prefix: "", URI: "urn:default"},
		{Prefix: "a", URI: "urn:a"},
		{Prefix: "b", URI: "urn:b"},
	}, attrs)
}

func TestSortNoDefault(t *testing.T) {
	attrs := []attrorder.NSAttr{
		{Prefix: "z", URI: "urn:z"},
		{Prefix: "a", URI: "urn:a"},
	}

	attrorder.Sort(attrs)

	assert.Equal(t, "a", attrs[0].Prefix)
	assert.Equal(t, "z", attrs[1].Prefix)
}
