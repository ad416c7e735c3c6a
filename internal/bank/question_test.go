package bank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsCategory(t *testing.T) {
	q := New("x", "q", "a", "")
	assert.Equal(t, DefaultCategory, q.Category)
}

func TestFilter(t *testing.T) {
	qs := sampleBank()

	assert.Len(t, Filter(qs, ""), 3)
	got := Filter(qs, "databases")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "b2", got[0].ID)
	}
	assert.Empty(t, Filter(qs, "nonexistent"))

	// The result is a copy.
	all := Filter(qs, "")
	all[0].Question = "changed"
	assert.Equal(t, "What is a hash map?", qs[0].Question)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"data-structures", "databases", "general"}, Categories(sampleBank()))
	assert.Nil(t, Categories(nil))
}

func TestUUIDGenerator(t *testing.T) {
	var g UUIDGenerator
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := g.NewID()
		assert.Len(t, id, 8)
		assert.False(t, strings.Contains(id, "-"))
		seen[id] = true
	}
	assert.Greater(t, len(seen), 90)
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{}
	assert.Equal(t, "q1", g.NewID())
	assert.Equal(t, "q2", g.NewID())

	p := &SequenceGenerator{Prefix: "id-"}
	assert.Equal(t, "id-1", p.NewID())
}
