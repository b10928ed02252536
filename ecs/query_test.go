package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protofarer/aion/ecs/component"
)

func TestQueryFilters(t *testing.T) {
	w := NewWorld()
	disc := component.NewComponentKind[float64]()
	point := component.NewComponentKind[string]()
	health := component.NewComponentKind[int]()

	a, err := Spawn(w, Bind(disc, float64Ptr(10)), Bind(health, intPtr(3)))
	require.NoError(t, err)
	b, err := Spawn(w, Bind(disc, float64Ptr(5)))
	require.NoError(t, err)
	c, err := Spawn(w, Bind(point, stringPtr("p")), Bind(disc, float64Ptr(1)))
	require.NoError(t, err)

	tests := []struct {
		name  string
		query *Query
		want  []Entity
	}{
		{"with_one", NewQuery(w, disc), []Entity{a, b, c}},
		{"with_two", NewQuery(w, disc, health), []Entity{a}},
		{"without", NewQuery(w, disc).Without(point), []Entity{a, b}},
		{"without_two", NewQuery(w, disc).Without(point, health), []Entity{b}},
		{"missing_store", NewQuery(w, component.NewComponentKind[bool]()), nil},
		{"empty_query", NewQuery(w), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.want, tc.query.Entities())
			assert.Equal(t, len(tc.want), tc.query.Count())
		})
	}
}

func TestQueryEachDefersDespawn(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	for i := 0; i < 5; i++ {
		_, err := Spawn(w, Bind(k, intPtr(i)))
		require.NoError(t, err)
	}

	seen := 0
	NewQuery(w, k).Each(func(e Entity) {
		seen++
		DestroyEntity(w, e)
	})
	assert.Equal(t, 5, seen)
	assert.Zero(t, Count(w))
}
