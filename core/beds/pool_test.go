package beds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AllFree(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Total())
	assert.Equal(t, 4, p.FreeCount())
	for i, b := range p.Beds() {
		assert.Equal(t, i+1, b.ID)
		assert.False(t, b.Occupied)
	}
}

func TestNew_NegativeCapacity(t *testing.T) {
	_, err := New(-1)
	if !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestAllocate_ExclusiveAndOrdered(t *testing.T) {
	p, err := New(5)
	require.NoError(t, err)
	seen := map[int]bool{}
	for k := 1; k <= 5; k++ {
		id, err := p.Allocate()
		require.NoError(t, err)
		if seen[id] {
			t.Fatalf("bed %d allocated twice", id)
		}
		seen[id] = true
		assert.Equal(t, k, id, "first free bed in ascending order")
		assert.Equal(t, 5-k, p.FreeCount())
	}
}

func TestAllocate_Exhausted(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)
	_, err = p.Allocate()
	require.NoError(t, err)
	before := p.Beds()
	id, err := p.Allocate()
	if !errors.Is(err, ErrNoCapacity) {
		t.Fatalf("expected ErrNoCapacity, got %v", err)
	}
	assert.Equal(t, 0, id)
	assert.Equal(t, before, p.Beds(), "exhausted allocate must not mutate")
}

func TestAllocate_EmptyPool(t *testing.T) {
	p, err := New(0)
	require.NoError(t, err)
	_, err = p.Allocate()
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestRelease(t *testing.T) {
	p, _ := New(3)
	_, _ = p.Allocate()
	_, _ = p.Allocate()
	p.Release(1)
	assert.Equal(t, 2, p.FreeCount())
	id, err := p.Allocate()
	require.NoError(t, err)
	assert.Equal(t, 1, id, "released bed is reused first")

	p.Release(0)
	p.Release(42)
	assert.Equal(t, 1, p.FreeCount(), "unknown ids are ignored")
}

func TestOccupy(t *testing.T) {
	checks := []struct {
		name  string
		total int
		n     int
		want  int
	}{
		{"partial", 5, 2, 2},
		{"clamped", 3, 10, 3},
		{"none", 3, 0, 0},
		{"negative", 3, -2, 0},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			p, _ := New(c.total)
			got := p.Occupy(c.n)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.want, p.OccupiedCount())
			for i, b := range p.Beds() {
				assert.Equal(t, i < c.want, b.Occupied)
			}
		})
	}
}

func TestBeds_ReturnsCopy(t *testing.T) {
	p, _ := New(2)
	bs := p.Beds()
	bs[0].Occupied = true
	assert.Equal(t, 2, p.FreeCount())
}
