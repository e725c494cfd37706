package base

import (
	"slices"
	"sort"
	"testing"
)

func TestIndexOfInts(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if i, ok := IndexOf(1, items...); !ok || i != 0 {
		t.Errorf("invalid indexof: %v != %v || %v != %v", ok, true, i, 0)
	}
	if i, ok := IndexOf(5, items...); !ok || i != len(items)-1 {
		t.Errorf("invalid indexof: %v != %v || %v != %v", ok, true, i, len(items)-1)
	}
	if _, ok := IndexOf(6, items...); ok {
		t.Errorf("invalid indexof: %v != %v", ok, false)
	}
}

func TestContainsInts(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if !Contains(items, 1) {
		t.FailNow()
	}
	if !Contains(items, 5, 3) {
		t.FailNow()
	}
	if Contains(items, 0) {
		t.FailNow()
	}
}

func TestAppendUniqInts(t *testing.T) {
	if new := AppendUniq([]int{1, 2, 3, 4, 5}, 6, 0); !slices.Equal(new, []int{1, 2, 3, 4, 5, 6, 0}) {
		t.FailNow()
	}
	if new := AppendUniq([]int{1, 2, 3, 4, 5}, 2, 3); !slices.Equal(new, []int{1, 2, 3, 4, 5}) {
		t.FailNow()
	}
	if new := AppendUniq([]int{1, 2, 3, 4, 5}, 0, 1, 2, 3); !slices.Equal(new, []int{1, 2, 3, 4, 5, 0}) {
		t.FailNow()
	}
}

func TestMapInts(t *testing.T) {
	if new := Map(func(i int) int { return i * 2 }, 1, 2, 3); !slices.Equal(new, []int{2, 4, 6}) {
		t.FailNow()
	}
}

func TestKeys(t *testing.T) {
	m := map[int]int{1: 0, 2: 1, 3: 2}
	k := Keys(m)
	sort.Ints(k)
	if !slices.Equal(k, []int{1, 2, 3}) {
		t.FailNow()
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[string]bool{"Release": true, "Debug": true, "Profile": false}
	if k := SortedKeys(m); !slices.Equal(k, []string{"Debug", "Profile", "Release"}) {
		t.Errorf("unexpected order: %v", k)
	}
}

func TestSetAppendUniq(t *testing.T) {
	var set SetT[string]
	if !set.AppendUniq("Debug", "Release", "Debug") || set.Len() != 2 {
		t.Errorf("expected 2 elements, got %v", set)
	}
	if set.AppendUniq("Release") {
		t.Error("set should not be modified")
	}
	if !set.AppendUniq("Profile") || !set.Contains("Profile") {
		t.Error("set should contain the new element")
	}
}
