package gap

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func mustNew[T any](t *testing.T, capacity int) *Buffer[T] {
	t.Helper()
	b, err := New[T](capacity)
	if err != nil {
		t.Fatalf("New(%d): %v", capacity, err)
	}
	return b
}

func TestNew(t *testing.T) {
	b := mustNew[int](t, 0)
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if b.Cap() != MinCapacity {
		t.Errorf("Cap() = %d, want %d", b.Cap(), MinCapacity)
	}
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	if _, err := New[int](MaxCapacity + 1); !errors.Is(err, ErrLength) {
		t.Errorf("New(MaxCapacity+1) error = %v, want ErrLength", err)
	}
}

func TestZeroValue(t *testing.T) {
	var b Buffer[string]
	if err := b.Insert(0, "a", "b"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := b.Values(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Values() = %v", got)
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial []int
		pos     int
		values  []int
		want    []int
	}{
		{"into empty", nil, 0, []int{1, 2}, []int{1, 2}},
		{"front", []int{3, 4}, 0, []int{1, 2}, []int{1, 2, 3, 4}},
		{"middle", []int{1, 4}, 1, []int{2, 3}, []int{1, 2, 3, 4}},
		{"back", []int{1, 2}, 2, []int{3}, []int{1, 2, 3}},
		{"nothing", []int{1}, 1, nil, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := From(tt.initial)
			if err != nil {
				t.Fatalf("From: %v", err)
			}
			if err := b.Insert(tt.pos, tt.values...); err != nil {
				t.Fatalf("Insert: %v", err)
			}
			if got := b.Values(); !slices.Equal(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertOutOfRange(t *testing.T) {
	b := mustNew[int](t, 0)
	for _, pos := range []int{-1, 1} {
		if err := b.Insert(pos, 1); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Insert(%d) error = %v, want ErrOutOfRange", pos, err)
		}
	}
	if b.Len() != 0 {
		t.Errorf("failed insert changed length to %d", b.Len())
	}
}

func TestInsertGrows(t *testing.T) {
	b := mustNew[int](t, MinCapacity)
	for i := 0; i < 100; i++ {
		if err := b.Insert(b.Len(), i); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if b.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", b.Len())
	}
	if b.Cap() < 100 {
		t.Errorf("Cap() = %d, want >= 100", b.Cap())
	}
	for i := 0; i < 100; i++ {
		if b.At(i) != i {
			t.Fatalf("At(%d) = %d", i, b.At(i))
		}
	}
}

func TestErase(t *testing.T) {
	tests := []struct {
		name        string
		gapAt       int
		first, last int
		want        []int
	}{
		{"gap before range", 0, 2, 4, []int{0, 1, 4, 5}},
		{"gap after range", 6, 1, 3, []int{0, 3, 4, 5}},
		{"gap inside range", 3, 1, 5, []int{0, 5}},
		{"gap at range start", 2, 2, 4, []int{0, 1, 4, 5}},
		{"gap at range end", 4, 2, 4, []int{0, 1, 4, 5}},
		{"everything", 3, 0, 6, []int{}},
		{"empty range", 3, 2, 2, []int{0, 1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := From([]int{0, 1, 2, 3, 4, 5})
			b.moveGap(tt.gapAt)
			if err := b.Erase(tt.first, tt.last); err != nil {
				t.Fatalf("Erase: %v", err)
			}
			if got := b.Values(); !slices.Equal(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEraseOutOfRange(t *testing.T) {
	b, _ := From([]int{1, 2, 3})
	cases := [][2]int{{-1, 1}, {0, 4}, {2, 1}}
	for _, c := range cases {
		if err := b.Erase(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Erase(%d, %d) error = %v, want ErrOutOfRange", c[0], c[1], err)
		}
	}
	if got := b.Values(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("failed erase modified buffer: %v", got)
	}
}

func TestEraseReleasesReferences(t *testing.T) {
	a, c := new(int), new(int)
	b, _ := From([]*int{a, new(int), c})
	if err := b.Erase(0, 2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	for i, p := range b.data {
		if p != nil && p != c {
			t.Errorf("slot %d still holds an erased element", i)
		}
	}
}

func TestGetSet(t *testing.T) {
	b, _ := From([]string{"a", "b", "c"})
	b.moveGap(1)

	if v, ok := b.Get(2); !ok || v != "c" {
		t.Errorf("Get(2) = %q, %v", v, ok)
	}
	if _, ok := b.Get(3); ok {
		t.Error("Get(3) should fail")
	}
	if err := b.Set(1, "B"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if b.At(1) != "B" {
		t.Errorf("At(1) = %q, want B", b.At(1))
	}
	if err := b.Set(5, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Set(5) error = %v, want ErrOutOfRange", err)
	}
}

func TestAtPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("At out of range should panic")
		}
	}()
	b := mustNew[int](t, 0)
	b.At(0)
}

func TestReserve(t *testing.T) {
	b, _ := From([]int{1, 2, 3})
	b.moveGap(1)

	if err := b.Reserve(100); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if b.Cap() != 100 {
		t.Errorf("Cap() = %d, want 100", b.Cap())
	}
	if got := b.Values(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Values() = %v", got)
	}

	if err := b.Reserve(2); !errors.Is(err, ErrCapacity) {
		t.Errorf("Reserve(2) error = %v, want ErrCapacity", err)
	}
	if err := b.Reserve(MaxCapacity + 1); !errors.Is(err, ErrLength) {
		t.Errorf("Reserve(MaxCapacity+1) error = %v, want ErrLength", err)
	}
	if b.Cap() != 100 || b.Len() != 3 {
		t.Errorf("failed reserve changed buffer: cap %d len %d", b.Cap(), b.Len())
	}
}

func TestShrinkToFit(t *testing.T) {
	b, _ := From([]int{1, 2, 3, 4})
	b.moveGap(2)
	if err := b.ShrinkToFit(); err != nil {
		t.Fatalf("ShrinkToFit: %v", err)
	}
	if b.Cap() != 4 {
		t.Errorf("Cap() = %d, want 4", b.Cap())
	}
	if got := b.Values(); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("Values() = %v", got)
	}
	if err := b.Insert(2, 9); err != nil {
		t.Fatalf("Insert after shrink: %v", err)
	}
	if got := b.Values(); !slices.Equal(got, []int{1, 2, 9, 3, 4}) {
		t.Errorf("Values() = %v", got)
	}
}

func TestSlice(t *testing.T) {
	b, _ := From([]int{0, 1, 2, 3, 4})
	b.moveGap(2)

	got, err := b.Slice(1, 4)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Slice(1, 4) = %v", got)
	}
	if _, err := b.Slice(3, 6); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Slice(3, 6) error = %v, want ErrOutOfRange", err)
	}
}

func TestIteration(t *testing.T) {
	b, _ := From([]int{0, 1, 2, 3})
	b.moveGap(2)

	var forward []int
	for i, v := range b.All() {
		if i != v {
			t.Errorf("All yielded (%d, %d)", i, v)
		}
		forward = append(forward, v)
	}
	if !slices.Equal(forward, []int{0, 1, 2, 3}) {
		t.Errorf("All() = %v", forward)
	}

	var backward []int
	for _, v := range b.Backward() {
		backward = append(backward, v)
		if len(backward) == 3 {
			break
		}
	}
	if !slices.Equal(backward, []int{3, 2, 1}) {
		t.Errorf("Backward() = %v", backward)
	}
}

func TestClear(t *testing.T) {
	b, _ := From([]int{1, 2, 3})
	capBefore := b.Cap()
	b.Clear()
	if b.Len() != 0 || b.Cap() != capBefore {
		t.Errorf("after Clear: len %d cap %d", b.Len(), b.Cap())
	}
}

func TestRandomEditsMatchSlice(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := mustNew[int](t, 0)
	var ref []int

	for step := 0; step < 5000; step++ {
		switch rng.Intn(3) {
		case 0, 1:
			pos := rng.Intn(len(ref) + 1)
			n := rng.Intn(8)
			values := make([]int, n)
			for i := range values {
				values[i] = rng.Int()
			}
			if err := b.Insert(pos, values...); err != nil {
				t.Fatalf("step %d: Insert: %v", step, err)
			}
			ref = slices.Insert(ref, pos, values...)
		case 2:
			if len(ref) == 0 {
				continue
			}
			first := rng.Intn(len(ref))
			last := first + rng.Intn(len(ref)-first+1)
			if err := b.Erase(first, last); err != nil {
				t.Fatalf("step %d: Erase: %v", step, err)
			}
			ref = slices.Delete(ref, first, last)
		}

		if b.Len() != len(ref) {
			t.Fatalf("step %d: Len() = %d, want %d", step, b.Len(), len(ref))
		}
	}

	if got := b.Values(); !slices.Equal(got, ref) {
		t.Fatal("buffer content diverged from reference slice")
	}
}

// FuzzEdits applies a byte-encoded edit program to both a buffer and a
// plain slice and compares the results.
func FuzzEdits(f *testing.F) {
	f.Add([]byte{0, 0, 3, 1, 0, 1})
	f.Add([]byte{0, 5, 10, 2, 3, 4, 1, 1, 2})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, program []byte) {
		var b Buffer[byte]
		var ref []byte

		for i := 0; i+2 < len(program); i += 3 {
			op, x, y := program[i], int(program[i+1]), int(program[i+2])
			if op%2 == 0 {
				pos := x % (len(ref) + 1)
				values := make([]byte, y%16)
				for j := range values {
					values[j] = byte(i + j)
				}
				if err := b.Insert(pos, values...); err != nil {
					t.Fatalf("Insert: %v", err)
				}
				ref = slices.Insert(ref, pos, values...)
			} else if len(ref) > 0 {
				first := x % len(ref)
				last := first + y%(len(ref)-first+1)
				if err := b.Erase(first, last); err != nil {
					t.Fatalf("Erase: %v", err)
				}
				ref = slices.Delete(ref, first, last)
			}
		}

		if got := b.Values(); !slices.Equal(got, ref) {
			t.Errorf("content mismatch: got %v, want %v", got, ref)
		}
	})
}
