package painter

import "testing"

func TestDrawCommandAllocate(t *testing.T) {
	d := NewDrawCommand(16, 8, 12)
	if !d.Empty() {
		t.Fatal("new command not empty")
	}

	off, words := d.AllocateStore(4)
	if off != 0 || len(words) != 4 {
		t.Errorf("AllocateStore(4) = %d, %d words", off, len(words))
	}
	words[0] = Uint(9)
	off, _ = d.AllocateStore(8)
	if off != 4 {
		t.Errorf("second AllocateStore offset = %d, want 4", off)
	}
	if d.RemainingStore() != 4 || d.WrittenStore() != 12 {
		t.Errorf("store remaining/written = %d/%d, want 4/12", d.RemainingStore(), d.WrittenStore())
	}
	if d.Store()[0] != Uint(9) {
		t.Error("Store() does not expose written words")
	}

	aoff, attrs, hidx := d.AllocateAttributes(3)
	if aoff != 0 || len(attrs) != 3 || len(hidx) != 3 {
		t.Errorf("AllocateAttributes(3) = %d, %d, %d", aoff, len(attrs), len(hidx))
	}
	ioff, idx := d.AllocateIndices(6)
	if ioff != 0 || len(idx) != 6 {
		t.Errorf("AllocateIndices(6) = %d, %d", ioff, len(idx))
	}

	d.AddBreak(nil, true, BlendPlus)
	br := d.Breaks()
	if len(br) != 1 || br[0].IndexOffset != 6 || br[0].StoreOffset != 12 || br[0].Blend != BlendPlus {
		t.Errorf("Breaks() = %+v", br)
	}
}

func TestDrawCommandPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(d *DrawCommand)
	}{
		{"store overflow", func(d *DrawCommand) { d.AllocateStore(5) }},
		{"attribute overflow", func(d *DrawCommand) { d.AllocateAttributes(3) }},
		{"index overflow", func(d *DrawCommand) { d.AllocateIndices(4) }},
		{"allocate after close", func(d *DrawCommand) {
			d.Close()
			d.AllocateStore(1)
		}},
		{"break after close", func(d *DrawCommand) {
			d.Close()
			d.AddBreak(nil, false, BlendSrcOver)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(NewDrawCommand(4, 2, 3))
		})
	}
}

func TestDrawCommandReset(t *testing.T) {
	d := NewDrawCommand(4, 2, 3)
	_, w := d.AllocateStore(4)
	w[3] = Uint(1)
	d.AllocateAttributes(2)
	d.AllocateIndices(3)
	d.AddBreak(nil, false, BlendSrcOver)
	d.Blend = BlendXor
	d.Close()

	d.Reset()
	if !d.Empty() || d.Closed() || d.Blend != BlendSrcOver {
		t.Errorf("after Reset: Empty() = %v, Closed() = %v, Blend = %v", d.Empty(), d.Closed(), d.Blend)
	}
	_, w = d.AllocateStore(4)
	if w[3] != 0 {
		t.Error("Reset did not clear the store")
	}
	if d.StoreCapacity() != 4 || d.AttributeCapacity() != 2 || d.IndexCapacity() != 3 {
		t.Error("Reset changed capacities")
	}
}
