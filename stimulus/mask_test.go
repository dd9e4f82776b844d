package stimulus

import "testing"

func TestHalfFieldMasksPartition(t *testing.T) {
	const size = 64
	for _, band := range []int{0, 1, 2, 8} {
		left, right, err := HalfFieldMasks(size, band)
		if err != nil {
			t.Fatal(err)
		}
		for i := range left {
			if left[i] != 0 && right[i] != 0 {
				t.Fatalf("band=%d: pixel %d lit on both masks", band, i)
			}
		}
	}
}

func TestHalfFieldMasksBand(t *testing.T) {
	const size = 64
	const band = 2
	left, right, err := HalfFieldMasks(size, band)
	if err != nil {
		t.Fatal(err)
	}
	mid := size / 2
	for x := mid - band; x < mid+band; x++ {
		if left[x] != 0 || right[x] != 0 {
			t.Fatalf("column %d inside band should be dark", x)
		}
	}
	if left[mid-band-1] != 0xFF {
		t.Fatal("left mask should be lit just outside the band")
	}
	if right[mid+band] != 0xFF {
		t.Fatal("right mask should be lit just outside the band")
	}
	if left[0] != 0xFF || right[size-1] != 0xFF {
		t.Fatal("outer columns should be lit")
	}
}

func TestHalfFieldMasksZeroBandCovers(t *testing.T) {
	const size = 32
	left, right, err := HalfFieldMasks(size, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range left {
		if left[i] == 0 && right[i] == 0 {
			t.Fatalf("band=0: pixel %d lit on neither mask", i)
		}
	}
}

func TestHalfFieldMasksErrors(t *testing.T) {
	if _, _, err := HalfFieldMasks(0, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, _, err := HalfFieldMasks(64, -1); err == nil {
		t.Fatal("expected error for negative band")
	}
	if _, _, err := HalfFieldMasks(64, 33); err == nil {
		t.Fatal("expected error for band wider than half field")
	}
}
