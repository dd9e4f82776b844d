package texture

import "testing"

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(-1, FormatGray8); err == nil {
		t.Fatal("expected error for negative size")
	}
	if _, err := New(16, Format(99)); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRGBAOpaque(t *testing.T) {
	for _, f := range []Format{FormatGray8, FormatGray16, FormatRGB8} {
		tex, err := New(8, f)
		if err != nil {
			t.Fatal(err)
		}
		img := tex.RGBA()
		if got := img.Bounds().Dx(); got != 8 {
			t.Fatalf("%v: width = %d", f, got)
		}
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0xFF {
				t.Fatalf("%v: pixel %d not opaque", f, i/4)
			}
		}
	}
}

func TestGray16RGBAUsesHighByte(t *testing.T) {
	tex, err := New(2, FormatGray16)
	if err != nil {
		t.Fatal(err)
	}
	tex.setGray16(0, 0, 0xAB12)
	img := tex.RGBA()
	if img.Pix[0] != 0xAB {
		t.Fatalf("high byte not used: %#x", img.Pix[0])
	}
}

func TestGray8AtOutOfBounds(t *testing.T) {
	tex, err := New(4, FormatGray8)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Gray8At(-1, 0) != 0 || tex.Gray8At(0, 4) != 0 {
		t.Fatal("out-of-bounds reads must return 0")
	}
}
