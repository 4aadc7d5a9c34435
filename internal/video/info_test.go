package video

import (
	"testing"

	"github.com/lanikai/alphamask/internal/media"
)

func TestNewInfoI420(t *testing.T) {
	info := mustInfo(t, FormatI420, 640, 480)

	if info.Strides != [4]int{640, 320, 320, 0} {
		t.Fatalf("strides %v", info.Strides)
	}
	if info.Offsets != [4]int{0, 640 * 480, 640*480 + 320*240, 0} {
		t.Fatalf("offsets %v", info.Offsets)
	}
	if info.Size != 640*480*3/2 {
		t.Fatalf("size %d", info.Size)
	}
}

// Odd dimensions round subsampled planes up.
func TestNewInfoOddSize(t *testing.T) {
	info := mustInfo(t, FormatI420, 321, 241)

	if info.Strides[0] != 321 || info.Strides[1] != 161 {
		t.Fatalf("strides %v", info.Strides)
	}
	if info.PlaneHeight(1) != 121 {
		t.Fatalf("chroma height %d", info.PlaneHeight(1))
	}
}

func TestNewInfoA420(t *testing.T) {
	info := mustInfo(t, FormatA420, 640, 480)

	if info.Planes() != 4 {
		t.Fatalf("planes %d", info.Planes())
	}
	// Alpha plane is full resolution after the subsampled chroma.
	if info.Offsets[3] != 640*480*3/2 {
		t.Fatalf("alpha offset %d", info.Offsets[3])
	}
	if info.Size != 640*480*5/2 {
		t.Fatalf("size %d", info.Size)
	}
}

func TestNewInfoPacked(t *testing.T) {
	info := mustInfo(t, FormatAYUV, 640, 480)

	if info.Strides[0] != 640*4 {
		t.Fatalf("stride %d", info.Strides[0])
	}
	if info.Size != 640*480*4 {
		t.Fatalf("size %d", info.Size)
	}
}

func TestNewInfoRejectsBadArgs(t *testing.T) {
	if _, err := NewInfo(FormatUnknown, 640, 480); err == nil {
		t.FailNow()
	}
	if _, err := NewInfo(FormatI420, 0, 480); err == nil {
		t.FailNow()
	}
	if _, err := NewInfo(FormatI420, 640, -1); err == nil {
		t.FailNow()
	}
}

func TestWithStrides(t *testing.T) {
	info, err := mustInfo(t, FormatI420, 640, 480).WithStrides(704, 384, 384)
	if err != nil {
		t.Fatal(err)
	}
	if info.Offsets != [4]int{0, 704 * 480, 704*480 + 384*240, 0} {
		t.Fatalf("offsets %v", info.Offsets)
	}
	if info.Size != 704*480+2*384*240 {
		t.Fatalf("size %d", info.Size)
	}

	if _, err := info.WithStrides(639, 320, 320); err == nil {
		t.FailNow() // stride below row size
	}
	if _, err := info.WithStrides(640, 320); err == nil {
		t.FailNow() // wrong plane count
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("I420") != FormatI420 {
		t.FailNow()
	}
	if ParseFormat("bgra") != FormatBGRA {
		t.FailNow()
	}
	if ParseFormat("YUV9") != FormatUnknown {
		t.FailNow()
	}
}

func TestMapShortBuffer(t *testing.T) {
	info := mustInfo(t, FormatI420, 640, 480)
	if _, err := Map(info, media.NewBuffer(info.Size-1)); err == nil {
		t.FailNow()
	}
}

func TestFrameRowAddressing(t *testing.T) {
	info, err := mustInfo(t, FormatGRAY8, 16, 4).WithStrides(32)
	if err != nil {
		t.Fatal(err)
	}
	buf := media.NewBuffer(info.Size)
	for i := range buf.Data {
		buf.Data[i] = byte(i)
	}

	f, err := Map(info, buf)
	if err != nil {
		t.Fatal(err)
	}
	row := f.Row(0, 2)
	if len(row) != 16 {
		t.Fatalf("row length %d", len(row))
	}
	for x := range row {
		if row[x] != byte(64+x) {
			t.Fatalf("row byte %d wrong", x)
		}
	}
}

func TestFrameDuration(t *testing.T) {
	info := mustInfo(t, FormatI420, 16, 16)

	if info.FrameDuration().IsValid() {
		t.FailNow() // rate unknown by default
	}
	info.FPS = media.Fraction{N: 30, D: 1}
	if d := info.FrameDuration(); d != media.Second/30 {
		t.Fatalf("frame duration %v", d)
	}
}
