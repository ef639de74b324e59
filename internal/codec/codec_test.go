package codec

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/grid"
)

func randomGrid(rng *rand.Rand, width, height int) *grid.Grid {
	g := grid.New(width, height)
	g.Fill(func(x, y int) grid.Cell {
		if rng.Intn(3) == 0 {
			return grid.Alive
		}
		return grid.Dead
	})
	return g
}

func glider() *grid.Grid {
	g := grid.New(3, 3)
	for _, p := range [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		_ = g.Set(p[0], p[1], grid.Alive)
	}
	return g
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEncodeASCII(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	g.Expect(EncodeASCII(&buf, glider())).To(Succeed())
	g.Expect(buf.String()).To(Equal("3 3\n # \n  #\n###\n"))
}

func TestASCIIRoundTrip(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewSource(1))
	dir := t.TempDir()

	sizes := [][2]int{{1, 1}, {3, 3}, {7, 2}, {2, 9}, {31, 17}}
	for _, s := range sizes {
		want := randomGrid(rng, s[0], s[1])
		path := filepath.Join(dir, "grid.gol")

		g.Expect(SaveASCII(path, want)).To(Succeed())
		got, err := LoadASCII(path)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got.Equal(want)).To(BeTrue(), "size %dx%d", s[0], s[1])
	}
}

func TestDecodeASCII_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		row   int
	}{
		{"empty file", "", -1},
		{"header without newline", "3 3", -1},
		{"header one field", "3\n", -1},
		{"header not a number", "3 x\n", -1},
		{"zero width", "0 3\n", -1},
		{"negative height", "3 -1\n", -1},
		{"illegal character", "3 2\n# #\n#.#\n", 1},
		{"short row", "3 2\n##\n###\n", 0},
		{"long row", "3 2\n####\n###\n", 0},
		{"missing final newline", "3 2\n###\n###", 1},
		{"missing rows", "3 3\n###\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeASCII(bytes.NewBufferString(tt.input))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Row != tt.row {
				t.Errorf("row = %d, want %d", fe.Row, tt.row)
			}
		})
	}
}

func TestSaveASCII_RejectsEmptyGrid(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	for _, empty := range []*grid.Grid{grid.New(0, 0), grid.New(4, 0), grid.New(0, 2)} {
		path := filepath.Join(dir, "empty.gol")
		err := SaveASCII(path, empty)
		g.Expect(err).To(MatchError(ErrFormat))
		g.Expect(err.Error()).To(ContainSubstring(path))
		_, statErr := os.Stat(path)
		g.Expect(os.IsNotExist(statErr)).To(BeTrue(), "file created for %dx%d grid", empty.Width(), empty.Height())

		var buf bytes.Buffer
		g.Expect(EncodeASCII(&buf, empty)).To(MatchError(ErrFormat))
		g.Expect(buf.Len()).To(BeZero())
	}

	// the binary format keeps empty grids
	path := filepath.Join(dir, "empty.bgol")
	g.Expect(Save(path, grid.New(0, 0))).To(Succeed())
	got, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got.TotalCells()).To(BeZero())
}

func TestLoadASCII_ReportsPath(t *testing.T) {
	g := NewWithT(t)
	path := writeFile(t, "bad.gol", []byte("2 1\n#x\n"))

	_, err := LoadASCII(path)
	g.Expect(err).To(MatchError(ErrFormat))
	g.Expect(err.Error()).To(ContainSubstring(path))
	g.Expect(err.Error()).To(ContainSubstring("row 0"))
}

func TestLoad_MissingFile(t *testing.T) {
	g := NewWithT(t)
	missing := filepath.Join(t.TempDir(), "nope")

	for _, load := range []func(string) (*grid.Grid, error){LoadASCII, LoadBinary} {
		_, err := load(missing)
		g.Expect(err).To(MatchError(ErrIO))
		g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	}
}

func TestSave_Unwritable(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "missing-dir", "out")

	g.Expect(SaveASCII(path+".gol", glider())).To(MatchError(ErrIO))
	g.Expect(SaveBinary(path+".bgol", glider())).To(MatchError(ErrIO))
}

func TestEncodeBinary(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	g.Expect(EncodeBinary(&buf, glider())).To(Succeed())

	// bits 1,5,6,7,8 -> 0b11100010, 0b00000001
	g.Expect(buf.Bytes()).To(Equal([]byte{
		3, 0, 0, 0,
		3, 0, 0, 0,
		0xE2, 0x01,
	}))
}

func TestEncodeBinary_PayloadSize(t *testing.T) {
	tests := []struct {
		width, height int
		payload       int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{8, 1, 1},
		{3, 3, 2},
		{4, 4, 2},
		{5, 5, 4},
		{33, 1, 5},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		all := grid.New(tt.width, tt.height)
		all.Fill(func(x, y int) grid.Cell { return grid.Alive })
		if err := EncodeBinary(&buf, all); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if got := buf.Len() - headerSize; got != tt.payload {
			t.Errorf("%dx%d: payload %d bytes, want %d", tt.width, tt.height, got, tt.payload)
		}
		if n := tt.width * tt.height; n%8 != 0 {
			last := buf.Bytes()[buf.Len()-1]
			if last>>(n%8) != 0 {
				t.Errorf("%dx%d: padding bits set in %08b", tt.width, tt.height, last)
			}
		}
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewSource(2))
	dir := t.TempDir()

	sizes := [][2]int{{0, 0}, {1, 1}, {3, 3}, {5, 4}, {8, 8}, {13, 7}, {64, 3}}
	for _, s := range sizes {
		want := randomGrid(rng, s[0], s[1])
		path := filepath.Join(dir, "grid.bgol")

		g.Expect(SaveBinary(path, want)).To(Succeed())
		got, err := LoadBinary(path)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got.Equal(want)).To(BeTrue(), "size %dx%d", s[0], s[1])
	}
}

func TestDecodeBinary_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"short header", []byte{3, 0, 0, 0, 3, 0}},
		{"missing payload", []byte{3, 0, 0, 0, 3, 0, 0, 0}},
		{"short payload", []byte{3, 0, 0, 0, 3, 0, 0, 0, 0xE2}},
		{"negative width", []byte{0xFF, 0xFF, 0xFF, 0xFF, 1, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBinary(bytes.NewReader(tt.input))
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestDecodeBinary_TrailingBytes(t *testing.T) {
	g := NewWithT(t)
	input := []byte{3, 0, 0, 0, 3, 0, 0, 0, 0xE2, 0x01, 0xAA, 0xBB}

	got, err := DecodeBinary(bytes.NewReader(input))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got.Equal(glider())).To(BeTrue())
}

func TestLoadBinary_UnexpectedEOFMessage(t *testing.T) {
	g := NewWithT(t)
	path := writeFile(t, "short.bgol", []byte{1, 0, 0})

	_, err := LoadBinary(path)
	g.Expect(err).To(MatchError(ErrFormat))
	g.Expect(err.Error()).To(ContainSubstring("unexpected end of file"))
}

func TestLoadSave_ByExtension(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	want := glider()

	for _, name := range []string{"a.gol", "b.bgol", "C.GOL"} {
		path := filepath.Join(dir, name)
		g.Expect(Save(path, want)).To(Succeed())
		got, err := Load(path)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got.Equal(want)).To(BeTrue())
		g.Expect(IsGridFile(path)).To(BeTrue())
	}

	g.Expect(Save(filepath.Join(dir, "x.txt"), want)).To(MatchError(ErrFormat))
	_, err := Load(filepath.Join(dir, "x.png"))
	g.Expect(err).To(MatchError(ErrFormat))
	g.Expect(IsGridFile("glider")).To(BeFalse())
}
