package fieldops

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type Point2D struct {
	X, Y float64
}

type Color struct {
	R, G, B, A int
}

type mixed struct {
	Small  int8
	Byte   uint8
	Single float32
	Label  string
	hidden int
}

type celsius float64

func (c celsius) String() string { return fmt.Sprintf("%gC", float64(c)) }

type reading struct {
	Temp celsius
	Hour int
}

func TestByNameErrors(t *testing.T) {
	_, err := ByName[Point2D]()
	require.ErrorIs(t, err, ErrNoFields)

	_, err = ByName[int]("X")
	require.ErrorIs(t, err, ErrNotStruct)

	_, err = ByName[Point2D]("X", "Z")
	require.ErrorIs(t, err, ErrUnknownField)

	_, err = ByName[mixed]("hidden")
	require.ErrorIs(t, err, ErrUnknownField)

	_, err = ByName[mixed]("Label")
	require.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = ByName[Point2D]("X", "X")
	require.ErrorIs(t, err, ErrDuplicateField)

	require.Panics(t, func() { MustByName[Point2D]("W") })
}

func TestByNamePoint2D(t *testing.T) {
	s := MustByName[Point2D]("X", "Y")
	p1 := Point2D{1.5, 2.5}
	p2 := Point2D{3.0, 4.0}

	require.Equal(t, Point2D{4.5, 6.5}, s.Add(p1, p2))
	require.Equal(t, Point2D{1.5, 1.5}, s.Sub(p2, p1))
	require.Equal(t, Point2D{4.5, 10.0}, s.Mul(p1, p2))
	require.Equal(t, Point2D{2.0, 1.6}, s.Div(p2, p1))
	require.Equal(t, "(1.5, 2.5)", s.Format(p1))

	tmp := p1
	s.AddAssign(&tmp, p2)
	require.Equal(t, s.Add(p1, p2), tmp)
	tmp = p2
	s.DivAssign(&tmp, p1)
	require.Equal(t, Point2D{2.0, 1.6}, tmp)
	tmp = p2
	s.SubAssign(&tmp, p1)
	require.Equal(t, Point2D{1.5, 1.5}, tmp)
	tmp = p1
	s.MulAssign(&tmp, p2)
	require.Equal(t, Point2D{4.5, 10.0}, tmp)

	require.True(t, s.Equal(p1, Point2D{1.5, 2.5}))
	require.True(t, s.NotEqual(p1, p2))
	require.Equal(t, []string{"X", "Y"}, s.Names())
	require.Equal(t, 2, s.Len())
}

func TestByNameColorIsNotClamped(t *testing.T) {
	s := MustByName[Color]("R", "G", "B", "A")
	got := s.Add(Color{100, 150, 200, 255}, Color{50, 75, 100, 128})
	require.Equal(t, Color{150, 225, 300, 383}, got)
	require.Equal(t, "(150, 225, 300, 383)", s.Format(got))
	require.Equal(t, Color{255, 255, 0, 510}, s.Add(Color{255, 0, 0, 255}, Color{0, 255, 0, 255}))
	require.Panics(t, func() { s.Div(got, Color{1, 0, 1, 1}) })
}

func TestByNameFieldWidths(t *testing.T) {
	s := MustByName[mixed]("Small", "Byte", "Single")
	got := s.Add(mixed{Small: math.MaxInt8, Byte: math.MaxUint8, Single: 0.5, Label: "left", hidden: 7},
		mixed{Small: 1, Byte: 1, Single: 0.25, Label: "right", hidden: 9})
	require.Equal(t, int8(math.MinInt8), got.Small)
	require.Equal(t, uint8(0), got.Byte)
	require.Equal(t, float32(0.75), got.Single)
	// Unlisted fields come from the left operand.
	require.Equal(t, "left", got.Label)
	require.Equal(t, 7, got.hidden)

	require.Equal(t, int8(math.MinInt8), s.Div(mixed{Small: math.MinInt8, Byte: 1, Single: 1}, mixed{Small: -1, Byte: 1, Single: 1}).Small)
	require.Equal(t, uint8(math.MaxUint8), s.Sub(mixed{Byte: 0}, mixed{Byte: 1, Single: 1}).Byte)

	inf := s.Div(mixed{Small: 1, Byte: 1, Single: 1}, mixed{Small: 1, Byte: 1, Single: 0})
	require.True(t, math.IsInf(float64(inf.Single), 1))
}

func TestByNameWide(t *testing.T) {
	s := MustByName[wideStruct](wideNames...)
	s1 := make([]any, len(wideNames))
	s2 := make([]any, len(wideNames))
	for i := range wideNames {
		s1[i], s2[i] = 1, 2
	}
	ones, twos := s.Build(s1), s.Build(s2)
	sum := s.Add(ones, twos)
	for _, v := range s.Project(sum) {
		require.Equal(t, 3, v)
	}
	want := "(" + strings.Repeat("3, ", 63) + "3)"
	require.Equal(t, want, s.Format(sum))
	require.Equal(t, 64, s.Len())
}

func TestByNameOrdering(t *testing.T) {
	s := MustByName[Color]("R", "G", "B", "A")
	r := rand.New(rand.NewSource(4))
	randColor := func() Color { return Color{r.Intn(3), r.Intn(3), r.Intn(3), r.Intn(3)} }
	for range 500 {
		a, b := randColor(), randColor()
		want := lexLess([]int{a.R, a.G, a.B, a.A}, []int{b.R, b.G, b.B, b.A})
		require.Equal(t, want, s.Less(a, b), "%v < %v", a, b)
		require.Equal(t, !s.Less(b, a), s.LessEqual(a, b))
		require.Equal(t, s.Less(b, a), s.Greater(a, b))
		require.Equal(t, !s.Less(a, b), s.GreaterEqual(a, b))
		require.Equal(t, a == b, s.Equal(a, b))
		require.Equal(t, !s.Equal(a, b), s.NotEqual(a, b))
		require.Equal(t, compareFromLess(s.Less, a, b), s.Compare(a, b))
	}
}

func TestByNameNaN(t *testing.T) {
	s := MustByName[Point2D]("X", "Y")
	a := Point2D{math.NaN(), 1}
	b := Point2D{math.NaN(), 2}
	// NaN neither precedes nor follows, so the second field decides.
	require.True(t, s.Less(a, b))
	require.False(t, s.Equal(a, a))
}

func TestByNameRoundTrip(t *testing.T) {
	s := MustByName[Color]("R", "G", "B", "A")
	r := rand.New(rand.NewSource(5))
	for range 100 {
		c := Color{r.Int(), r.Int(), r.Int(), r.Int()}
		require.Equal(t, c, s.Build(s.Project(c)))
	}
}

func TestByNameUsesValueFormatting(t *testing.T) {
	s := MustByName[reading]("Temp", "Hour")
	require.Equal(t, "(21.5C, 9)", s.Format(reading{Temp: 21.5, Hour: 9}))
}
