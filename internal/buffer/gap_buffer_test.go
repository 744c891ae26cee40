package buffer

import (
	"strings"
	"testing"

	"github.com/bethropolis/jotter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants asserts the layout invariants every operation must preserve.
func checkInvariants(t *testing.T, g *GapBuffer) {
	t.Helper()
	m := g.Metrics()
	require.Equal(t, m.GapStart, m.Cursor, "cursor must sit at the gap")
	require.True(t, 0 <= m.GapStart && m.GapStart <= m.GapEnd && m.GapEnd <= m.Capacity,
		"gap bounds out of order: %+v", m)
	require.Equal(t, m.Capacity-m.GapSize, m.TextLength)
}

func TestScenarioTypeMoveDelete(t *testing.T) {
	g := NewGapBuffer(DefaultCapacity)
	g.Insert('h')
	g.Insert('i')
	assert.Equal(t, "hi", g.Text())
	assert.Equal(t, 2, g.Cursor())

	g.MoveCursor(0)
	assert.Equal(t, 0, g.Cursor())
	assert.Equal(t, "hi", g.Text())

	require.True(t, g.DeleteForward())
	assert.Equal(t, "i", g.Text())
	checkInvariants(t, g)
}

func TestSetTextRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"a",
		"hello world",
		"  leading and trailing  \n\n",
		"ünïcödé ✓ 日本語 🙂",
		strings.Repeat("long line ", 200),
	}
	for _, text := range tests {
		g := NewGapBuffer(4)
		g.SetText(text)
		assert.Equal(t, text, g.Text())
		assert.Equal(t, 0, g.Cursor(), "SetText leaves the cursor at 0")
		checkInvariants(t, g)
	}
}

func TestInsertDeleteInverse(t *testing.T) {
	g := NewGapBufferFromString("abcdef")
	for _, pos := range []int{0, 3, 6} {
		g.MoveCursor(pos)
		before, cursor := g.Text(), g.Cursor()

		g.Insert('X')
		require.True(t, g.Delete())

		assert.Equal(t, before, g.Text())
		assert.Equal(t, cursor, g.Cursor())
		checkInvariants(t, g)
	}
}

func TestDeleteAtBoundaries(t *testing.T) {
	g := NewGapBufferFromString("ab")

	assert.False(t, g.Delete(), "nothing before the cursor")
	assert.Equal(t, "ab", g.Text())

	g.MoveCursor(2)
	assert.False(t, g.DeleteForward(), "nothing after the cursor")
	assert.Equal(t, "ab", g.Text())

	assert.True(t, g.Delete())
	assert.True(t, g.Delete())
	assert.False(t, g.Delete())
	assert.Equal(t, "", g.Text())
	checkInvariants(t, g)
}

func TestGrowthKeepsOrder(t *testing.T) {
	const capacity = 8
	g := NewGapBuffer(capacity)

	var want strings.Builder
	for i := 0; i < capacity+1; i++ {
		r := rune('a' + i)
		g.Insert(r)
		want.WriteRune(r)
		checkInvariants(t, g)
	}
	assert.Equal(t, want.String(), g.Text())
	assert.Equal(t, capacity*2, g.Metrics().Capacity)
}

func TestGrowthWithTextAfterCursor(t *testing.T) {
	g := NewGapBuffer(4)
	g.InsertString("wxyz")
	g.MoveCursor(2)
	require.Equal(t, 0, g.Metrics().GapSize)

	g.Insert('-')
	assert.Equal(t, "wx-yz", g.Text())
	assert.Equal(t, 3, g.Cursor())
	checkInvariants(t, g)

	m := g.Metrics()
	assert.Equal(t, 8, m.Capacity)
	assert.Equal(t, 6, m.GapEnd, "tail text is kept at the end of the new storage")
}

func TestMoveCursorKeepsText(t *testing.T) {
	g := NewGapBufferFromString("the quick brown fox")
	text := g.Text()

	for _, pos := range []int{5, 19, 0, 10, 10, 3, 18, 1} {
		g.MoveCursor(pos)
		assert.Equal(t, pos, g.Cursor())
		assert.Equal(t, text, g.Text())
		checkInvariants(t, g)
	}
}

func TestMoveCursorClamps(t *testing.T) {
	g := NewGapBufferFromString("abc")

	g.MoveCursor(-5)
	assert.Equal(t, 0, g.Cursor())

	g.MoveCursor(99)
	assert.Equal(t, 3, g.Cursor())
	assert.Equal(t, "abc", g.Text())
	checkInvariants(t, g)
}

func TestMoveCursorAcrossSmallGap(t *testing.T) {
	// Gap narrower than the distance moved: the shifted regions overlap.
	g := NewGapBuffer(10)
	g.InsertString("0123456789")
	g.MoveCursor(9)
	require.True(t, g.Delete())
	require.Equal(t, 1, g.Metrics().GapSize)

	g.MoveCursor(1)
	assert.Equal(t, "012345679", g.Text())
	g.MoveCursor(8)
	assert.Equal(t, "012345679", g.Text())
	checkInvariants(t, g)
}

func TestEditInMiddle(t *testing.T) {
	g := NewGapBufferFromString("hello world")
	g.MoveCursor(5)
	g.InsertString(",")
	g.MoveCursor(len("hello, world"))
	g.InsertString("!")
	g.MoveCursor(0)
	require.True(t, g.DeleteForward())
	g.Insert('H')

	assert.Equal(t, "Hello, world!", g.Text())
	assert.Equal(t, 1, g.Cursor())
	checkInvariants(t, g)
}

func TestPositionTracksEdits(t *testing.T) {
	g := NewGapBuffer(4)
	check := func() {
		t.Helper()
		line, col := g.Position()
		want := types.OffsetToPosition([]rune(g.Text()), g.Cursor())
		require.Equal(t, want, types.Position{Line: line, Col: col}, "text %q cursor %d", g.Text(), g.Cursor())
	}

	g.InsertString("one\ntwo\n\nfour")
	check()
	for _, pos := range []int{0, 4, 3, 8, 9, 14, 2, 14} {
		g.MoveCursor(pos)
		check()
	}

	g.MoveCursor(8)
	require.True(t, g.Delete(), "joins lines two and three")
	check()
	require.True(t, g.DeleteForward())
	check()
	g.Insert('\n')
	check()
	g.MoveCursor(0)
	check()

	g.SetText("a\nb\nc")
	check()
	g.MoveCursor(5)
	line, col := g.Position()
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	g.Clear()
	check()
}

func TestClear(t *testing.T) {
	g := NewGapBufferFromString(strings.Repeat("x", 500))
	g.Clear()

	assert.Equal(t, "", g.Text())
	assert.Equal(t, Metrics{Capacity: DefaultCapacity, GapEnd: DefaultCapacity, GapSize: DefaultCapacity}, g.Metrics())
}

func TestMetrics(t *testing.T) {
	g := NewGapBufferFromString("abcd")
	g.MoveCursor(1)

	m := g.Metrics()
	assert.Equal(t, 4+setTextSlack, m.Capacity)
	assert.Equal(t, 1, m.GapStart)
	assert.Equal(t, 1+setTextSlack, m.GapEnd)
	assert.Equal(t, setTextSlack, m.GapSize)
	assert.Equal(t, 4, m.TextLength)
	assert.Equal(t, 1, m.Cursor)
}

func TestString(t *testing.T) {
	g := NewGapBufferFromString(strings.Repeat("a", 60))
	s := g.String()
	assert.Contains(t, s, strings.Repeat("a", 50))
	assert.NotContains(t, s, strings.Repeat("a", 51))
	assert.Contains(t, s, "cursor=0")
}
