package segments

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbird/openbird/audio"
)

func tenSecondClip(t *testing.T) *audio.Buffer {
	t.Helper()
	buf, err := audio.FromSamples(make([]float64, 10*1000), 1000)
	require.NoError(t, err)
	return buf
}

func TestSplitNoOverlap(t *testing.T) {
	segs, err := Split(tenSecondClip(t), 2, 0)
	require.NoError(t, err)
	require.Len(t, segs, 5)

	for i, seg := range segs {
		assert.InDelta(t, float64(i*2), seg.Start, 1e-9)
		assert.InDelta(t, float64(i*2+2), seg.End, 1e-9)
		assert.Equal(t, 2000, seg.Buffer.Length())
		assert.Equal(t, 1000, seg.Buffer.SampleRate())
	}
}

func TestSplitWithOverlap(t *testing.T) {
	segs, err := Split(tenSecondClip(t), 3, 1)
	require.NoError(t, err)

	// Starts at 0, 2, 4, 6; 8+3 exceeds the 10s clip.
	require.Len(t, segs, 4)
	assert.InDelta(t, 6.0, segs[3].Start, 1e-9)
	assert.InDelta(t, 9.0, segs[3].End, 1e-9)
}

func TestSplitDropsShortRemainder(t *testing.T) {
	segs, err := Split(tenSecondClip(t), 4, 0)
	require.NoError(t, err)
	require.Len(t, segs, 2)
}

func TestSplitValidation(t *testing.T) {
	clip := tenSecondClip(t)

	_, err := Split(clip, 0, 0)
	assert.Error(t, err)

	_, err = Split(clip, -1, 0)
	assert.Error(t, err)

	_, err = Split(clip, 2, 2)
	assert.Error(t, err)

	_, err = Split(clip, 2, -0.5)
	assert.Error(t, err)
}

func TestSplitShorterThanDuration(t *testing.T) {
	segs, err := Split(tenSecondClip(t), 15, 0)
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestManifestRoundTrip(t *testing.T) {
	rows := []Row{
		{Clip: "out/a_000.00_005.00.wav", Source: "in/a.wav", Start: 0, End: 5, Labels: []string{"WOTH"}},
		{Clip: "out/a_004.00_009.00.wav", Source: "in/a.wav", Start: 4, End: 9, Labels: []string{"WOTH", "SWTH"}},
		{Clip: "out/b_000.00_005.00.wav", Source: "in/b.wav", Start: 0, End: 5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, rows))

	got, err := ReadManifest(&buf)
	require.NoError(t, err)
	require.Equal(t, rows, got)
}

func TestReadManifestRejectsBadRows(t *testing.T) {
	_, err := ReadManifest(bytes.NewBufferString(""))
	assert.Error(t, err)

	bad := "Clip,Source,Start,End,Labels\nclip.wav,src.wav,zero,5,\n"
	_, err = ReadManifest(bytes.NewBufferString(bad))
	assert.Error(t, err)
}

func TestExpandBinary(t *testing.T) {
	rows := []Row{
		{Clip: "a.wav", Labels: []string{"WOTH|SWTH"}},
		{Clip: "b.wav", Labels: []string{"WOTH", "SWTH", "BTNW"}},
		{Clip: "c.wav", Labels: []string{"OVEN"}},
		{Clip: "d.wav"},
	}

	got := ExpandBinary(rows)
	require.Len(t, got, 6)

	assert.Equal(t, []string{"WOTH|SWTH"}, got[0].Labels)
	assert.Equal(t, []string{"WOTH"}, got[1].Labels)
	assert.Equal(t, []string{"SWTH"}, got[2].Labels)
	assert.Equal(t, []string{"BTNW"}, got[3].Labels)
	assert.Equal(t, "b.wav", got[1].Clip)
	assert.Equal(t, []string{"OVEN"}, got[4].Labels)
	assert.Nil(t, got[5].Labels)
}
