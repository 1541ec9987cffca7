package stdout_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager/mockdm"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
	"github.com/terrapower/armicontrib-dif3d/internal/stdout"
)

const (
	batch1 = "     REGION         1  A1001A     2  A1001B     3  RADREF\n"
	peak1  = " PEAK FLUX     1.0000E+15  2.5000E+15  3.0000E+13\n"
	batch2 = "     REGION         3  RADREF     4  A2001A\n"
	peak2  = " PEAK FLUX     3.5000E+13  1.2345-105\n"
	wide   = "     REGION    10009  A9017710010  A9017810011  A9016A10012  A9016B10013  A9016C10014  A9016D10015  A9016E10016  A9016F10017  A9016G\n"
	wideV  = " PEAK FLUX     1.0 2.0 3.0 4.0 5.0 6.0 7.0 8.0 9.0\n"
)

func output(body ...string) string {
	var b strings.Builder
	b.WriteString(" DIF3D OUTPUT\n")
	b.WriteString(stdout.SectionStart + "\n")
	b.WriteString("0\n")
	for _, l := range body {
		b.WriteString(l)
	}
	b.WriteString(stdout.SectionEnd + "  (CONTINUED)\n")
	b.WriteString(" PEAK FLUX     9.9E+99\n")
	return b.String()
}

func TestParse_AccumulatesAcrossBatches(t *testing.T) {
	p, err := stdout.Parse("run.out", strings.NewReader(output(batch1, " TOTAL FLUX    1 2 3\n", peak1, batch2, peak2)))
	require.NoError(t, err)

	assert.Equal(t, []string{"A1001A", "A1001B", "RADREF", "A2001A"}, p.Labels())
	assert.Equal(t, []float64{3.0e13, 3.5e13}, p.Values("RADREF"))

	v, ok := p.Peak("RADREF")
	require.True(t, ok)
	assert.Equal(t, 3.5e13, v)

	v, ok = p.Peak("A2001A")
	require.True(t, ok)
	assert.InEpsilon(t, 1.2345e-105, v, 1e-12)

	_, ok = p.Peak("NOPE")
	assert.False(t, ok)
	assert.Len(t, p.Map(), 4)
}

func TestParse_FiveDigitRegions(t *testing.T) {
	p, err := stdout.Parse("run.out", strings.NewReader(output(wide, wideV)))
	require.NoError(t, err)
	require.Equal(t, 9, p.Len())
	v, ok := p.Peak("A9016F")
	require.True(t, ok)
	assert.Equal(t, 8.0, v)
}

func TestParse_Errors(t *testing.T) {
	for name, text := range map[string]string{
		"no section":         " DIF3D OUTPUT\n PEAK FLUX 1.0\n",
		"data before header": output(peak1),
		"too many values":    output(batch2, peak1),
		"bad number":         output(batch2, " PEAK FLUX     abc 1.0\n"),
		"bad header":         output("     REGION         1\n"),
	} {
		_, err := stdout.Parse("run.out", strings.NewReader(text))
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, record.ErrFormat), name)
		var fe *record.FormatError
		require.ErrorAs(t, err, &fe, name)
		assert.Equal(t, "run.out", fe.File, name)
	}
}

func TestParse_SectionMarkerMustMatchExactly(t *testing.T) {
	text := strings.Replace(output(batch1, peak1), stdout.SectionStart, stdout.SectionStart+" X", 1)
	_, err := stdout.Parse("run.out", strings.NewReader(text))
	assert.True(t, errors.Is(err, record.ErrFormat))
}

func TestParse_WindowsLineEndings(t *testing.T) {
	text := strings.ReplaceAll(output(batch1, peak1), "\n", "\r\n")
	p, err := stdout.Parse("run.out", strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
}

func TestRead(t *testing.T) {
	dm := mockdm.NewMockDiskManager()
	dm.Put("/run/case.out", []byte(output(batch1, peak1)))

	p, err := stdout.Read(dm, "/run/case.out")
	require.NoError(t, err)
	v, _ := p.Peak("A1001B")
	assert.Equal(t, 2.5e15, v)

	_, err = stdout.Read(dm, "/run/missing.out")
	assert.True(t, errors.Is(err, record.ErrNotFound))
}

func TestParseFloat(t *testing.T) {
	for in, want := range map[string]float64{
		"1.5":        1.5,
		"2.0E+03":    2000,
		"2.0D+03":    2000,
		"1.2345-105": 1.2345e-105,
		"6.02+123":   6.02e123,
		"-4.5-101":   -4.5e-101,
	} {
		got, err := stdout.ParseFloat(in)
		require.NoError(t, err, in)
		assert.InEpsilon(t, want, got, 1e-12, in)
	}
	for _, bad := range []string{"", "abc", "1.0-", "-"} {
		_, err := stdout.ParseFloat(bad)
		assert.Error(t, err, bad)
	}
}
