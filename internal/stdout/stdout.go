// Package stdout extracts values from the DIF3D printed output that the
// binary interface files do not carry, currently the region peak fluxes of
// the REGION TOTALS edit.
package stdout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
	"github.com/terrapower/armicontrib-dif3d/internal/region"
)

var (
	// SectionStart is the exact line opening the region totals edit.
	SectionStart = "0" + strings.Repeat(" ", 55) + "REGION TOTALS"
	// SectionEnd prefixes the line that follows the region totals edit.
	SectionEnd = "0" + strings.Repeat(" ", 40) + "REACTION INTEGRALS IN DIRECTION OF CALCULATION"
)

const (
	headerTag  = "     REGION"
	peakTag    = " PEAK FLUX"
	section    = "REGION TOTALS"
	maxLineLen = 1 << 20
)

// PeakFluxes holds every peak flux value printed per region label.
type PeakFluxes struct {
	order  []string
	values map[string][]float64
}

func newPeakFluxes() *PeakFluxes {
	return &PeakFluxes{values: make(map[string][]float64)}
}

func (p *PeakFluxes) add(label string, v float64) {
	if _, ok := p.values[label]; !ok {
		p.order = append(p.order, label)
	}
	p.values[label] = append(p.values[label], v)
}

// Labels returns region labels in the order they first appear.
func (p *PeakFluxes) Labels() []string { return append([]string(nil), p.order...) }

// Len returns the number of labelled regions.
func (p *PeakFluxes) Len() int { return len(p.order) }

// Values returns every value printed for label.
func (p *PeakFluxes) Values(label string) []float64 {
	return append([]float64(nil), p.values[label]...)
}

// Peak returns the largest value printed for label.
func (p *PeakFluxes) Peak(label string) (float64, bool) {
	vals, ok := p.values[label]
	if !ok {
		return 0, false
	}
	peak := vals[0]
	for _, v := range vals[1:] {
		peak = max(peak, v)
	}
	return peak, true
}

// Map returns the peak of every region by label.
func (p *PeakFluxes) Map() map[string]float64 {
	out := make(map[string]float64, len(p.order))
	for _, l := range p.order {
		out[l], _ = p.Peak(l)
	}
	return out
}

// Read parses the output file at path through dm.
func Read(dm diskmanager.DiskManager, path string) (*PeakFluxes, error) {
	if !dm.Exists(path) {
		return nil, record.NotFound(path)
	}
	fh, err := dm.Open(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer dm.Close(path)

	info, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return Parse(filepath.Base(path), io.NewSectionReader(fh, 0, info.Size()))
}

// Parse scans r for the region totals edit and collects its PEAK FLUX rows.
// Each row is zipped with the labels of the most recent REGION row. The edit
// wraps into column batches, so a label may be printed more than once; every
// value is kept.
func Parse(name string, r io.Reader) (*PeakFluxes, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	var offset int64
	line := 0
	fail := func(reason string) error {
		return &record.FormatError{
			File:   name,
			Record: section,
			Field:  fmt.Sprintf("line %d", line),
			Offset: offset,
			Reason: reason,
		}
	}

	found := false
	for sc.Scan() {
		line++
		offset += int64(len(sc.Bytes())) + 1
		if strings.TrimRight(sc.Text(), "\r") == SectionStart {
			found = true
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", name, err)
	}
	if !found {
		return nil, fail("region totals section not found")
	}

	out := newPeakFluxes()
	var active []string
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(text, SectionEnd):
			return out, nil
		case strings.HasPrefix(text, headerTag):
			labels, err := region.ColumnLabels(text)
			if err != nil {
				return nil, fail(err.Error())
			}
			active = labels
		case strings.HasPrefix(text, peakTag):
			if active == nil {
				return nil, fail("PEAK FLUX row precedes any REGION row")
			}
			fields := strings.Fields(text)[2:]
			if len(fields) > len(active) {
				return nil, fail(fmt.Sprintf("%d values for %d region labels", len(fields), len(active)))
			}
			for i, f := range fields {
				v, err := ParseFloat(f)
				if err != nil {
					return nil, fail(fmt.Sprintf("value %q for region %s: %v", f, active[i], err))
				}
				out.add(active[i], v)
			}
		}
		offset += int64(len(sc.Bytes())) + 1
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", name, err)
	}
	return out, nil
}

// ParseFloat reads a printed Fortran real. Besides plain decimal and E
// notation it accepts D exponents and the three-digit exponent form that
// drops the letter, such as 1.2345-105.
func ParseFloat(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	t := strings.Replace(strings.ToUpper(s), "D", "E", 1)
	if !strings.Contains(t, "E") {
		if i := strings.LastIndexAny(t, "+-"); i > 0 {
			t = t[:i] + "E" + t[i:]
		}
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
