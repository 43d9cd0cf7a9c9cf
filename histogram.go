// Package csvhist loads a column of delimited data and counts its values in equal-width buckets.
package csvhist

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// DefaultBins is a default number of buckets.
const DefaultBins = 20

// Histogram counts values in equal-width buckets.
type Histogram struct {
	// Bucket keeps observed bounds, total count and sum of counted values.
	Bucket

	// Buckets is a list of equal-width buckets spanning observed bounds.
	Buckets []Bucket

	// Skipped is a number of missing (NaN or infinite) values that were not counted.
	Skipped int

	// PrintSum enables printing of a summary value in a bucket.
	PrintSum bool
}

// Bucket keeps count of values in boundaries.
type Bucket struct {
	Min   float64
	Max   float64
	Count int
	Sum   float64
}

// New counts values in a number of equal-width buckets.
//
// Buckets span [min, max] of values, each bucket is half-open except the last one,
// so that max value is counted in the last bucket. If all values are equal,
// the range is widened by 0.5 in both directions.
//
// NaN and infinite values are skipped, ErrEmptyData is returned if nothing is left.
func New(values []float64, bins int) (*Histogram, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBinCount, bins)
	}

	h := &Histogram{}
	defined := make([]float64, 0, len(values))

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			h.Skipped++

			continue
		}

		defined = append(defined, v)
	}

	if len(defined) == 0 {
		return nil, fmt.Errorf("%w: none of %d values is a number", ErrEmptyData, len(values))
	}

	h.Min, h.Max = stats.Bounds(defined)

	lo, hi := h.Min, h.Max
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	// Widening is lost to rounding for large magnitudes.
	if lo == hi {
		lo = math.Max(math.Nextafter(lo, math.Inf(-1)), -math.MaxFloat64)
		hi = math.Min(math.Nextafter(hi, math.Inf(1)), math.MaxFloat64)
	}

	n := float64(bins)

	width := (hi - lo) / n
	if math.IsInf(width, 0) {
		width = hi/n - lo/n
	}

	h.Buckets = make([]Bucket, bins)
	for i := range h.Buckets {
		h.Buckets[i].Min = edge(lo, hi, width, i, bins)
		h.Buckets[i].Max = edge(lo, hi, width, i+1, bins)
	}

	h.Buckets[bins-1].Max = hi

	for _, v := range defined {
		h.add(v, lo, width)
	}

	return h, nil
}

// edge returns i-th boundary of n buckets spanning [lo, hi].
func edge(lo, hi, width float64, i, n int) float64 {
	e := lo + float64(i)*width
	if math.IsInf(e, 0) {
		t := float64(i) / float64(n)
		e = lo*(1-t) + hi*t
	}

	return e
}

// index returns bucket of v, buckets are half-open except the last one.
func (h *Histogram) index(v, lo, width float64) int {
	last := len(h.Buckets) - 1

	f := (v - lo) / width
	if math.IsInf(v-lo, 0) {
		f = v/width - lo/width
	}

	i := last

	switch {
	case math.IsNaN(f) || f < 0:
		i = 0
	case f < float64(last):
		i = int(f)
	}

	// Index arithmetic may disagree with stored edges, zero width buckets are empty.
	for i > 0 && v < h.Buckets[i].Min {
		i--
	}

	for i < last && v >= h.Buckets[i].Max {
		i++
	}

	return i
}

func (h *Histogram) add(v, lo, width float64) {
	i := h.index(v, lo, width)

	h.Buckets[i].Count++
	h.Buckets[i].Sum += v

	h.Count++
	h.Sum += v
}

// Edges returns bucket boundaries, one more than the number of buckets.
func (h *Histogram) Edges() []float64 {
	if len(h.Buckets) == 0 {
		return nil
	}

	edges := make([]float64, 0, len(h.Buckets)+1)
	for _, b := range h.Buckets {
		edges = append(edges, b.Min)
	}

	return append(edges, h.Buckets[len(h.Buckets)-1].Max)
}

// Width returns bucket width.
func (h *Histogram) Width() float64 {
	if len(h.Buckets) == 0 {
		return 0
	}

	lo, hi := h.Buckets[0].Min, h.Buckets[len(h.Buckets)-1].Max
	n := float64(len(h.Buckets))

	if w := (hi - lo) / n; !math.IsInf(w, 0) {
		return w
	}

	return hi/n - lo/n
}

// Mean returns average of counted values.
func (h *Histogram) Mean() float64 {
	if h.Count == 0 {
		return math.NaN()
	}

	return h.Sum / float64(h.Count)
}

func isInt(f float64) bool {
	return f == float64(int(f))
}

// String renders buckets value.
func (h *Histogram) String() string {
	if len(h.Buckets) == 0 {
		return ""
	}

	hasIntBuckets := true

	for _, b := range h.Buckets {
		if !isInt(b.Min) || !isInt(b.Max) || !isInt(b.Sum) {
			hasIntBuckets = false

			break
		}
	}

	bucketFmt := "%.2f"
	statsFmt := "[%*.2f %*.2f] %*d %5.2f%%"
	sumFmt := " %*.2f"

	if hasIntBuckets {
		bucketFmt = "%.0f"
		statsFmt = "[%*.0f %*.0f] %*d %5.2f%%"
		sumFmt = " %*.0f"
	}

	nLen := 0

	for _, e := range h.Edges() {
		if l := printfLen(bucketFmt, e); l > nLen {
			nLen = l
		}
	}

	cLen := printfLen("%d", h.Count)
	sLen := 0

	var res strings.Builder

	fmt.Fprintf(&res, "[%*s %*s] %*s total%%", nLen, "min", nLen, "max", cLen, "cnt")

	if h.PrintSum {
		sLen = printfLen(bucketFmt, h.Sum)
		fmt.Fprintf(&res, " %*s", sLen, "sum")
	}

	fmt.Fprintf(&res, " (total count: %d", h.Count)

	if h.Skipped > 0 {
		fmt.Fprintf(&res, ", skipped: %d", h.Skipped)
	}

	fmt.Fprintln(&res, ")")

	for _, b := range h.Buckets {
		percent := float64(100*b.Count) / float64(h.Count)

		fmt.Fprintf(&res, statsFmt, nLen, b.Min, nLen, b.Max, cLen, b.Count, percent)

		if h.PrintSum {
			fmt.Fprintf(&res, sumFmt, sLen, b.Sum)
		}

		if dots := strings.Repeat(".", int(percent)); len(dots) > 0 {
			fmt.Fprint(&res, " ", dots)
		}

		fmt.Fprintln(&res)
	}

	return res.String()
}

func printfLen(format string, val interface{}) int {
	s := fmt.Sprintf(format, val)

	return len(s)
}

// covering returns index of the first bucket where cumulative count reaches percent of values, or -1.
func (h *Histogram) covering(percent float64) int {
	target := int(percent * float64(h.Count) / 100)
	count := 0

	for i, b := range h.Buckets {
		if count += b.Count; count >= target {
			return i
		}
	}

	return -1
}

// Percentile returns maximum boundary for a fraction of values.
func (h *Histogram) Percentile(percent float64) float64 {
	if i := h.covering(percent); i >= 0 {
		return h.Buckets[i].Max
	}

	return h.Max
}

// PercentileSum returns maximum boundary for a sum of smaller values.
func (h *Histogram) PercentileSum(percent float64) float64 {
	i := h.covering(percent)
	if i < 0 {
		return h.Sum
	}

	sum := 0.0
	for _, b := range h.Buckets[:i+1] {
		sum += b.Sum
	}

	return sum
}

// PercentileString renders one line per percent with Percentile and PercentileSum.
func (h *Histogram) PercentileString(percents ...float64) string {
	var res strings.Builder

	for _, p := range percents {
		v, sum := h.Percentile(p), h.PercentileSum(p)

		format := "%.1f%% < %.2f, sum < %.2f\n"
		if isInt(v) {
			format = "%.1f%% < %.0f, sum < %.0f\n"
		}

		fmt.Fprintf(&res, format, p, v, sum)
	}

	return res.String()
}
