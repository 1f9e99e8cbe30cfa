package rates

// MaxAverageRate is the highest average rate a record may have and still be
// emitted.
const MaxAverageRate = 30.0

// AverageRate returns the mean of every negotiated rate across all groups,
// in input order. ok is false when the groups hold no prices at all.
// NaN and infinities are not special-cased.
func AverageRate(groups []RateGroup) (avg float64, ok bool) {
	var sum float64
	var count int
	for _, g := range groups {
		for _, p := range g.NegotiatedPrices {
			sum += p.NegotiatedRate
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// AverageRate returns the record's mean negotiated rate.
func (r Record) AverageRate() (float64, bool) {
	return AverageRate(r.NegotiatedRates)
}

// WithinThreshold reports whether avg passes the rate filter. Only averages
// strictly above MaxAverageRate are rejected, so NaN passes.
func WithinThreshold(avg float64) bool {
	return !(avg > MaxAverageRate)
}

// Reduce returns the record's average rate and whether the record should be
// emitted at all.
func Reduce(r Record) (float64, bool) {
	avg, ok := r.AverageRate()
	if !ok || !WithinThreshold(avg) {
		return 0, false
	}
	return avg, true
}
