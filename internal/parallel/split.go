package parallel

// Span is a half-open range [Begin, End) of work items.
type Span struct {
	Begin, End int
}

// Len returns the number of items in the span.
func (s Span) Len() int { return s.End - s.Begin }

// Split divides count items into n contiguous spans of count/n items. The
// first span also takes the remainder, so spans never overlap and always
// cover [0, count). n < 1 is treated as 1.
func Split(count, n int) []Span {
	if n < 1 {
		n = 1
	}
	if count < 0 {
		count = 0
	}
	per := count / n
	spans := make([]Span, n)
	end := per + count%n
	spans[0] = Span{0, end}
	for i := 1; i < n; i++ {
		spans[i] = Span{end, end + per}
		end += per
	}
	return spans
}
