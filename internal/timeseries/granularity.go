package timeseries

// Granularity is the requested sampling resolution of a series.
type Granularity string

const (
	GranularityDaily  Granularity = "daily"
	GranularityMinute Granularity = "minute"
)

// Valid reports whether the granularity is one of the supported units.
func (g Granularity) Valid() bool {
	return g == GranularityDaily || g == GranularityMinute
}

// Format selects the upstream and result representation.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatCSV
}
