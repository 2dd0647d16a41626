package billing

import "time"

// FlowDirection is the direction of energy flow for one interval reading.
type FlowDirection string

const (
	// FlowImport is energy drawn from the grid.
	FlowImport FlowDirection = "import"
	// FlowExport is energy fed into the grid.
	FlowExport FlowDirection = "export"
)

// Reading is one smart-meter interval measurement. EndTime is the interval
// end in local clock time with no zone; the meter data carries none.
// Readings are built once by the parsing adapter and never mutated.
type Reading struct {
	MPRN        string
	MeterSerial string
	Direction   FlowDirection
	ValueKWh    float64
	EndTime     time.Time
}

// NewReading validates and constructs a reading. The adapter drops the source
// row when this fails; the pricing engine never sees an invalid reading.
func NewReading(mprn, meterSerial string, direction FlowDirection, valueKWh float64, endTime time.Time) (Reading, error) {
	if direction != FlowImport && direction != FlowExport {
		return Reading{}, ErrUnknownDirection
	}
	if valueKWh < 0 {
		return Reading{}, ErrNegativeReadingValue
	}
	if endTime.IsZero() {
		return Reading{}, ErrInvalidReadingTime
	}
	return Reading{
		MPRN:        mprn,
		MeterSerial: meterSerial,
		Direction:   direction,
		ValueKWh:    valueKWh,
		EndTime:     endTime,
	}, nil
}
