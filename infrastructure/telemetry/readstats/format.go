package readstats

import "fmt"

var binaryUnits = []string{"B", "KiB", "MiB", "GiB"}

func FormatRate(bytesPerSecond uint64) string {
	return formatBinary(float64(bytesPerSecond)) + "/s"
}

func FormatTotal(bytes uint64) string {
	return formatBinary(float64(bytes))
}

func (s Snapshot) String() string {
	return fmt.Sprintf("reads=%d bytes=%s rate=%s timeouts=%d expired=%d failures=%d",
		s.Reads, FormatTotal(s.Bytes), FormatRate(s.Rate), s.Timeouts, s.Expired, s.Failures)
}

func formatBinary(value float64) string {
	unit := 0
	for value >= 1024 && unit < len(binaryUnits)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%.0f %s", value, binaryUnits[unit])
	}
	return fmt.Sprintf("%.1f %s", value, binaryUnits[unit])
}
