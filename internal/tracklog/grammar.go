package tracklog

import (
	"bytes"
	"strings"
	"time"
)

// Record body widths, excluding the CR LF terminator.
const (
	headerLen = 78
	fixLen    = 30
	resyncLen = 14
)

// Lat/lon are transferred in hundredths of minutes of arc.
const coordScale = 6000.0

// Header carries the session metadata from the opening @TN record. The
// record also packs flight statistics (height deltas, climb/sink rates, max
// TAS, distance); those fields are validated for shape so a corrupted header
// is rejected, but their values are not retained.
type Header struct {
	SerialNumber    uint
	SoftwareVersion string
	RecordedAt      time.Time
	UTCOffset       time.Duration
	TakeoffLocation string
}

type fixRecord struct {
	lat       float64
	lon       float64
	elevation int
}

type resyncRecord struct {
	hour, min, sec int
}

func splitCRLF(line []byte) ([]byte, bool) {
	n := len(line)
	if n < 2 || line[n-2] != '\r' || line[n-1] != '\n' {
		return nil, false
	}
	return line[:n-2], true
}

// parseHeader matches the @TN header record in its entirety.
//
// Layout (fixed width, fields adjacent):
//
//	@TN  literal
//	1    polare code 0-7
//	1    reserved
//	4    hex serial number
//	2    software version digits
//	2    reserved
//	2    hex barogram index
//	10   flight date / takeoff time digits (YYMMDDHHMM)
//	4    landing time digits
//	2    UTC offset in minutes
//	11   takeoff location, right-padded ASCII
//	6x4  hex height statistics
//	2+2  hex max climb / max sink
//	2    reserved
//	2    hex max TAS
//	4    hex distance
func parseHeader(line []byte) (Header, bool) {
	body, ok := splitCRLF(line)
	if !ok || len(body) != headerLen {
		return Header{}, false
	}
	if !bytes.HasPrefix(body, []byte("@TN")) {
		return Header{}, false
	}
	if body[3] < '0' || body[3] > '7' {
		return Header{}, false
	}

	serial, ok := hexVal(body[5:9])
	if !ok {
		return Header{}, false
	}
	if !allDigits(body[9:11]) {
		return Header{}, false
	}
	if _, ok := hexVal(body[13:15]); !ok {
		return Header{}, false
	}
	if !allDigits(body[15:25]) || !allDigits(body[25:29]) {
		return Header{}, false
	}
	offset, ok := decVal(body[29:31])
	if !ok {
		return Header{}, false
	}
	if !printableASCII(body[31:42]) {
		return Header{}, false
	}
	for _, f := range [...][2]int{{42, 46}, {46, 50}, {50, 54}, {54, 58}, {58, 62}, {62, 66}, {66, 68}, {68, 70}, {72, 74}, {74, 78}} {
		if _, ok := hexVal(body[f[0]:f[1]]); !ok {
			return Header{}, false
		}
	}

	return Header{
		SerialNumber:    uint(serial),
		SoftwareVersion: string(body[9:11]),
		RecordedAt:      headerTime(body[15:25]),
		UTCOffset:       time.Duration(offset) * time.Minute,
		TakeoffLocation: strings.TrimRight(string(body[31:42]), " "),
	}, true
}

// headerTime reads the 10-digit field as five 2-digit components: year
// (2000-based), month, day, hour, minute. Seconds are not transferred and
// start at zero. The value is the recorder's local wall clock, kept naive.
func headerTime(d []byte) time.Time {
	yy := int(d[0]-'0')*10 + int(d[1]-'0')
	mm := int(d[2]-'0')*10 + int(d[3]-'0')
	dd := int(d[4]-'0')*10 + int(d[5]-'0')
	hh := int(d[6]-'0')*10 + int(d[7]-'0')
	mi := int(d[8]-'0')*10 + int(d[9]-'0')
	return time.Date(2000+yy, time.Month(mm), dd, hh, mi, 0, 0, time.UTC)
}

// parseFix matches one flight-data record: 6 hex lat, 6 hex lon (hundredths
// of minutes), 4 hex elevation meters, then vertical speed, TAS, ground
// speed, course and temperature fields kept only for validation, 2 reserved
// characters and the trailing flag nibble. The flag nibble carries the
// lat/lon/vspeed signs but is not applied; values stay magnitudes.
func parseFix(line []byte) (fixRecord, bool) {
	body, ok := splitCRLF(line)
	if !ok || len(body) != fixLen {
		return fixRecord{}, false
	}

	lat, ok := hexVal(body[0:6])
	if !ok {
		return fixRecord{}, false
	}
	lon, ok := hexVal(body[6:12])
	if !ok {
		return fixRecord{}, false
	}
	ele, ok := hexVal(body[12:16])
	if !ok {
		return fixRecord{}, false
	}
	for _, f := range [...][2]int{{16, 18}, {18, 20}, {20, 22}, {22, 24}, {24, 27}, {29, 30}} {
		if _, ok := hexVal(body[f[0]:f[1]]); !ok {
			return fixRecord{}, false
		}
	}

	return fixRecord{
		lat:       float64(lat) / coordScale,
		lon:       float64(lon) / coordScale,
		elevation: int(ele),
	}, true
}

// parseResync matches one time-resync record: 6 digits local HHMMSS, 2 hex
// wind speed, 2 hex wind direction, 1 MacReady digit, the literal AC and one
// reserved character. Wind and MacReady validate the frame shape only.
func parseResync(line []byte) (resyncRecord, bool) {
	body, ok := splitCRLF(line)
	if !ok || len(body) != resyncLen {
		return resyncRecord{}, false
	}

	if !allDigits(body[0:6]) {
		return resyncRecord{}, false
	}
	if _, ok := hexVal(body[6:8]); !ok {
		return resyncRecord{}, false
	}
	if _, ok := hexVal(body[8:10]); !ok {
		return resyncRecord{}, false
	}
	if body[10] < '0' || body[10] > '9' {
		return resyncRecord{}, false
	}
	if body[11] != 'A' || body[12] != 'C' {
		return resyncRecord{}, false
	}

	return resyncRecord{
		hour: int(body[0]-'0')*10 + int(body[1]-'0'),
		min:  int(body[2]-'0')*10 + int(body[3]-'0'),
		sec:  int(body[4]-'0')*10 + int(body[5]-'0'),
	}, true
}

func isEndMarker(line []byte) bool {
	return string(line) == "@EOF\r\n"
}

func hexVal(b []byte) (uint64, bool) {
	var v uint64
	for _, c := range b {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}

func decVal(b []byte) (uint64, bool) {
	var v uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
	}
	return v, true
}

func allDigits(b []byte) bool {
	_, ok := decVal(b)
	return ok
}

func printableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
