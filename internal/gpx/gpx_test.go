package gpx

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"tnlog/internal/tracklog"
)

func testSession() *tracklog.Session {
	base := time.Date(2024, 5, 14, 9, 59, 0, 0, time.UTC)
	return &tracklog.Session{
		Header: tracklog.Header{
			SerialNumber:    0x1A2F,
			SoftwareVersion: "42",
			RecordedAt:      time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC),
			UTCOffset:       time.Minute,
			TakeoffLocation: "INTERLAKEN",
		},
		Track: []tracklog.Point{
			{Time: base, Lat: 1.0 / 6000.0, Lon: float64(0x176C0) / 6000.0, Elevation: 800},
			{Time: base.Add(time.Second), Lat: 2.0 / 6000.0, Lon: float64(0x176C1) / 6000.0, Elevation: 801},
		},
	}
}

func TestWrite_WellFormed(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, testSession()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var doc document
	if err := xml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
	if doc.Version != "1.0" {
		t.Fatalf("version = %q, want 1.0", doc.Version)
	}
	if doc.Trk.Name != "20240514-1030-1A2F" {
		t.Fatalf("track name = %q", doc.Trk.Name)
	}
	if doc.Trk.Desc != "INTERLAKEN" {
		t.Fatalf("track desc = %q", doc.Trk.Desc)
	}
	if len(doc.Trk.Seg.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(doc.Trk.Seg.Points))
	}
}

func TestWrite_PointFormatting(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, testSession()); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := out.String()

	for _, want := range []string{
		`lat="0.000167"`,
		`<ele>800</ele>`,
		`<time>2024-05-14T09:59:00Z</time>`,
		`<time>2024-05-14T09:59:01Z</time>`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
}
