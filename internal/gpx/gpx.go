package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"tnlog/internal/tracklog"
)

const creator = "tnlog"

type trkpt struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Ele  int    `xml:"ele"`
	Time string `xml:"time"`
}

type trkseg struct {
	Points []trkpt `xml:"trkpt"`
}

type trk struct {
	Name string `xml:"name"`
	Desc string `xml:"desc,omitempty"`
	Seg  trkseg `xml:"trkseg"`
}

type document struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	Trk     trk      `xml:"trk"`
}

// Write serializes a decoded session as a single-track, single-segment GPX
// 1.0 document.
func Write(w io.Writer, sess *tracklog.Session) error {
	doc := document{
		Version: "1.0",
		Creator: creator,
		Xmlns:   "http://www.topografix.com/GPX/1/0",
		Trk: trk{
			Name: sess.Name(),
			Desc: sess.Header.TakeoffLocation,
		},
	}
	doc.Trk.Seg.Points = make([]trkpt, 0, len(sess.Track))
	for _, p := range sess.Track {
		// Six decimals keep the full 1/6000-degree resolution of the
		// transfer format.
		doc.Trk.Seg.Points = append(doc.Trk.Seg.Points, trkpt{
			Lat:  strconv.FormatFloat(p.Lat, 'f', 6, 64),
			Lon:  strconv.FormatFloat(p.Lon, 'f', 6, 64),
			Ele:  p.Elevation,
			Time: p.Time.UTC().Format(time.RFC3339),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("gpx: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("gpx: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("gpx: %w", err)
	}
	return nil
}
