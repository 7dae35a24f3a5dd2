// Package tracklog decodes the recorder's line-oriented transfer format.
//
// A session is one header record, a mix of flight-data and time-resync
// records, and a literal @EOF marker. Records are fixed-width with CR LF
// terminators and carry no checksum; the full-width grammar match is the
// only error detection the format offers, so every line must match one of
// the record shapes in its entirety or the whole decode is abandoned.
//
// Latitude, longitude and vertical speed are transferred as unsigned
// magnitudes; the flag nibble that is supposed to carry their signs is
// validated but not applied, matching the recorder's own documentation.
// Sessions that cross local midnight produce a non-monotonic timestamp
// sequence; downstream consumers are expected to tolerate or reject that.
package tracklog
