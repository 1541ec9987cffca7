// Package record implements the Fortran unformatted sequential record codec
// shared by every DIF3D interface file.
//
// A record on disk is [marker][payload][marker] where both markers hold the
// payload length in bytes. The byte order and the marker word size are taken
// from a Layout and are never assumed.
package record

// IntSize is the width in bytes of a Fortran INTEGER word
const IntSize = 4

// FloatSize is the width in bytes of a Fortran single-precision REAL word
const FloatSize = 4

// DoubleSize is the width in bytes of a Fortran DOUBLE PRECISION word
const DoubleSize = 8

// DefaultMarkerSize is the record-marker width written by most compilers
const DefaultMarkerSize = 4

// LongMarkerSize is the record-marker width used by compilers built with 8-byte markers
const LongMarkerSize = 8

// blank pads fixed-width character fields
const blank = ' '
