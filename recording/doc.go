// Package recording loads wearable-sensor exports containing skin
// conductance and tri-axial acceleration.
//
// The expected layout is a delimited text file with a header row. Three
// roles are required: a timestamp column (milliseconds since the Unix
// epoch), a galvanic skin response column (µS) and three acceleration axes.
// Column names default to those written by Shimmer GSR+ units and can be
// overridden through Columns.
package recording
