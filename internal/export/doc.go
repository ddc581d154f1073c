// Package export writes processing results as CSV tables and an XLSX
// workbook.
//
// CSV tables use the data-frame layout: a leading unnamed index column
// followed by named value columns. Missing values are written as empty
// fields.
package export
