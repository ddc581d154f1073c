// Package render draws processed EDA as PNG figures (gonum/plot) and as an
// interactive HTML report (go-echarts).
package render
