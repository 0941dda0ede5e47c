// Package report draws the crossing points of an analysis run.
//
// WriteHTML produces a self-contained go-echarts page; WritePNG produces a
// static gonum/plot image for reports and CI artefacts.
package report
