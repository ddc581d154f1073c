// Package eda processes electrodermal activity.
//
// The pipeline follows the conventional filter-based approach: the raw skin
// conductance is low-pass cleaned, split into a slow tonic level (SCL) and a
// fast phasic part (SCR), and skin conductance responses are located on the
// phasic trace. Interval features summarise a whole recording or fixed
// length segments of it.
//
// All filtering is zero-phase so that response onsets and peaks line up
// with the raw signal.
package eda
