// Package vision turns camera frames into a single tracked point.
//
// The pipeline has three stages, each usable on its own:
//
//	Segment  BGR frame  -> HSV band mask
//	Diff     band mask  -> |mask - baseline| (baseline = first mask seen)
//	Locate   diff mask  -> center of the last blob above the area floor
//
// All stages work on gocv.Mat values. Callers own every Mat they pass in and
// every Mat returned to them.
package vision
