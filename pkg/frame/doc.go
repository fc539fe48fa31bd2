// Package frame holds the fixed-format pixel buffer used by the screenshot
// pipeline and the transforms that run on it: margin cropping, border
// detection and the experimental corner rounding.
package frame
