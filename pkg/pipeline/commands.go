// Package pipeline: authoritative registry of frame commands.
//
// This file mirrors the commands implemented in Apply in
// pkg/pipeline/engine.go. Keep this list up-to-date when you add or
// modify commands so callers (CLI, pipeline files, help text) can read a
// single source of truth.

package pipeline

import (
	"fmt"
	"strings"
)

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float_or_percent", "margin", "color", "corners"
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
	InPlace     bool   // mutates its input instead of allocating a new frame
}

// Commands is the authoritative list of commands implemented by Apply.
var Commands = []CommandSpec{
	{
		Name:        "crop",
		Args:        []ArgSpec{{"margin", "margin", true, "", "n | v,h | left,top,right,bottom"}},
		Usage:       "crop <margin>",
		Description: "Strip a margin from every edge into a new frame.",
	},
	{
		Name:        "cropRect",
		Args:        []ArgSpec{{"width", "int", true, "", "crop width"}, {"height", "int", true, "", "crop height"}, {"x", "int", true, "", "x offset"}, {"y", "int", true, "", "y offset"}},
		Usage:       "cropRect <width> <height> <x> <y>",
		Description: "Crop a rectangle; it must lie inside the frame.",
	},
	{
		Name:        "roundCorners",
		Args:        []ArgSpec{{"radius", "int", true, "", "corner radius in pixels"}, {"fill", "color", false, "white", "CSS name, #hex or c0,c1,c2,c3"}, {"corners", "corners", false, "all", "all or a list of tl,tr,bl,br"}},
		Usage:       "roundCorners <radius> [fill] [corners]",
		Description: "Experimental: paint the corners outside a quarter circle.",
		InPlace:     true,
	},
	{
		Name:        "trim",
		Args:        []ArgSpec{{"fuzz", "float_or_percent", false, "0", "fuzz numeric or percent (e.g. 5 or 5%)"}},
		Usage:       "trim [fuzz]",
		Description: "Detect a uniform border and crop it away.",
	},
	{
		Name:        "orient",
		Args:        []ArgSpec{{"orientation", "int", true, "", "EXIF orientation 1..8"}},
		Usage:       "orient <orientation>",
		Description: "Rotate or mirror the frame as an EXIF orientation tag describes.",
	},
}

// Lookup finds a command by name, case-insensitively.
func Lookup(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return CommandSpec{}, false
}

// RequiredArgs returns how many leading arguments a command needs.
func (c CommandSpec) RequiredArgs() int {
	n := 0
	for _, a := range c.Args {
		if a.Required {
			n++
		}
	}
	return n
}

// Help renders a multi-line description of the command and its arguments.
func (c CommandSpec) Help() string {
	var sb strings.Builder
	sb.WriteString(c.Usage)
	if c.Description != "" {
		sb.WriteString("\n  " + c.Description)
	}
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "\n  - %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
	}
	return sb.String()
}
