// Package motion describes the entrance and hover animations of the contact
// section as data. Renderers serialise a preset into a data-motion attribute
// and leave playback to the page script.
package motion

import (
	"encoding/json"
)

// Frame is a set of animated properties (opacity, y, scale, rotate).
type Frame map[string]any

// Preset groups the keyframes of one animated element.
type Preset struct {
	Initial  Frame   `json:"initial,omitempty"`
	Animate  Frame   `json:"animate,omitempty"`
	Hover    Frame   `json:"hover,omitempty"`
	Tap      Frame   `json:"tap,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Zero reports whether the preset animates nothing.
func (p Preset) Zero() bool {
	return len(p.Initial) == 0 && len(p.Animate) == 0 && len(p.Hover) == 0 && len(p.Tap) == 0 && p.Duration == 0
}

// Attr encodes the preset for an HTML attribute. Zero presets encode to "".
func (p Preset) Attr() string {
	if p.Zero() {
		return ""
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(payload)
}

// Section fades the heading, details and form up into place.
func Section() Preset {
	return Preset{
		Initial:  Frame{"opacity": 0, "y": 50},
		Animate:  Frame{"opacity": 1, "y": 0},
		Duration: 0.6,
	}
}

// Banner slides the status banner down.
func Banner() Preset {
	return Preset{
		Initial: Frame{"opacity": 0, "y": -10},
		Animate: Frame{"opacity": 1, "y": 0},
	}
}

// Detail is the hover/tap scale of a contact detail. wiggle adds the small
// rotation the phone link plays on hover.
func Detail(wiggle bool) Preset {
	hover := Frame{"scale": 1.05}
	if wiggle {
		hover["rotate"] = []float64{0, -1, 1, -1, 0}
	}
	return Preset{
		Hover: hover,
		Tap:   Frame{"scale": 0.98},
	}
}

// Submit is the send button preset; it does not react while sending.
func Submit(sending bool) Preset {
	if sending {
		return Preset{}
	}
	return Preset{
		Hover: Frame{"scale": 1.02},
		Tap:   Frame{"scale": 0.98},
	}
}

// Set is the collection of presets handed to a renderer.
type Set struct {
	Section Preset
	Banner  Preset
	Email   Preset
	Phone   Preset
	Address Preset
	Submit  Preset
}

// Defaults returns the contact section presets.
func Defaults(sending bool) Set {
	return Set{
		Section: Section(),
		Banner:  Banner(),
		Email:   Detail(false),
		Phone:   Detail(true),
		Address: Detail(false),
		Submit:  Submit(sending),
	}
}
