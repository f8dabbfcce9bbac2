package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor resolves a CSS color: SVG/CSS named colors, "transparent",
// #rgb, #rrggbb, rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(value string) (color.RGBA, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch {
	case value == "":
		return color.RGBA{}, false
	case value == "transparent":
		return color.RGBA{}, true
	case strings.HasPrefix(value, "#"):
		parsed, err := colorful.Hex(value)
		if err != nil {
			return color.RGBA{}, false
		}
		r, g, b := parsed.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xFF}, true
	case strings.HasPrefix(value, "rgb"):
		return parseRGBFunc(value)
	}
	named, ok := colornames.Map[value]
	return named, ok
}

func parseRGBFunc(value string) (color.RGBA, bool) {
	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return color.RGBA{}, false
	}
	name := value[:open]
	parts := strings.Split(value[open+1:len(value)-1], ",")
	if (name == "rgb" && len(parts) != 3) || (name == "rgba" && len(parts) != 4) || (name != "rgb" && name != "rgba") {
		return color.RGBA{}, false
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return color.RGBA{}, false
		}
		channels[i] = uint8(clampInt(n, 0, 255))
	}
	alpha := uint8(0xFF)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.RGBA{}, false
		}
		if a < 0 {
			a = 0
		}
		if a > 1 {
			a = 1
		}
		alpha = uint8(a*255 + 0.5)
	}
	// color.RGBA is alpha-premultiplied.
	c := color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}
	return color.RGBAModel.Convert(c).(color.RGBA), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
