package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rigidsim/internal/storage"
)

var palette = []string{"#00ff88", "#00ccff", "#ffaa00", "#ff4444", "#ff00ff", "#ffffff"}

// TrajectorySVG draws each recorded body path as a polyline. World y grows
// down, so no flip is applied.
func TrajectorySVG(tr *storage.Trajectory, width, height int) string {
	if tr == nil || len(tr.Positions) < 2 || len(tr.IDs) == 0 {
		return ""
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, row := range tr.Positions {
		for _, p := range row {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, id := range tr.IDs {
		sb.WriteString(fmt.Sprintf(`<path id="body-%d" fill="none" stroke="%s" stroke-width="1.5" d="M`, id, palette[i%len(palette)]))
		for j, row := range tr.Positions {
			x := (row[i][0] - minX) / rangeX * float64(width)
			y := (row[i][1] - minY) / rangeY * float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
