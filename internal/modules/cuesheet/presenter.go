// README: Pure cue-sheet presenter: labels, icons, distances, partitioning.
package cuesheet

import (
	"fmt"
	"math"

	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
)

// Icon categories for the UI layer. The presenter picks the category; the
// renderer owns the artwork.
const (
	IconArrowRight     = "arrow-right"
	IconFlagStart      = "flag-start"
	IconFlagFinish     = "flag-finish"
	IconTurnRight      = "turn-right"
	IconTurnSharpRight = "turn-sharp-right"
	IconTurnLeft       = "turn-left"
	IconTurnSharpLeft  = "turn-sharp-left"
	IconRoundabout     = "roundabout"
	IconContinue       = "continue"
)

// Entry is one rendered cue: its instruction text, icon category, and the
// cumulative distance from the start up to and including this cue.
type Entry struct {
	Cue         waypoint.Cue `json:"cue"`
	Text        string       `json:"text"`
	Icon        string       `json:"icon"`
	CumulativeM float64      `json:"cumulative_m"`
}

// Sheet is the display grouping of a cue list: start entry, collapsible
// middle entries, end entry. Middle is populated only for three or more
// cues; Last only for two or more.
type Sheet struct {
	TotalDistance string  `json:"total_distance"`
	TotalDuration string  `json:"total_duration"`
	First         *Entry  `json:"first,omitempty"`
	Middle        []Entry `json:"middle,omitempty"`
	Last          *Entry  `json:"last,omitempty"`
}

// ManeuverText returns the Japanese instruction for a maneuver. Unknown
// shapes fall back to "go straight".
func ManeuverText(m waypoint.Maneuver) string {
	if m.Type == "" {
		return "直進"
	}
	switch m.Type {
	case "depart":
		return "出発"
	case "arrive":
		return "到着"
	case "turn":
		switch m.Modifier {
		case "sharp right":
			return "鋭角右折"
		case "right":
			return "右折"
		case "slight right":
			return "右方向"
		case "sharp left":
			return "鋭角左折"
		case "left":
			return "左折"
		case "slight left":
			return "左方向"
		case "straight":
			return "直進"
		}
		return "曲がる"
	case "continue":
		return "直進を継続"
	case "merge":
		return "合流"
	case "rotary", "roundabout":
		return "ロータリー"
	case "exit roundabout":
		return "ロータリーを出る"
	case "fork":
		return "分岐"
	}
	if m.Modifier != "" {
		return m.Modifier
	}
	return "進む"
}

// ManeuverIcon maps a maneuver onto an icon category.
func ManeuverIcon(m waypoint.Maneuver) string {
	if m.Type == "" {
		return IconArrowRight
	}
	switch m.Type {
	case "depart":
		return IconFlagStart
	case "arrive":
		return IconFlagFinish
	case "turn":
		switch m.Modifier {
		case "sharp right":
			return IconTurnSharpRight
		case "sharp left":
			return IconTurnSharpLeft
		}
		switch {
		case containsRight(m.Modifier):
			return IconTurnRight
		case containsLeft(m.Modifier):
			return IconTurnLeft
		}
		return IconArrowRight
	case "rotary", "roundabout":
		return IconRoundabout
	case "continue":
		return IconContinue
	}
	return IconArrowRight
}

// FormatDistance renders meters: whole meters under 1 km, otherwise
// kilometers to one decimal place.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration renders seconds as hours and minutes, dropping the hour
// component when zero.
func FormatDuration(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d時間%d分", hours, minutes)
	}
	return fmt.Sprintf("%d分", minutes)
}

// Cumulative returns the summed distance of cues[0..index].
func Cumulative(cues []waypoint.Cue, index int) float64 {
	var sum float64
	for i := 0; i <= index && i < len(cues); i++ {
		sum += cues[i].DistanceM
	}
	return sum
}

// Build derives the full display sheet from a cue list. Pure and
// restartable: safe to recompute from scratch on every render.
func Build(cues []waypoint.Cue) Sheet {
	var totalDist, totalDur float64
	for _, c := range cues {
		totalDist += c.DistanceM
		totalDur += c.DurationS
	}
	sheet := Sheet{
		TotalDistance: FormatDistance(totalDist),
		TotalDuration: FormatDuration(totalDur),
	}
	if len(cues) == 0 {
		return sheet
	}

	entry := func(i int) Entry {
		return Entry{
			Cue:         cues[i],
			Text:        ManeuverText(cues[i].Maneuver),
			Icon:        ManeuverIcon(cues[i].Maneuver),
			CumulativeM: Cumulative(cues, i),
		}
	}

	first := entry(0)
	sheet.First = &first
	if len(cues) > 2 {
		for i := 1; i < len(cues)-1; i++ {
			sheet.Middle = append(sheet.Middle, entry(i))
		}
	}
	if len(cues) > 1 {
		last := entry(len(cues) - 1)
		sheet.Last = &last
	}
	return sheet
}

func containsRight(modifier string) bool {
	switch modifier {
	case "right", "slight right", "sharp right":
		return true
	}
	return false
}

func containsLeft(modifier string) bool {
	switch modifier {
	case "left", "slight left", "sharp left":
		return true
	}
	return false
}
