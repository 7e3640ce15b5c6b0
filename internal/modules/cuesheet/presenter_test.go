// README: Cue-sheet presenter tests (formatting, labels, partitioning).
package cuesheet

import (
	"testing"

	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
)

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{850, "850 m"},
		{999.4, "999 m"},
		{1000, "1.0 km"},
		{1500, "1.5 km"},
		{12345, "12.3 km"},
	}
	for _, tc := range cases {
		if got := FormatDistance(tc.meters); got != tc.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tc.meters, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0分"},
		{125, "2分"},
		{45 * 60, "45分"},
		{125 * 60, "2時間5分"},
		{3600, "1時間0分"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestManeuverText(t *testing.T) {
	cases := []struct {
		m    waypoint.Maneuver
		want string
	}{
		{waypoint.Maneuver{}, "直進"},
		{waypoint.Maneuver{Type: "depart"}, "出発"},
		{waypoint.Maneuver{Type: "arrive"}, "到着"},
		{waypoint.Maneuver{Type: "turn", Modifier: "right"}, "右折"},
		{waypoint.Maneuver{Type: "turn", Modifier: "sharp right"}, "鋭角右折"},
		{waypoint.Maneuver{Type: "turn", Modifier: "slight left"}, "左方向"},
		{waypoint.Maneuver{Type: "turn", Modifier: "uturn"}, "曲がる"},
		{waypoint.Maneuver{Type: "continue"}, "直進を継続"},
		{waypoint.Maneuver{Type: "roundabout"}, "ロータリー"},
		{waypoint.Maneuver{Type: "exit roundabout"}, "ロータリーを出る"},
		{waypoint.Maneuver{Type: "fork"}, "分岐"},
		{waypoint.Maneuver{Type: "unknown", Modifier: "left"}, "left"},
		{waypoint.Maneuver{Type: "unknown"}, "進む"},
	}
	for _, tc := range cases {
		if got := ManeuverText(tc.m); got != tc.want {
			t.Errorf("ManeuverText(%+v) = %q, want %q", tc.m, got, tc.want)
		}
	}
}

func TestManeuverIcon(t *testing.T) {
	cases := []struct {
		m    waypoint.Maneuver
		want string
	}{
		{waypoint.Maneuver{}, IconArrowRight},
		{waypoint.Maneuver{Type: "depart"}, IconFlagStart},
		{waypoint.Maneuver{Type: "arrive"}, IconFlagFinish},
		{waypoint.Maneuver{Type: "turn", Modifier: "right"}, IconTurnRight},
		{waypoint.Maneuver{Type: "turn", Modifier: "sharp left"}, IconTurnSharpLeft},
		{waypoint.Maneuver{Type: "rotary"}, IconRoundabout},
		{waypoint.Maneuver{Type: "continue"}, IconContinue},
	}
	for _, tc := range cases {
		if got := ManeuverIcon(tc.m); got != tc.want {
			t.Errorf("ManeuverIcon(%+v) = %q, want %q", tc.m, got, tc.want)
		}
	}
}

func cueList(distances ...float64) []waypoint.Cue {
	cues := make([]waypoint.Cue, len(distances))
	for i, d := range distances {
		cues[i] = waypoint.Cue{Order: i, DistanceM: d, DurationS: 60}
	}
	return cues
}

func TestCumulative(t *testing.T) {
	cues := cueList(100, 200, 300)
	cases := []struct {
		index int
		want  float64
	}{
		{0, 100},
		{1, 300},
		{2, 600},
	}
	for _, tc := range cases {
		if got := Cumulative(cues, tc.index); got != tc.want {
			t.Errorf("Cumulative(cues, %d) = %v, want %v", tc.index, got, tc.want)
		}
	}
}

func TestBuildPartitionsStartMiddleEnd(t *testing.T) {
	sheet := Build(cueList(100, 200, 300, 400))

	if sheet.First == nil || sheet.First.Cue.Order != 0 {
		t.Fatal("first entry missing")
	}
	if len(sheet.Middle) != 2 || sheet.Middle[0].Cue.Order != 1 || sheet.Middle[1].Cue.Order != 2 {
		t.Fatalf("middle = %v, want cues 1 and 2", sheet.Middle)
	}
	if sheet.Last == nil || sheet.Last.Cue.Order != 3 {
		t.Fatal("last entry missing")
	}
	if sheet.Last.CumulativeM != 1000 {
		t.Fatalf("last cumulative = %v, want 1000", sheet.Last.CumulativeM)
	}
	if sheet.TotalDistance != "1.0 km" {
		t.Fatalf("total distance = %q, want 1.0 km", sheet.TotalDistance)
	}
	if sheet.TotalDuration != "4分" {
		t.Fatalf("total duration = %q, want 4分", sheet.TotalDuration)
	}
}

func TestBuildSmallLists(t *testing.T) {
	empty := Build(nil)
	if empty.First != nil || empty.Middle != nil || empty.Last != nil {
		t.Fatal("empty cue list must produce no entries")
	}

	single := Build(cueList(500))
	if single.First == nil || single.Middle != nil || single.Last != nil {
		t.Fatal("single cue: first only")
	}

	pair := Build(cueList(500, 500))
	if pair.First == nil || pair.Middle != nil || pair.Last == nil {
		t.Fatal("two cues: first and last, no middle")
	}
}
