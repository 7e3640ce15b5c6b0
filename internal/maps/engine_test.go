// README: Engine tests: sequencing, directions decoding, maneuver translation.
package maps

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
	"github.com/YukiAminaka/cycle-route/internal/types"
)

const directionsBody = `{
	"code": "Ok",
	"routes": [{
		"distance": 2500,
		"duration": 600,
		"geometry": {"type":"LineString","coordinates":[[139.7,35.68],[139.71,35.69]]},
		"legs": [{
			"steps": [
				{"name":"明治通り","distance":1200,"duration":300,
				 "maneuver":{"type":"depart","location":[139.7,35.68]}},
				{"name":"表参道","distance":1300,"duration":300,
				 "maneuver":{"type":"turn","modifier":"right","location":[139.705,35.685]}}
			]
		}]
	}]
}`

func waitNotification(t *testing.T, e waypoint.Engine) waypoint.RouteComputed {
	t.Helper()
	select {
	case n := <-e.Notifications():
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for route notification")
		return waypoint.RouteComputed{}
	}
}

func TestMapboxEngineComputesRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("steps") != "true" || q.Get("geometries") != "geojson" ||
			q.Get("alternatives") != "true" || q.Get("overview") != "full" {
			t.Errorf("missing request options: %v", q)
		}
		w.Write([]byte(directionsBody))
	}))
	defer srv.Close()

	e := NewMapboxEngine("token", ProfileCycling, srv.Client()).WithBaseURL(srv.URL)
	defer e.Close()

	e.ReplaceAll([]types.LngLat{{Lng: 139.7, Lat: 35.68}, {Lng: 139.71, Lat: 35.69}})

	n := waitNotification(t, e)
	if n.Seq != 1 {
		t.Fatalf("seq = %d, want 1", n.Seq)
	}
	if len(n.Routes) != 1 {
		t.Fatalf("route count = %d, want 1", len(n.Routes))
	}
	route := n.Routes[0]
	if route.DistanceM != 2500 || route.DurationS != 600 {
		t.Fatalf("route totals = %+v", route)
	}
	if len(route.Legs) != 1 || len(route.Legs[0].Steps) != 2 {
		t.Fatalf("legs/steps = %+v", route.Legs)
	}
	step := route.Legs[0].Steps[1]
	if step.Name != "表参道" || step.Maneuver.Type != "turn" || step.Maneuver.Modifier != "right" {
		t.Fatalf("step = %+v", step)
	}
	if step.Maneuver.Location == nil || step.Maneuver.Location.Lng != 139.705 {
		t.Fatalf("maneuver location = %+v", step.Maneuver.Location)
	}
}

func TestEngineBelowTwoWaypointsEmitsEmptyNotification(t *testing.T) {
	e := NewMapboxEngine("token", "", nil)
	defer e.Close()

	e.InsertAt(types.LngLat{Lng: 139.7, Lat: 35.68}, 0)

	n := waitNotification(t, e)
	if n.Seq != 1 || len(n.Routes) != 0 {
		t.Fatalf("notification = %+v, want empty seq 1", n)
	}

	e.Clear()
	n = waitNotification(t, e)
	if n.Seq != 2 || len(n.Routes) != 0 {
		t.Fatalf("notification = %+v, want empty seq 2", n)
	}
}

func TestEngineSequenceAdvancesPerMutation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(directionsBody))
	}))
	defer srv.Close()

	e := NewMapboxEngine("token", "", srv.Client()).WithBaseURL(srv.URL)
	defer e.Close()

	e.InsertAt(types.LngLat{Lng: 139.7, Lat: 35.68}, 0)
	e.InsertAt(types.LngLat{Lng: 139.71, Lat: 35.69}, 1)
	e.RemoveAt(1)

	var maxSeq uint64
	for i := 0; i < 3; i++ {
		n := waitNotification(t, e)
		if n.Seq > maxSeq {
			maxSeq = n.Seq
		}
	}
	if maxSeq != 3 {
		t.Fatalf("max seq = %d, want 3", maxSeq)
	}
}

func TestCloseEndsNotificationStream(t *testing.T) {
	e := NewMapboxEngine("token", "", nil)
	e.Close()
	e.Close()

	if _, ok := <-e.Notifications(); ok {
		t.Fatal("notification channel must be closed")
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags(`<b>明治通り</b>を<b>右折</b>する&nbsp;<div style="font-size:0.9em">注意</div>`)
	if got != "明治通りを右折する 注意" {
		t.Fatalf("stripTags = %q", got)
	}
}

func TestManeuverFromInstruction(t *testing.T) {
	cases := []struct {
		in           string
		wantType     string
		wantModifier string
	}{
		{"", "", ""},
		{"明治通りを直進する", "continue", "straight"},
		{"表参道を右折する", "turn", "right"},
		{"青山通りを左折する", "turn", "left"},
		{"斜め右方向に進む", "turn", "slight right"},
		{"左斜め前方に進む", "turn", "slight left"},
		{"国道246号に合流する", "merge", ""},
		{"Uターンする", "turn", "uturn"},
		{"ラウンドアバウトを2番目の出口で出る", "roundabout", ""},
		{"目的地に到着します", "arrive", ""},
		{"Turn right onto Main St", "turn", "right"},
		{"Continue straight", "continue", "straight"},
		{"桜並木に沿って進む", "", ""},
	}
	for _, tc := range cases {
		gotType, gotModifier := maneuverFromInstruction(tc.in)
		if gotType != tc.wantType || gotModifier != tc.wantModifier {
			t.Errorf("maneuverFromInstruction(%q) = (%q, %q), want (%q, %q)",
				tc.in, gotType, gotModifier, tc.wantType, tc.wantModifier)
		}
	}
}
