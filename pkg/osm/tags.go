package osm

import "github.com/paulmach/osm"

// direction is the set of ways a road may be travelled along its node order.
type direction uint8

const (
	forward direction = 1 << iota
	backward

	both = forward | backward
)

// drivableHighways are the highway classes open to cars.
var drivableHighways = map[string]struct{}{
	"motorway": {}, "motorway_link": {},
	"trunk": {}, "trunk_link": {},
	"primary": {}, "primary_link": {},
	"secondary": {}, "secondary_link": {},
	"tertiary": {}, "tertiary_link": {},
	"unclassified": {}, "residential": {},
	"living_street": {}, "service": {},
}

// closingTags exclude an otherwise drivable way.
var closingTags = []osm.Tag{
	{Key: "area", Value: "yes"},
	{Key: "access", Value: "no"},
	{Key: "access", Value: "private"},
	{Key: "motor_vehicle", Value: "no"},
}

// drivable reports whether a car may use a way tagged with tags.
func drivable(tags osm.Tags) bool {
	if _, ok := drivableHighways[tags.Find("highway")]; !ok {
		return false
	}
	for _, t := range closingTags {
		if tags.Find(t.Key) == t.Value {
			return false
		}
	}
	return true
}

// travel returns the permitted directions. An explicit oneway tag wins over
// the oneway implied by motorways and roundabouts; reversible ways get none.
func travel(tags osm.Tags) direction {
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return forward
	case "-1", "reverse":
		return backward
	case "no":
		return both
	case "reversible":
		return 0
	}
	switch hw := tags.Find("highway"); {
	case hw == "motorway", hw == "motorway_link", tags.Find("junction") == "roundabout":
		return forward
	}
	return both
}
