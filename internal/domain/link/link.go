// Package link defines the closed set of resource topics an answer can be
// routed to and the canonical URL for each.
package link

// Topic is one of the closed resource-link categories.
type Topic string

const (
	// TopicWater routes to the Austrian EMREG water quality maps.
	TopicWater Topic = "water"
	// TopicIndustry routes to the European Industrial Emissions Portal.
	TopicIndustry Topic = "industry"
	// TopicNature routes to the Natura 2000 network viewer.
	TopicNature Topic = "nature"
	// TopicNone means the query matched no resource category.
	TopicNone Topic = "none"
)

// urls maps each topic 1:1 to its canonical resource.
var urls = map[Topic]string{
	TopicWater:    "https://maps.wisa.bmluk.gv.at/emreg",
	TopicIndustry: "https://industry.eea.europa.eu/explore/explore-data-map/map",
	TopicNature:   "https://natura2000.eea.europa.eu",
}

// Parse validates a raw classification answer against the closed topic set.
// Anything outside the set (including "none") yields TopicNone and ok=false.
func Parse(raw string) (Topic, bool) {
	t := Topic(raw)
	if _, ok := urls[t]; ok {
		return t, true
	}
	return TopicNone, false
}

// URLFor resolves a topic to its canonical URL. TopicNone has no URL.
func URLFor(topic Topic) (string, bool) {
	u, ok := urls[topic]
	return u, ok
}

// Topics returns all routable topics.
func Topics() []Topic {
	return []Topic{TopicWater, TopicIndustry, TopicNature}
}
