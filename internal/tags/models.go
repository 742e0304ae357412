package tags

// TagCount is one tag with the number of active events carrying it. Tags
// live denormalized on events as a comma separated list; this module only
// aggregates them for the browse filters.
type TagCount struct {
	Name       string `json:"name"`
	EventCount int    `json:"event_count"`
}
