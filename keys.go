package hearth

import "fmt"

// Key generators for the view families the template service caches. Each is
// a pure function from request parameters to a deterministic key, so
// handlers and invalidation sites agree on the fingerprint for a given
// query. Prefixes are stable because ClearPattern calls rely on them
// ("templates:list:*" after a template is published, and so on).

// ListKey fingerprints a filtered template listing page.
func ListKey(filter string, limit int, cursor string) string {
	return fmt.Sprintf("templates:list:%s:%d:%s", filter, limit, cursor)
}

// ResourceKey fingerprints a single template lookup.
func ResourceKey(id string) string {
	return fmt.Sprintf("templates:get:%s", id)
}

// OwnerKey fingerprints an identity's own-templates view.
func OwnerKey(owner string, limit int, cursor string) string {
	return fmt.Sprintf("templates:mine:%s:%d:%s", owner, limit, cursor)
}

// SearchKey fingerprints a search result page.
func SearchKey(term string, limit int) string {
	return fmt.Sprintf("search:%s:%d", term, limit)
}

// PopularKey fingerprints a popularity-ranked listing.
func PopularKey(limit int) string {
	return fmt.Sprintf("templates:popular:%d", limit)
}
