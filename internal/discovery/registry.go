// internal/discovery/registry.go
package discovery

import "sort"

// PlatformStatus is a platform's availability in the registry.
type PlatformStatus string

const (
	PlatformActive     PlatformStatus = "active"
	PlatformComingSoon PlatformStatus = "coming_soon"
)

// Platform describes one monitorable platform: display metadata, the naming
// convention its sources use, and availability.
type Platform struct {
	ID           string         `json:"id"`
	DisplayName  string         `json:"displayName"`
	SourceLabel  string         `json:"sourceLabel"`  // what a source is called on this platform
	SourcePrefix string         `json:"sourcePrefix"` // rendering prefix, e.g. "r/" for subreddits
	Status       PlatformStatus `json:"status"`
}

// Registry is the static platform descriptor table, optionally adjusted by
// configuration at startup.
type Registry struct {
	platforms map[string]Platform
}

func defaultPlatforms() []Platform {
	return []Platform{
		{ID: "reddit", DisplayName: "Reddit", SourceLabel: "subreddit", SourcePrefix: "r/", Status: PlatformActive},
		{ID: "hackernews", DisplayName: "Hacker News", SourceLabel: "topic", SourcePrefix: "", Status: PlatformActive},
		{ID: "twitter", DisplayName: "X (Twitter)", SourceLabel: "hashtag", SourcePrefix: "#", Status: PlatformComingSoon},
		{ID: "linkedin", DisplayName: "LinkedIn", SourceLabel: "group", SourcePrefix: "", Status: PlatformComingSoon},
	}
}

// NewRegistry returns the built-in platform table.
func NewRegistry() *Registry {
	r := &Registry{platforms: make(map[string]Platform)}
	for _, p := range defaultPlatforms() {
		r.platforms[p.ID] = p
	}
	return r
}

// SetStatus overrides a registered platform's availability. Unknown ids are
// rejected so configuration cannot invent platforms.
func (r *Registry) SetStatus(id string, status PlatformStatus) bool {
	p, ok := r.platforms[id]
	if !ok {
		return false
	}
	p.Status = status
	r.platforms[id] = p
	return true
}

// Lookup returns the platform descriptor for id.
func (r *Registry) Lookup(id string) (Platform, bool) {
	p, ok := r.platforms[id]
	return p, ok
}

// IsActive reports whether id is registered and live.
func (r *Registry) IsActive(id string) bool {
	p, ok := r.platforms[id]
	return ok && p.Status == PlatformActive
}

// ActivePlatforms returns the ids of all live platforms, sorted.
func (r *Registry) ActivePlatforms() []string {
	var ids []string
	for id, p := range r.platforms {
		if p.Status == PlatformActive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// All returns every registered platform, sorted by id.
func (r *Registry) All() []Platform {
	out := make([]Platform, 0, len(r.platforms))
	for _, p := range r.platforms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
