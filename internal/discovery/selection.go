// internal/discovery/selection.go
package discovery

import "sort"

// SelectionState maps platform id to the set of selected source names. It is
// an independent value type with pure transitions; every mutation returns a
// new state and never aliases the receiver's maps.
type SelectionState map[string]map[string]struct{}

// NewSelectionState returns an empty selection.
func NewSelectionState() SelectionState {
	return SelectionState{}
}

// InitialSelection computes a fresh selection from discovery results:
// exactly the high-priority recommendation names per platform. Any prior
// state is discarded wholesale; seeding into a carried-over selection is how
// stale names from a previous run leak into the next one.
func InitialSelection(results map[string]PlatformDiscoveryResult) SelectionState {
	state := NewSelectionState()
	for platform, result := range results {
		for _, rec := range result.Sources {
			if rec.Priority == PriorityHigh {
				state = state.add(platform, rec.Name)
			}
		}
	}
	return state
}

// Initialize replaces the receiver with a fresh selection from results.
func (s SelectionState) Initialize(results map[string]PlatformDiscoveryResult) SelectionState {
	return InitialSelection(results)
}

// Toggle flips one source's membership and returns the new state.
func (s SelectionState) Toggle(platform, name string) SelectionState {
	if s.IsSelected(platform, name) {
		return s.remove(platform, name)
	}
	return s.add(platform, name)
}

// Clear returns an empty selection.
func (s SelectionState) Clear() SelectionState {
	return NewSelectionState()
}

// IsSelected reports whether name is selected on platform.
func (s SelectionState) IsSelected(platform, name string) bool {
	names, ok := s[platform]
	if !ok {
		return false
	}
	_, ok = names[name]
	return ok
}

// Names returns the selected source names for platform, sorted.
func (s SelectionState) Names(platform string) []string {
	names := make([]string, 0, len(s[platform]))
	for name := range s[platform] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Platforms returns the platforms with at least one selection, sorted.
func (s SelectionState) Platforms() []string {
	var platforms []string
	for platform, names := range s {
		if len(names) > 0 {
			platforms = append(platforms, platform)
		}
	}
	sort.Strings(platforms)
	return platforms
}

// Total counts selected sources across all platforms.
func (s SelectionState) Total() int {
	total := 0
	for _, names := range s {
		total += len(names)
	}
	return total
}

func (s SelectionState) add(platform, name string) SelectionState {
	next := s.clone()
	if next[platform] == nil {
		next[platform] = make(map[string]struct{})
	}
	next[platform][name] = struct{}{}
	return next
}

func (s SelectionState) remove(platform, name string) SelectionState {
	next := s.clone()
	if names, ok := next[platform]; ok {
		delete(names, name)
		if len(names) == 0 {
			delete(next, platform)
		}
	}
	return next
}

func (s SelectionState) clone() SelectionState {
	next := make(SelectionState, len(s))
	for platform, names := range s {
		copied := make(map[string]struct{}, len(names))
		for name := range names {
			copied[name] = struct{}{}
		}
		next[platform] = copied
	}
	return next
}
