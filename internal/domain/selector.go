package domain

// SelectCandidates filters saved profiles into the ordered candidate list for
// one recovery cycle. The enumeration order of saved is preserved and
// duplicate names are dropped; there is no re-sorting or prioritizing.
//
// Matching is exact and case-sensitive. Explicit names absent from saved are
// silently ignored. An empty result is valid and means the cycle ends as
// exhausted without any connect attempt.
func SelectCandidates(mode ProfileMode, explicit, saved, visible []string) []string {
	var wanted map[string]struct{}
	switch mode {
	case ModeExplicit:
		wanted = nameSet(explicit)
	case ModeVisibleOnly:
		wanted = nameSet(visible)
	case ModeAll:
		// no filter
	}

	seen := make(map[string]struct{}, len(saved))
	candidates := make([]string, 0, len(saved))
	for _, name := range saved {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}
	return candidates
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
