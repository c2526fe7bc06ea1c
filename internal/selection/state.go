package selection

import "mapstack-cost/pkg/api"

// DecodeState normalizes a persisted payload into a tagged selection
// state. A payload whose keys are only the platform targets "mobile"
// and/or "backend", each holding a nested record, is the dual-environment
// wrapper; anything else is a single-environment record. A category
// literally named "mobile" or "backend" with a nested-object value is
// indistinguishable from the wrapper in the persisted format; the
// wrapper interpretation wins.
func DecodeState(raw map[string]any) api.SelectionState {
	mobile, mok := raw[string(api.TargetMobile)].(map[string]any)
	backend, bok := raw[string(api.TargetBackend)].(map[string]any)

	wrapperKeys := 0
	if mok {
		wrapperKeys++
	}
	if bok {
		wrapperKeys++
	}
	if wrapperKeys > 0 && wrapperKeys == len(raw) {
		return api.SelectionState{
			Mode:    api.ModeDual,
			Mobile:  Normalize(mobile),
			Backend: Normalize(backend),
		}
	}
	return api.SelectionState{
		Mode:   api.ModeSingle,
		Single: Normalize(raw),
	}
}

// Selected returns the canonical collection for a target. In single
// mode there is only one collection regardless of target.
func Selected(st api.SelectionState, target api.Target) api.Canonical {
	if st.Mode != api.ModeDual {
		return st.Single
	}
	if target == api.TargetMobile {
		return st.Mobile
	}
	return st.Backend
}

// ToggleState applies Toggle to the collection named by target and
// returns a new state. The target is always chosen by the caller, never
// inferred; in dual mode a target other than mobile or backend leaves
// the state unchanged.
func ToggleState(st api.SelectionState, target api.Target, categoryID, itemID string, wantSelected bool) api.SelectionState {
	if st.Mode != api.ModeDual {
		st.Single = Toggle(st.Single, categoryID, itemID, wantSelected)
		return st
	}
	switch target {
	case api.TargetMobile:
		st.Mobile = Toggle(st.Mobile, categoryID, itemID, wantSelected)
	case api.TargetBackend:
		st.Backend = Toggle(st.Backend, categoryID, itemID, wantSelected)
	}
	return st
}
