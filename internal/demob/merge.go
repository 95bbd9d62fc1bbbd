package demob

import (
	"encoding/json"
	"fmt"

	"demob-match/internal/storage"
)

// ApplyPatch applies a JSON merge patch (RFC 7386) to a copy of the stored
// profile. employee_id cannot be changed through a patch. A derived
// retention priority is cleared unless the patch sets one, so Prepare
// derives it again from the patched inputs.
func ApplyPatch(stored *storage.DemobProfile, patch json.RawMessage) (*storage.DemobProfile, error) {
	base, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	var target map[string]any
	if err := json.Unmarshal(base, &target); err != nil {
		return nil, err
	}
	var p map[string]any
	if err := json.Unmarshal(patch, &p); err != nil {
		return nil, fmt.Errorf("%w: patch must be a JSON object: %v", ErrInvalid, err)
	}
	delete(p, "employee_id")

	merged, err := json.Marshal(mergePatch(target, p))
	if err != nil {
		return nil, err
	}
	out := &storage.DemobProfile{}
	if err := json.Unmarshal(merged, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if stored.InternalMetrics.PriorityDerived && !setsPriority(p) {
		out.InternalMetrics.RetentionPriority = ""
	}
	return out, nil
}

func setsPriority(patch map[string]any) bool {
	metrics, ok := patch["internal_metrics"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = metrics["retention_priority"]
	return ok
}

func mergePatch(target, patch map[string]any) map[string]any {
	if target == nil {
		target = map[string]any{}
	}
	for k, v := range patch {
		if v == nil {
			delete(target, k)
			continue
		}
		if pm, ok := v.(map[string]any); ok {
			tm, _ := target[k].(map[string]any)
			target[k] = mergePatch(tm, pm)
			continue
		}
		target[k] = v
	}
	return target
}
