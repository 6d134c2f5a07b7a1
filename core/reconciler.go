package core

import (
	"fmt"
	"strings"
)

// Reconcile folds the two stored advertisement-id shapes into one ordered,
// de-duplicated view. Precedence is enhanced-primary, enhanced-additional,
// legacy-primary, legacy-additional; the first field to contribute an id
// wins and later occurrences of the same id are dropped. Only the enhanced
// primary slot flags an entry as primary: a legacy primary that survives
// de-duplication is appended as a plain entry, and the derived PrimaryID
// falls back to the first entry when no flag was set. Empty and
// whitespace-only values never appear in the output.
func Reconcile(record DealerCredential) ReconciledCredential {
	entries := make([]ReconciledAdvertisementID, 0,
		2+len(record.AdditionalAdvertisementIDs)+len(record.AdvertisementIDsParsed))
	seen := make(map[string]struct{})

	appendID := func(raw string, source AdvertisementIDSource, primary bool) {
		id := strings.TrimSpace(raw)
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		entries = append(entries, ReconciledAdvertisementID{
			ID:        id,
			Source:    source,
			IsPrimary: primary,
		})
	}

	appendID(record.AdvertisementID, AdvertisementIDSourceEnhancedPrimary, true)
	for _, id := range record.AdditionalAdvertisementIDs {
		appendID(id, AdvertisementIDSourceEnhancedAdditional, false)
	}
	appendID(record.PrimaryAdvertisementID, AdvertisementIDSourceLegacyPrimary, false)
	for _, id := range record.AdvertisementIDsParsed {
		appendID(id, AdvertisementIDSourceLegacyAdditional, false)
	}

	primaryID := ""
	for _, entry := range entries {
		if entry.IsPrimary {
			primaryID = entry.ID
			break
		}
	}
	if primaryID == "" && len(entries) > 0 {
		primaryID = entries[0].ID
	}

	return ReconciledCredential{
		DealerID:         record.DealerID,
		Entries:          entries,
		PrimaryID:        primaryID,
		IntegrationID:    record.IntegrationID,
		CompanyName:      record.CompanyName,
		CompanyLogoURL:   record.CompanyLogoURL,
		InvitationStatus: record.InvitationStatus,
	}
}

// BuildEditableState flattens a reconciled view for the edit form. The IDs
// slice always has at least one slot so the form always renders an input;
// an empty record yields a single empty slot.
func BuildEditableState(reconciled ReconciledCredential) EditableCredentialState {
	ids := make([]string, 0, len(reconciled.Entries))
	for _, entry := range reconciled.Entries {
		ids = append(ids, entry.ID)
	}
	if len(ids) == 0 {
		ids = []string{""}
	}
	primary := strings.TrimSpace(reconciled.PrimaryID)
	if primary == "" {
		primary = ids[0]
	}
	return EditableCredentialState{IDs: ids, PrimaryID: primary}
}

// AddID appends one empty slot. It never fails.
func AddID(state EditableCredentialState) EditableCredentialState {
	next := state.clone()
	next.IDs = append(next.IDs, "")
	return next
}

// RemoveID drops the slot at index. The state must keep at least one slot;
// removing the slot that holds the primary clears PrimaryID rather than
// promoting another id, so the form can prompt for an explicit choice.
func RemoveID(state EditableCredentialState, index int) (EditableCredentialState, error) {
	if len(state.IDs) <= 1 {
		return state, validationError("core: cannot remove last slot")
	}
	if index < 0 || index >= len(state.IDs) {
		return state, validationError(fmt.Sprintf("core: slot index %d out of range", index))
	}
	next := state.clone()
	removed := next.IDs[index]
	next.IDs = append(next.IDs[:index], next.IDs[index+1:]...)
	if removed == next.PrimaryID {
		next.PrimaryID = ""
	}
	return next, nil
}

// UpdateID replaces the value at index. The primary designation follows the
// slot: editing the slot whose old value was primary moves the designation
// to the new value.
func UpdateID(state EditableCredentialState, index int, value string) (EditableCredentialState, error) {
	if index < 0 || index >= len(state.IDs) {
		return state, validationError(fmt.Sprintf("core: slot index %d out of range", index))
	}
	next := state.clone()
	old := next.IDs[index]
	next.IDs[index] = value
	if old == next.PrimaryID {
		next.PrimaryID = value
	}
	return next, nil
}

// SetPrimary designates value as the primary id. The trimmed value must
// already be present among the non-empty trimmed slots.
func SetPrimary(state EditableCredentialState, value string) (EditableCredentialState, error) {
	trimmed := strings.TrimSpace(value)
	found := false
	for _, id := range state.IDs {
		candidate := strings.TrimSpace(id)
		if candidate != "" && candidate == trimmed {
			found = true
			break
		}
	}
	if !found {
		return state, validationError("core: value not in id list")
	}
	next := state.clone()
	next.PrimaryID = trimmed
	return next, nil
}

// resolveCommit applies the commit shaping rules: blank slots are dropped,
// exact repeats collapse to their first occurrence, the primary keeps its
// designation only while it remains a member of the filtered set, and the
// additional list is the filtered set minus one occurrence of the primary.
func resolveCommit(state EditableCredentialState) (validIDs []string, primary string, additional []string) {
	validIDs = make([]string, 0, len(state.IDs))
	seen := make(map[string]struct{})
	for _, raw := range state.IDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		validIDs = append(validIDs, id)
	}

	primary = strings.TrimSpace(state.PrimaryID)
	if primary != "" {
		if _, member := seen[primary]; !member {
			primary = ""
		}
	}
	if primary == "" && len(validIDs) > 0 {
		primary = validIDs[0]
	}

	additional = make([]string, 0, len(validIDs))
	removedPrimary := false
	for _, id := range validIDs {
		if !removedPrimary && id == primary {
			removedPrimary = true
			continue
		}
		additional = append(additional, id)
	}
	return validIDs, primary, additional
}
