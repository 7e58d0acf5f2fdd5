// Package checkout provides the checkout session aggregate: the draft
// delivery address a customer is editing, together with the delivery
// eligibility state attached to it.
//
// The session solves one problem: a stale eligibility verdict must never
// survive an input change. Every edit to the pincode or the coordinates
// bumps an input version and drops the verdict back to unknown; eligibility
// results are tagged with the version they were computed for and are
// discarded on arrival if the input has moved on. Auto-detected locations
// merge field by field, and manual edits made while a detection was in
// flight win over the detected values.
package checkout
