// Package classify defines the validation pipeline for uploaded
// attachments.
//
// A pipeline is an ordered list of independent checks. Every check
// inspects the upload in isolation and reports a pass/fail result with
// a human-readable detail; the pipeline runs all checks regardless of
// individual failures and returns the concatenated results. There is
// no shared state between checks, no retry and no early abort.
package classify
