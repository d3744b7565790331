package request

// Status transition guards. The lifecycle is
// DRAFT -> SUBMITTED -> {APPROVED, REJECTED}, with CANCELLED reachable from
// DRAFT and SUBMITTED. Terminal statuses admit no further transitions.

func canSubmit(r *Request) bool {
	return r.Status == StatusDraft
}

func canApprove(r *Request) bool {
	return r.Status == StatusSubmitted
}

func canReject(r *Request) bool {
	return r.Status == StatusSubmitted
}

func canCancel(r *Request) bool {
	return r.Status == StatusDraft || r.Status == StatusSubmitted
}
