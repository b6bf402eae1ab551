package samplerequest

type CreatedEvent struct {
	Result SampleRequest
}

type StatusChangedEvent struct {
	Result   SampleRequest
	Previous Status
}

type DeadlineRescheduledEvent struct {
	Result SampleRequest
	Change DeadlineChange
}
