package user

type CreatedEvent struct {
	Result User
}

type SignedInEvent struct {
	Result User
	IP     string
}
