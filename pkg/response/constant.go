package response

const (
	MessageSuccess      = "Success"
	MessageUnauthorized = "Unauthorized"
	MessageInternal     = "Something went wrong"
)
