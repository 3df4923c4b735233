package common

const (
	// MaxSubmitRequestBody limits JSON request bodies on the submit endpoint.
	MaxSubmitRequestBody = 1 << 20
	// MaxEmailLength follows RFC 5321 on total address length.
	MaxEmailLength = 254
)
