package constants

// Standard response field keys
const (
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
	ResponseFieldError   = "error"
	ResponseFieldSuccess = "success"
	ResponseFieldData    = "data"
)

// BuildErrorResponse builds the standard error envelope
func BuildErrorResponse(message string, details any) map[string]any {
	resp := map[string]any{
		ResponseFieldSuccess: false,
		ResponseFieldMessage: message,
	}
	if details != nil {
		resp[ResponseFieldDetails] = details
	}
	return resp
}

// BuildSuccessResponse builds the standard success envelope
func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
	}
}

// BuildMessageResponse builds a message envelope with an explicit success flag
func BuildMessageResponse(message string, success bool) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: success,
		ResponseFieldMessage: message,
	}
}
