package dto

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK builds a successful envelope.
func OK(message string, data any) Response {
	return Response{Status: true, Message: message, Data: data}
}

// Fail builds a failed envelope with an empty data list.
func Fail(message string) Response {
	return Response{Status: false, Message: message, Data: []any{}}
}

// PageRequest is the optional page and limit accepted by list endpoints.
type PageRequest struct {
	Page  int `json:"page" form:"page" binding:"omitempty,gte=1"`
	Limit int `json:"limit" form:"limit" binding:"omitempty,gte=1,lte=100"`
}
