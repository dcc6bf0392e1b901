package models

// CosmonautIn is the request body of create and update. Pointer fields
// tell an absent or null field apart from a zero value.
type CosmonautIn struct {
	Name *string `json:"name" validate:"required,min=1"`
	Age  *int    `json:"age" validate:"required"`
}

type Cosmonaut struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// CreatedCosmonaut is the create response. Its id is the decimal string
// form of the stored integer id while Cosmonaut carries a number; clients
// already depend on both shapes.
type CreatedCosmonaut struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError describes one rejected input field. Loc starts with the
// input source ("body" or "path") followed by the field name.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}
