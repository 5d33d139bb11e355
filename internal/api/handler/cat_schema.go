package handler

// createCatRequest carries the fields accepted when listing a new cat.
type createCatRequest struct {
	Name  string `json:"name"  validate:"required"`
	Age   int    `json:"age"   validate:"gte=0"`
	Breed string `json:"breed,omitempty"`
}

// updateCatRequest is a partial update; absent fields are left unchanged.
type updateCatRequest struct {
	Name  *string `json:"name,omitempty"`
	Age   *int    `json:"age,omitempty"   validate:"omitempty,gte=0"`
	Breed *string `json:"breed,omitempty"`
}
