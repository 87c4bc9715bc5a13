package dto

// Page is one slice of an ordered collection plus the size of the whole collection.
type Page[T any] struct {
	Content       []T         `json:"content"`
	Params        QueryParams `json:"params"`
	TotalElements int         `json:"total_elements"`
}

func NewPage[T any](content []T, params QueryParams, total int) Page[T] {
	if content == nil {
		content = []T{}
	}

	return Page[T]{
		Content:       content,
		Params:        params,
		TotalElements: total,
	}
}

func (p Page[T]) TotalPages() int {
	if p.Params.Size <= 0 {
		return 1
	}

	return (p.TotalElements + p.Params.Size - 1) / p.Params.Size
}

func (p Page[T]) HasNext() bool {
	return p.Params.Page+1 < p.TotalPages()
}

func (p Page[T]) HasPrevious() bool {
	return p.Params.Page > 0
}
