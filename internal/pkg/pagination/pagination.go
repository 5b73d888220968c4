package pagination

import (
	"errors"
	"fmt"
)

// QuizPageSize is the number of quiz questions served per page.
const QuizPageSize = 5

var (
	ErrInvalidPage     = errors.New("page does not exist")
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Window is the half-open index range [Start, End) of one page.
type Window struct {
	Page       int
	Start      int
	End        int
	TotalPages int
}

func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate locates 1-indexed page within a sequence of total items.
func Paginate(total, size, page int) (Window, error) {
	if size <= 0 {
		return Window{}, ErrInvalidPageSize
	}
	pages := TotalPages(total, size)
	if page < 1 || page > pages {
		return Window{TotalPages: pages}, fmt.Errorf("%w: page %d, total pages %d", ErrInvalidPage, page, pages)
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	return Window{Page: page, Start: start, End: end, TotalPages: pages}, nil
}
