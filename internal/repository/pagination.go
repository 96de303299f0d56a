package repository

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// Page is a limit/offset window over the roster, ordered by player id.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalized fills a missing limit with DefaultPageLimit, caps it at
// MaxPageLimit and clamps a negative offset to zero.
func (p Page) Normalized() Page {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	p.Offset = max(p.Offset, 0)
	return p
}

// PageResult is one page plus the size of the whole set. Items is never nil.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
