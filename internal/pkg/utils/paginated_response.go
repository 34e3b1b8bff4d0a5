package utils

// PageResponse is the envelope for paginated listings, used by the shared
// game board browser. NextPageToken is omitted on the last page so clients
// can treat its presence as "more to fetch".
type PageResponse[T any] struct {
	Items         []T   `json:"items"`
	NextPageToken int64 `json:"nextPageToken,omitempty"`
	ItemCount     int64 `json:"itemCount"`
}

func NewPageResponse[T any]() *PageResponse[T] {
	return &PageResponse[T]{}
}

func (pr *PageResponse[T]) WithItems(items []T) *PageResponse[T] {
	pr.Items = items
	return pr
}

func (pr *PageResponse[T]) WithNextPageToken(pageToken int64) *PageResponse[T] {
	pr.NextPageToken = pageToken
	return pr
}

func (pr *PageResponse[T]) WithItemCount(itemCount int64) *PageResponse[T] {
	pr.ItemCount = itemCount
	return pr
}
