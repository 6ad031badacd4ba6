package letta

import (
	"context"
	"errors"
	"iter"
	"strconv"
)

// StreamState is the lifecycle state of a Stream.
type StreamState int

const (
	// StateIdle means buffered items remain or another page can be fetched.
	StateIdle StreamState = iota
	// StateFetching means a page request is in flight.
	StateFetching
	// StateExhausted means no further items will be produced.
	StateExhausted
)

// String returns the state name.
func (s StreamState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Page is one page of a cursor-paginated listing. An empty NextCursor means
// there are no further pages.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// PageFetcher retrieves the page described by params.
type PageFetcher[T any] func(ctx context.Context, params ListParams) (Page[T], error)

// Stream lazily walks a cursor-paginated listing, fetching a page only when
// the previously fetched items have been consumed. A Stream is owned by a
// single consumer and is not safe for concurrent use.
type Stream[T any] struct {
	fetch    PageFetcher[T]
	params   ListParams
	buffer   []T
	fetching bool
	done     bool
	err      error
}

// NewStream creates a stream starting at params.
func NewStream[T any](params ListParams, fetch PageFetcher[T]) *Stream[T] {
	return &Stream[T]{
		fetch:  fetch,
		params: params,
	}
}

// State reports the stream's current state.
func (s *Stream[T]) State() StreamState {
	switch {
	case s.fetching:
		return StateFetching
	case s.done && len(s.buffer) == 0:
		return StateExhausted
	default:
		return StateIdle
	}
}

// Err returns the error that halted the stream, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// Cursor returns the parameters of the next page request. After a failed
// fetch it still points at the page that failed, so a new stream built from
// it resumes where this one stopped.
func (s *Stream[T]) Cursor() ListParams {
	return s.params
}

// Next returns the next item. It returns ErrNoMoreItems once the listing is
// exhausted. A fetch error is returned once; the stream then halts.
func (s *Stream[T]) Next(ctx context.Context) (T, error) {
	var zero T

	for len(s.buffer) == 0 {
		if s.done {
			return zero, ErrNoMoreItems
		}

		err := s.fetchPage(ctx)
		if err != nil {
			return zero, err
		}
	}

	item := s.buffer[0]
	s.buffer = s.buffer[1:]

	return item, nil
}

func (s *Stream[T]) fetchPage(ctx context.Context) error {
	s.fetching = true
	page, err := s.fetch(ctx, s.params)
	s.fetching = false

	if err != nil {
		s.done = true
		s.err = err

		return err
	}

	s.buffer = page.Items

	short := s.params.Limit != nil && len(page.Items) < *s.params.Limit
	if len(page.Items) == 0 || page.NextCursor == "" || short {
		s.done = true

		return nil
	}

	s.params.After = page.NextCursor

	return nil
}

// All returns a range-over-func sequence of the remaining items. A fetch
// error is yielded once as the final element. Breaking out of the loop
// stops the stream without further requests.
func (s *Stream[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := s.Next(ctx)
			if errors.Is(err, ErrNoMoreItems) {
				return
			}

			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			if !yield(item, nil) {
				return
			}
		}
	}
}

// Collect drains the stream. On error it returns the items gathered so far
// together with the error.
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T

	for item, err := range s.All(ctx) {
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// Take returns up to n items, fetching only the pages needed to produce them.
func (s *Stream[T]) Take(ctx context.Context, n int) ([]T, error) {
	items := make([]T, 0, max(n, 0))
	if n <= 0 {
		return items, nil
	}

	for item, err := range s.All(ctx) {
		if err != nil {
			return items, err
		}

		items = append(items, item)
		if len(items) == n {
			break
		}
	}

	return items, nil
}

// IDCursor builds a page for endpoints that return a bare array and page
// with an "after" id. The next cursor is the id of the last item when the
// page is full, or when no limit was requested and the page is non-empty.
func IDCursor[T any](items []T, id func(T) string, limit *int) Page[T] {
	page := Page[T]{Items: items}
	if len(items) == 0 {
		return page
	}

	if limit == nil || len(items) >= *limit {
		page.NextCursor = id(items[len(items)-1])
	}

	return page
}

// OffsetFetcher retrieves a page of an offset-paginated listing and reports
// whether more pages follow.
type OffsetFetcher[T any] func(ctx context.Context, offset int, limit *int) ([]T, bool, error)

// NewOffsetStream adapts an offset-paginated listing to a Stream. The cursor
// carries the next offset in its After field.
func NewOffsetStream[T any](offset int, limit *int, fetch OffsetFetcher[T]) *Stream[T] {
	params := ListParams{Limit: limit}
	if offset > 0 {
		params.After = strconv.Itoa(offset)
	}

	return NewStream(params, func(ctx context.Context, p ListParams) (Page[T], error) {
		current := 0
		if p.After != "" {
			parsed, err := strconv.Atoi(p.After)
			if err != nil {
				return Page[T]{}, &InvalidConfigError{Field: "offset", Reason: err.Error()}
			}

			current = parsed
		}

		items, hasNext, err := fetch(ctx, current, p.Limit)
		if err != nil {
			return Page[T]{}, err
		}

		page := Page[T]{Items: items}
		if hasNext && len(items) > 0 {
			page.NextCursor = strconv.Itoa(current + len(items))
		}

		return page, nil
	})
}
