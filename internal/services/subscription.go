package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Snapshot is one full replacement of a subscribed record list; it is never
// a diff. When the underlying listener fails, the final snapshot carries Err
// with no records and the channel closes. The error is sticky and no
// reconnect is attempted here.
type Snapshot[T any] struct {
	Records []T
	Err     error
}

// emptySnapshot returns a channel that yields a single empty snapshot and
// closes. Used when there is no authenticated user to subscribe for.
func emptySnapshot[T any]() <-chan Snapshot[T] {
	out := make(chan Snapshot[T], 1)
	out <- Snapshot[T]{Records: []T{}}
	close(out)
	return out
}

// watch drives a Firestore listener and emits one fully decoded snapshot per
// remote change until ctx is cancelled. Documents that fail to decode are
// logged and skipped rather than poisoning the whole snapshot. The channel
// closes on teardown; nothing is emitted after that.
func watch[T any](ctx context.Context, q firestore.Query, log zerolog.Logger, collection string, decode func(*firestore.DocumentSnapshot) (T, error), out chan<- Snapshot[T]) {
	defer close(out)

	it := q.Snapshots(ctx)
	defer it.Stop()

	for {
		qs, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return
			}
			log.Error().Err(err).Str("collection", collection).Msg("subscription failed")
			select {
			case out <- Snapshot[T]{Err: fmt.Errorf("failed to watch %s: %w", collection, err)}:
			case <-ctx.Done():
			}
			return
		}

		records := make([]T, 0, qs.Size)
		docs := qs.Documents
		for {
			doc, err := docs.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				log.Error().Err(err).Str("collection", collection).Msg("subscription iteration failed")
				select {
				case out <- Snapshot[T]{Err: fmt.Errorf("failed to iterate %s: %w", collection, err)}:
				case <-ctx.Done():
				}
				return
			}
			rec, err := decode(doc)
			if err != nil {
				log.Warn().Err(err).Str("collection", collection).Str("doc", doc.Ref.ID).Msg("skipping undecodable document")
				continue
			}
			records = append(records, rec)
		}

		select {
		case out <- Snapshot[T]{Records: records}:
		case <-ctx.Done():
			return
		}
	}
}
