package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/errs"
	"github.com/GregMSThompson/store-tracker/internal/models"
)

// recordStore keeps each collection as a top-level Firestore collection and
// uses the document ID as the row identifier.
type recordStore struct {
	client   *firestore.Client
	clockNow func() time.Time
}

func NewRecordStore(client *firestore.Client) *recordStore {
	return &recordStore{client: client, clockNow: time.Now}
}

func (s *recordStore) collection(kind models.Kind) *firestore.CollectionRef {
	return s.client.Collection(string(kind))
}

func (s *recordStore) Query(ctx context.Context, kind models.Kind, q dto.RecordQuery) ([]models.Row, error) {
	coll := s.collection(kind)
	query := coll.Query
	for _, f := range q.Filters {
		if f.Field == models.FieldID {
			query = query.Where(firestore.DocumentID, string(f.Op), coll.Doc(models.StringValue(f.Value)))
			continue
		}
		query = query.Where(f.Field, string(f.Op), f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []models.Row
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to query "+string(kind), err)
		}
		row := models.Row(doc.Data())
		row[models.FieldID] = doc.Ref.ID
		out = append(out, row)
	}
	return out, nil
}

func (s *recordStore) Insert(ctx context.Context, kind models.Kind, row models.Row) (models.Row, error) {
	data := withDefaults(kind, row, s.clockNow())
	ref, _, err := s.collection(kind).Add(ctx, map[string]any(data))
	if err != nil {
		return nil, errs.NewDatabaseError("create", "failed to insert into "+string(kind), err)
	}
	data[models.FieldID] = ref.ID
	return data, nil
}

func (s *recordStore) Delete(ctx context.Context, kind models.Kind, id string) error {
	_, err := s.collection(kind).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError(string(kind) + " entry not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete from "+string(kind), err)
	}
	return nil
}
