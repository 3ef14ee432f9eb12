// Package mongodb provides the document-store source connector. It loads
// an entire collection - no query filter, internal _id excluded - and
// materializes the documents as the raw record table.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/tuanvm/carprep/pkg/config"
	"github.com/tuanvm/carprep/pkg/errors"
	"github.com/tuanvm/carprep/pkg/models"
)

// Source reads all documents from a configured database and collection.
type Source struct {
	cfg    config.SourceConfig
	client *mongo.Client
	logger *zap.Logger
}

// New creates a MongoDB source from the source section of the config.
func New(cfg config.SourceConfig, logger *zap.Logger) *Source {
	return &Source{
		cfg:    cfg,
		logger: logger.With(zap.String("connector", "mongodb")),
	}
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return "mongodb"
}

// Read connects to the store, queries the whole collection with the _id
// field projected out, and materializes the result. An unreachable store
// surfaces as a connection error; there is no retry.
func (s *Source) Read(ctx context.Context) (*models.Table, error) {
	clientOpts := options.Client().
		ApplyURI(s.cfg.MongoURI).
		SetConnectTimeout(s.cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to connect to MongoDB").
			WithDetail("uri", s.cfg.MongoURI)
	}
	s.client = client

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "MongoDB unreachable").
			WithDetail("uri", s.cfg.MongoURI)
	}

	collection := client.Database(s.cfg.Database).Collection(s.cfg.Collection)

	// Full collection scan; only the internal identifier is excluded.
	findOpts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	cursor, err := collection.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "failed to query collection").
			WithDetail("database", s.cfg.Database).
			WithDetail("collection", s.cfg.Collection)
	}

	// Decode ordered so the table registers columns in document key
	// order; bson.M would shuffle the output header on every run.
	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode documents")
	}

	table := tableFromDocs(docs)

	s.logger.Info("loaded records from MongoDB",
		zap.Int("rows", table.Len()),
		zap.String("database", s.cfg.Database),
		zap.String("collection", s.cfg.Collection))

	return table, nil
}

// tableFromDocs materializes decoded documents as a table. Columns are
// registered in first-seen document key order before any row is appended,
// so the header is deterministic for a given document set.
func tableFromDocs(docs []bson.D) *models.Table {
	table := models.NewTable()

	var columns []string
	seen := make(map[string]struct{})
	for _, doc := range docs {
		for _, e := range doc {
			if _, ok := seen[e.Key]; !ok {
				seen[e.Key] = struct{}{}
				columns = append(columns, e.Key)
			}
		}
	}
	table.SetColumns(columns)

	for _, doc := range docs {
		data := make(map[string]interface{}, len(doc))
		for _, e := range doc {
			data[e.Key] = e.Value
		}
		table.Append(models.NewRecord("mongodb", data))
	}

	return table
}

// Close disconnects from the store.
func (s *Source) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to disconnect from MongoDB")
	}
	s.client = nil
	return nil
}
