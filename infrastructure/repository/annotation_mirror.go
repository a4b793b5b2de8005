package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"multilabel-go/domain/annotation"
)

// annotationDocument is the MongoDB document structure for annotation records.
type annotationDocument struct {
	Dataset       string          `bson:"dataset"`
	ImageFilename string          `bson:"img_filename"`
	Labels        []labelDocument `bson:"labels"`
	UpdatedAt     time.Time       `bson:"updated_at"`
}

// labelDocument is the MongoDB document structure for one attribute label.
type labelDocument struct {
	Attribute string `bson:"attribute"`
	Value     string `bson:"value"`
}

// MongoAnnotationRepository mirrors annotation records into a MongoDB collection,
// one document per (dataset, image file name).
type MongoAnnotationRepository struct {
	collection *mongo.Collection
	database   string
	dataset    string
	timeout    time.Duration
	logger     *slog.Logger
}

// MongoAnnotationConfig holds configuration for MongoAnnotationRepository.
type MongoAnnotationConfig struct {
	Collection string
	Dataset    string
	Timeout    time.Duration
}

// NewMongoAnnotationRepository creates a new MongoDB-based annotation repository.
func NewMongoAnnotationRepository(db *MongoDB, cfg *MongoAnnotationConfig, logger *slog.Logger) *MongoAnnotationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Collection == "" {
		cfg.Collection = "annotation"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &MongoAnnotationRepository{
		collection: db.Collection(cfg.Collection),
		database:   db.DatabaseName(),
		dataset:    cfg.Dataset,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

// Location returns a descriptive URI for the mirrored record.
func (r *MongoAnnotationRepository) Location(imageFilename string) string {
	return mirrorLocation(r.database, r.collection.Name(), r.dataset, imageFilename)
}

func mirrorLocation(database, collection, dataset, imageFilename string) string {
	return fmt.Sprintf("mongodb:%s/%s/%s/%s", database, collection, dataset, imageFilename)
}

// Save upserts the record.
func (r *MongoAnnotationRepository) Save(ctx context.Context, rec *annotation.Record) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := recordToDocument(rec, r.dataset)
	filter := bson.M{"dataset": r.dataset, "img_filename": rec.ImageFilename}
	update := bson.M{"$set": doc}

	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert annotation: %w", err)
	}

	r.logger.Debug("Annotation mirrored", "image", rec.ImageFilename, "dataset", r.dataset)
	return nil
}

// Load retrieves a mirrored record. Returns nil if not found.
func (r *MongoAnnotationRepository) Load(ctx context.Context, imageFilename string) (*annotation.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"dataset": r.dataset, "img_filename": imageFilename}
	var doc annotationDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find annotation: %w", err)
	}

	return documentToRecord(&doc), nil
}

// recordToDocument converts a domain Record to a MongoDB document.
func recordToDocument(rec *annotation.Record, dataset string) *annotationDocument {
	doc := &annotationDocument{
		Dataset:       dataset,
		ImageFilename: rec.ImageFilename,
		Labels:        make([]labelDocument, len(rec.Labels)),
		UpdatedAt:     time.Now().UTC(),
	}
	for i, l := range rec.Labels {
		doc.Labels[i] = labelDocument{Attribute: l.Attribute, Value: l.Value}
	}
	return doc
}

// documentToRecord converts a MongoDB document to a domain Record.
func documentToRecord(doc *annotationDocument) *annotation.Record {
	rec := &annotation.Record{
		ImageFilename: doc.ImageFilename,
		Labels:        make([]annotation.Label, len(doc.Labels)),
	}
	for i, l := range doc.Labels {
		rec.Labels[i] = annotation.Label{Attribute: l.Attribute, Value: l.Value}
	}
	return rec
}

// Ensure MongoAnnotationRepository implements annotation.Repository
var _ annotation.Repository = (*MongoAnnotationRepository)(nil)
