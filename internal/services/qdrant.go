package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// qdrantIndex is the durable MatchIndex backend. One instance maps to one
// Qdrant collection configured with cosine distance, so scores come back
// as raw cosine similarity and go through the same [0,1] mapping as the
// in-memory backend.
//
// Qdrant does not expose insertion order, so equal-similarity ties rank
// in backend order rather than earliest-inserted first.
type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantIndex(urlStr, apiKey, collectionName string, vectorSize int) (MatchIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, 6334 by default
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	idx := &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}

	if err := idx.ensureCollection(context.Background()); err != nil {
		return nil, err
	}
	return idx, nil
}

func (q *qdrantIndex) ensureCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", q.collectionName, err)
	}
	return nil
}

func (q *qdrantIndex) Name() string {
	return q.collectionName
}

// Insert implements MatchIndex. Duplicate detection costs one point
// lookup; Qdrant's own Upsert would silently overwrite.
func (q *qdrantIndex) Insert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	existing, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(id)},
	})
	if err != nil {
		return fmt.Errorf("failed to check point %s: %w", id, err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("index %s: %w: %s", q.collectionName, ErrDuplicateID, id)
	}

	payload := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		payload[k] = v
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(payload),
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point %s: %w", id, err)
	}
	return nil
}

func (q *qdrantIndex) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("index %s: %w: %d", q.collectionName, ErrInvalidTopK, topK)
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.collectionName, err)
	}

	matches := make([]Match, 0, len(points))
	for _, point := range points {
		metadata := make(map[string]string, len(point.Payload))
		for key, value := range point.Payload {
			if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				metadata[key] = val.StringValue
			}
		}

		matches = append(matches, Match{
			ID:       point.Id.GetUuid(),
			Score:    mapCosineToScore(float64(point.Score)),
			Metadata: metadata,
		})
	}
	return matches, nil
}

func (q *qdrantIndex) Size(ctx context.Context) (int, error) {
	count, err := q.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: q.collectionName,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", q.collectionName, err)
	}
	return int(count), nil
}
