package favorites

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

// MongoConfig locates the favorites collection.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// MongoStore keeps one document per favorite, keyed by ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "shelfmount"
	}
	if cfg.Collection == "" {
		cfg.Collection = "favorites"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list favorites")
	}
	favs := []Favorite{}
	if err := cur.All(ctx, &favs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "decode favorites")
	}
	return favs, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Favorite, error) {
	var f Favorite
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Favorite{}, notFound(id)
	}
	if err != nil {
		return Favorite{}, errs.Wrap(errs.ErrCodeStorage, err, "get favorite %s", id)
	}
	return f, nil
}

func (s *MongoStore) Save(ctx context.Context, f Favorite) (Favorite, error) {
	f, err := prepare(f)
	if err != nil {
		return Favorite{}, err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: f.ID}}, f, options.Replace().SetUpsert(true))
	if err != nil {
		return Favorite{}, errs.Wrap(errs.ErrCodeStorage, err, "save favorite %s", f.ID)
	}
	return f, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "delete favorite %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close() error { return s.client.Disconnect(context.Background()) }

var _ Store = (*MongoStore)(nil)
