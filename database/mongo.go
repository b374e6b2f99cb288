package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skillswap/models"
)

const (
	courseCollection = "courses"
	bidCollection    = "enrollments"
	userCollection   = "users"
)

// The *Doc types carry the native ObjectID inside the collection; the
// models expose it as a hex string so callers treat both id spaces as
// opaque strings.

type courseDoc struct {
	OID           primitive.ObjectID `bson:"_id,omitempty"`
	models.Course `bson:",inline"`
}

type bidDoc struct {
	OID               primitive.ObjectID `bson:"_id,omitempty"`
	models.Enrollment `bson:",inline"`
}

type userDoc struct {
	OID         primitive.ObjectID `bson:"_id,omitempty"`
	models.User `bson:",inline"`
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

type mongoCourses struct {
	coll *mongo.Collection
}

func (m *mongoCourses) Find(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query := bson.M{}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	return m.find(ctx, query, nil)
}

func (m *mongoCourses) Latest(ctx context.Context, limit int) ([]models.Course, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return m.find(ctx, bson.M{}, opts)
}

func (m *mongoCourses) FindByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc courseDoc
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	course := doc.Course
	course.ID = doc.OID.Hex()
	return &course, nil
}

func (m *mongoCourses) FindByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	var oids []primitive.ObjectID
	for _, id := range ids {
		// ids referencing the other id space cannot match anything here
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}
	return m.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

func (m *mongoCourses) Insert(ctx context.Context, course *models.Course) (string, error) {
	res, err := m.coll.InsertOne(ctx, courseDoc{Course: *course})
	if err != nil {
		return "", err
	}
	course.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return course.ID, nil
}

func (m *mongoCourses) Update(ctx context.Context, id string, upd models.CourseUpdate) (UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if len(set) == 0 {
		return UpdateResult{}, nil
	}
	res, err := m.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (m *mongoCourses) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *mongoCourses) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Course, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = m.coll.Find(ctx, query, opts)
	} else {
		cur, err = m.coll.Find(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	var docs []courseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(docs))
	for _, doc := range docs {
		course := doc.Course
		course.ID = doc.OID.Hex()
		courses = append(courses, course)
	}
	return courses, nil
}

type mongoBids struct {
	coll *mongo.Collection
}

func (m *mongoBids) Find(ctx context.Context, filter BidFilter, byPriceDesc bool) ([]models.Enrollment, error) {
	query := bson.M{}
	if filter.BuyerEmail != "" {
		query["buyer_email"] = filter.BuyerEmail
	}
	if filter.Product != "" {
		query["product"] = filter.Product
	}

	var cur *mongo.Cursor
	var err error
	if byPriceDesc {
		cur, err = m.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "bid_price", Value: -1}}))
	} else {
		cur, err = m.coll.Find(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	var docs []bidDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	bids := make([]models.Enrollment, 0, len(docs))
	for _, doc := range docs {
		bid := doc.Enrollment
		bid.ID = doc.OID.Hex()
		bids = append(bids, bid)
	}
	return bids, nil
}

func (m *mongoBids) Insert(ctx context.Context, bid *models.Enrollment) (string, error) {
	res, err := m.coll.InsertOne(ctx, bidDoc{Enrollment: *bid})
	if err != nil {
		return "", err
	}
	bid.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return bid.ID, nil
}

func (m *mongoBids) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (m *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	if err := m.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user := doc.User
	user.ID = doc.OID.Hex()
	return &user, nil
}

func (m *mongoUsers) Insert(ctx context.Context, user *models.User) (string, error) {
	res, err := m.coll.InsertOne(ctx, userDoc{User: *user})
	if err != nil {
		return "", err
	}
	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return user.ID, nil
}
