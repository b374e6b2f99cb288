package database

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"skillswap/models"
)

var (
	// ErrNotFound means no entity exists under the given id or key.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID means the id is structurally invalid for the active backend.
	ErrInvalidID = errors.New("invalid id")
)

// UpdateResult reports how many documents a partial update touched.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// CourseFilter narrows course listings. An empty filter matches everything.
type CourseFilter struct {
	Email string
}

// BidFilter narrows enrollment listings. An empty filter matches everything.
type BidFilter struct {
	BuyerEmail string
	Product    string
}

type CourseStore interface {
	Find(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	Latest(ctx context.Context, limit int) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Course, error)
	Insert(ctx context.Context, course *models.Course) (string, error)
	Update(ctx context.Context, id string, upd models.CourseUpdate) (UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type BidStore interface {
	Find(ctx context.Context, filter BidFilter, byPriceDesc bool) ([]models.Enrollment, error)
	Insert(ctx context.Context, bid *models.Enrollment) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (string, error)
}

// Store is the persistence facade. It starts on the in-memory backends
// and swaps to the MongoDB-backed ones once Connect succeeds; callers
// never see which side is active.
type Store struct {
	mu      sync.RWMutex
	courses CourseStore
	bids    BidStore
	users   UserStore

	mem      *memoryDB
	client   *mongo.Client
	dbActive bool
	ready    bool
}

// NewStore builds a facade over the in-memory backends, restoring any
// previously persisted snapshot.
func NewStore(files *FileStore) *Store {
	mem := newMemoryDB(files)
	return &Store{
		courses: &memCourses{db: mem},
		bids:    &memBids{db: mem},
		users:   &memUsers{db: mem},
		mem:     mem,
		// ready from the start so requests are served while the async
		// connection attempt is still running
		ready: true,
	}
}

func (s *Store) Courses() CourseStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses
}

func (s *Store) Bids() BidStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bids
}

func (s *Store) Users() UserStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users
}

// Ready reports whether the process can serve requests. It is true from
// construction and never drops, even when the connection attempt fails.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// DatabaseActive reports whether operations are routed to MongoDB.
func (s *Store) DatabaseActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dbActive
}

// Connect attempts the MongoDB connection. Meant to run in its own
// goroutine: a failed attempt leaves the process in fallback mode until
// restart, it never crashes or retries.
func (s *Store) Connect(uri, dbName string) {
	log.Println("[DB] attempting MongoDB connection...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetServerSelectionTimeout(10 * time.Second).
		SetSocketTimeout(45 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Printf("[DB] connection error: %v", err)
		log.Println("[DB] running in IN-MEMORY MODE (data persists to snapshot only)")
		return
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Printf("[DB] ping failed: %v", err)
		log.Println("[DB] running in IN-MEMORY MODE (data persists to snapshot only)")
		return
	}

	db := client.Database(dbName)
	s.migrateMemory(ctx, db)

	s.mu.Lock()
	s.client = client
	s.courses = &mongoCourses{coll: db.Collection(courseCollection)}
	s.bids = &mongoBids{coll: db.Collection(bidCollection)}
	s.users = &mongoUsers{coll: db.Collection(userCollection)}
	s.dbActive = true
	s.mu.Unlock()

	log.Println("[DB] MongoDB connected, collections ready: courses, enrollments, users")
}

// migrateMemory copies rows created before the connection succeeded into
// their collections, once, best-effort. Seed rows stay local so a live
// database is never polluted with demo data.
func (s *Store) migrateMemory(ctx context.Context, db *mongo.Database) {
	s.mem.mu.Lock()
	snap := s.mem.snapshotLocked()
	s.mem.mu.Unlock()

	var courses []interface{}
	for _, c := range snap.Courses {
		if strings.HasPrefix(c.ID, "seed-") {
			continue
		}
		c.ID = ""
		courses = append(courses, courseDoc{Course: c})
	}
	if len(courses) > 0 {
		if _, err := db.Collection(courseCollection).InsertMany(ctx, courses); err != nil {
			log.Printf("[DB] course migration error: %v", err)
		} else {
			log.Printf("[DB] migrated %d in-memory courses", len(courses))
		}
	}

	var bids []interface{}
	for _, b := range snap.Enrollments {
		b.ID = ""
		bids = append(bids, bidDoc{Enrollment: b})
	}
	if len(bids) > 0 {
		if _, err := db.Collection(bidCollection).InsertMany(ctx, bids); err != nil {
			log.Printf("[DB] enrollment migration error: %v", err)
		} else {
			log.Printf("[DB] migrated %d in-memory enrollments", len(bids))
		}
	}

	var users []interface{}
	for _, u := range snap.Users {
		u.ID = ""
		users = append(users, userDoc{User: u})
	}
	if len(users) > 0 {
		if _, err := db.Collection(userCollection).InsertMany(ctx, users); err != nil {
			log.Printf("[DB] user migration error: %v", err)
		} else {
			log.Printf("[DB] migrated %d in-memory users", len(users))
		}
	}
}

// FlushSnapshot forces the current in-memory state to disk, bypassing
// the debounce window.
func (s *Store) FlushSnapshot() {
	s.mem.mu.Lock()
	s.mem.persistLocked()
	s.mem.mu.Unlock()
	s.mem.files.Flush()
}

// ClearMemory wipes the in-memory dataset. Debug aid.
func (s *Store) ClearMemory() {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	s.mem.courses = nil
	s.mem.enrollments = nil
	s.mem.users = nil
	s.mem.persistLocked()
}
