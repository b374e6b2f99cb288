package database

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"skillswap/models"
)

// memoryDB is the fallback dataset. One mutex guards all three
// collections; each facade operation completes its read-modify-write
// under the lock, and every mutation schedules a snapshot save.
type memoryDB struct {
	mu          sync.Mutex
	courses     []models.Course
	enrollments []models.Enrollment
	users       []models.User
	files       *FileStore
}

func newMemoryDB(files *FileStore) *memoryDB {
	db := &memoryDB{files: files}
	if snap := files.Load(); snap != nil {
		db.courses = snap.Courses
		db.enrollments = snap.Enrollments
		db.users = snap.Users
		log.Printf("[STORE] loaded %d courses from snapshot", len(db.courses))
	}
	return db
}

func (db *memoryDB) snapshotLocked() Snapshot {
	return Snapshot{
		Courses:     append([]models.Course(nil), db.courses...),
		Enrollments: append([]models.Enrollment(nil), db.enrollments...),
		Users:       append([]models.User(nil), db.users...),
	}
}

func (db *memoryDB) persistLocked() {
	db.files.Save(db.snapshotLocked())
}

// Synthetic ids are opaque strings; they share no structure with the
// database-backed ObjectIDs so the two id spaces never collide.
func memID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

type memCourses struct {
	db *memoryDB
}

func (m *memCourses) Find(_ context.Context, filter CourseFilter) ([]models.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var result []models.Course
	for _, c := range m.db.courses {
		if filter.Email != "" && c.Email != filter.Email {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *memCourses) Latest(_ context.Context, limit int) ([]models.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	sorted := append([]models.Course(nil), m.db.courses...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (m *memCourses) FindByID(_ context.Context, id string) (*models.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, c := range m.db.courses {
		if c.ID == id {
			course := c
			return &course, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memCourses) FindByIDs(_ context.Context, ids []string) ([]models.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var result []models.Course
	for _, c := range m.db.courses {
		if wanted[c.ID] {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *memCourses) Insert(_ context.Context, course *models.Course) (string, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	course.ID = memID("mem-course")
	m.db.courses = append(m.db.courses, *course)
	m.db.persistLocked()
	return course.ID, nil
}

func (m *memCourses) Update(_ context.Context, id string, upd models.CourseUpdate) (UpdateResult, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for i := range m.db.courses {
		if m.db.courses[i].ID != id {
			continue
		}
		if upd.Name != nil {
			m.db.courses[i].Name = *upd.Name
		}
		if upd.Price != nil {
			m.db.courses[i].Price = *upd.Price
		}
		m.db.persistLocked()
		return UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return UpdateResult{}, nil
}

func (m *memCourses) Delete(_ context.Context, id string) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	kept := m.db.courses[:0]
	for _, c := range m.db.courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	deleted := int64(len(m.db.courses) - len(kept))
	m.db.courses = kept
	if deleted > 0 {
		m.db.persistLocked()
	}
	return deleted, nil
}

type memBids struct {
	db *memoryDB
}

func (m *memBids) Find(_ context.Context, filter BidFilter, byPriceDesc bool) ([]models.Enrollment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var result []models.Enrollment
	for _, b := range m.db.enrollments {
		if filter.BuyerEmail != "" && b.BuyerEmail != filter.BuyerEmail {
			continue
		}
		if filter.Product != "" && b.Product != filter.Product {
			continue
		}
		result = append(result, b)
	}
	if byPriceDesc {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].BidPrice > result[j].BidPrice
		})
	}
	return result, nil
}

func (m *memBids) Insert(_ context.Context, bid *models.Enrollment) (string, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	bid.ID = memID("mem")
	m.db.enrollments = append(m.db.enrollments, *bid)
	m.db.persistLocked()
	return bid.ID, nil
}

func (m *memBids) Delete(_ context.Context, id string) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	kept := m.db.enrollments[:0]
	for _, b := range m.db.enrollments {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	deleted := int64(len(m.db.enrollments) - len(kept))
	m.db.enrollments = kept
	if deleted > 0 {
		m.db.persistLocked()
	}
	return deleted, nil
}

type memUsers struct {
	db *memoryDB
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, u := range m.db.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUsers) Insert(_ context.Context, user *models.User) (string, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	user.ID = memID("mem-user")
	m.db.users = append(m.db.users, *user)
	m.db.persistLocked()
	return user.ID, nil
}
