package database

import (
	"log"
	"time"

	"skillswap/models"
)

// seedCourses mirrors the demo dataset the frontend ships with
// (public/skills.json).
func seedCourses() []models.Course {
	now := time.Now()
	return []models.Course{
		{
			ID:             "seed-1",
			SkillName:      "Beginner Guitar Lessons",
			ProviderName:   "Alex Martin",
			ProviderEmail:  "alex@skillswap.com",
			Price:          20,
			Rating:         4.8,
			SlotsAvailable: 3,
			Description:    "Acoustic guitar classes for complete beginners.",
			Image:          "https://images.pexels.com/photos/164821/pexels-photo-164821.jpeg",
			Category:       "Music",
			CreatedAt:      now,
		},
		{
			ID:             "seed-2",
			SkillName:      "Spoken English Practice",
			ProviderName:   "Sara Hossain",
			ProviderEmail:  "sara@skillswap.com",
			Price:          10,
			Rating:         4.6,
			SlotsAvailable: 5,
			Description:    "Conversational English sessions for non-native speakers.",
			Image:          "https://images.pexels.com/photos/3861969/pexels-photo-3861969.jpeg",
			Category:       "Language",
			CreatedAt:      now,
		},
		{
			ID:             "seed-3",
			SkillName:      "Basic Photography Workshop",
			ProviderName:   "John Ray",
			ProviderEmail:  "john@skillswap.com",
			Price:          15,
			Rating:         4.7,
			SlotsAvailable: 4,
			Description:    "Learn the fundamentals of photography and camera handling.",
			Image:          "https://images.pexels.com/photos/3184323/pexels-photo-3184323.jpeg",
			Category:       "Art",
			CreatedAt:      now,
		},
		{
			ID:             "seed-4",
			SkillName:      "Cooking for Beginners",
			ProviderName:   "Nadia Rahman",
			ProviderEmail:  "nadia@skillswap.com",
			Price:          12,
			Rating:         4.9,
			SlotsAvailable: 6,
			Description:    "Learn to cook simple and delicious everyday meals.",
			Image:          "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg",
			Category:       "Cooking",
			CreatedAt:      now,
		},
		{
			ID:             "seed-5",
			SkillName:      "Web Development Basics",
			ProviderName:   "Rahul Das",
			ProviderEmail:  "rahul@skillswap.com",
			Price:          25,
			Rating:         4.8,
			SlotsAvailable: 5,
			Description:    "Learn HTML, CSS, and JavaScript to build your first website.",
			Image:          "https://images.pexels.com/photos/1181675/pexels-photo-1181675.jpeg",
			Category:       "Technology",
			CreatedAt:      now,
		},
		{
			ID:             "seed-6",
			SkillName:      "Graphic Design with Canva",
			ProviderName:   "Lina Chowdhury",
			ProviderEmail:  "lina@skillswap.com",
			Price:          8,
			Rating:         4.5,
			SlotsAvailable: 10,
			Description:    "Create eye-catching social media graphics using Canva.",
			Image:          "https://images.pexels.com/photos/267389/pexels-photo-267389.jpeg",
			Category:       "Design",
			CreatedAt:      now,
		},
	}
}

// SeedIfEmpty populates the in-memory store with the demo dataset when
// nothing was restored from a snapshot. Never runs against a live
// database connection, to avoid duplicating seed data into persistent
// storage.
func (s *Store) SeedIfEmpty() {
	if s.DatabaseActive() {
		return
	}

	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()

	if len(s.mem.courses) > 0 {
		return
	}
	s.mem.courses = seedCourses()
	s.mem.persistLocked()
	log.Printf("[SEED] seeded %d in-memory courses", len(s.mem.courses))
}
