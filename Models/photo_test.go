package Models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func photoAt(id uint, bodyPart, angle string, createdAt time.Time) Photo {
	return Photo{
		Model:    gorm.Model{ID: id, CreatedAt: createdAt},
		UserID:   1,
		BodyPart: bodyPart,
		Angle:    angle,
	}
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2024-03-05", DateKey(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)))
	// Key derivation is UTC, so late-evening local times can land on
	// the next calendar day.
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, "2024-03-04", DateKey(time.Date(2024, 3, 5, 1, 0, 0, 0, plus3)))
}

func TestGroupPhotosByDate_PartitionsExactly(t *testing.T) {
	day1 := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)

	photos := []Photo{
		photoAt(1, "knee", "front", day2.Add(2*time.Hour)),
		photoAt(2, "knee", "front", day2),
		photoAt(3, "knee", "side", day1),
	}

	grouped := GroupPhotosByDate(photos)

	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["2024-03-06"], 2)
	assert.Len(t, grouped["2024-03-05"], 1)

	// Every photo lands in exactly one bucket and the bucket sizes sum
	// to the total.
	total := 0
	seen := map[uint]bool{}
	for _, bucket := range grouped {
		total += len(bucket)
		for _, photo := range bucket {
			assert.False(t, seen[photo.ID])
			seen[photo.ID] = true
		}
	}
	assert.Equal(t, len(photos), total)

	// Input order (newest first) is preserved inside a bucket.
	assert.Equal(t, uint(1), grouped["2024-03-06"][0].ID)
}

func TestAggregateBodyParts(t *testing.T) {
	early := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	photos := []Photo{
		photoAt(1, "knee", "front", late),
		photoAt(2, "knee", "front", early),
		photoAt(3, "knee", "side", early),
		photoAt(4, "elbow", "", late),
		photoAt(5, "", "front", early), // no body part, ignored
	}

	stats := AggregateBodyParts(photos)

	assert.Len(t, stats, 2)

	knee := stats["knee"]
	assert.Equal(t, 3, knee.Count)
	assert.Equal(t, 2, knee.Angles["front"])
	assert.Equal(t, 1, knee.Angles["side"])
	assert.Equal(t, early, knee.FirstPhoto)
	assert.Equal(t, late, knee.LastPhoto)

	elbow := stats["elbow"]
	assert.Equal(t, 1, elbow.Count)
	assert.Empty(t, elbow.Angles)
}
