package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Photo struct {
	gorm.Model
	UserID         uint           `json:"user_id"`
	ConsultationID *uint          `json:"consultation_id" gorm:"default:null"`
	URL            string         `json:"url"`
	Caption        string         `json:"caption"`
	BodyPart       string         `gorm:"size:64" json:"body_part"`
	Angle          string         `gorm:"size:64" json:"angle"`
	Metadata       datatypes.JSON `json:"metadata"`
}

// DateKey reduces a timestamp to its UTC calendar day, the bucket key
// used when grouping progress photos for before/after comparison.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// GroupPhotosByDate buckets photos by capture day. Input order is kept
// inside each bucket, so feeding a newest-first listing yields
// newest-first buckets.
func GroupPhotosByDate(photos []Photo) map[string][]Photo {
	grouped := make(map[string][]Photo)
	for _, photo := range photos {
		key := DateKey(photo.CreatedAt)
		grouped[key] = append(grouped[key], photo)
	}
	return grouped
}

// BodyPartStat accumulates per-body-part photo statistics.
type BodyPartStat struct {
	Count      int            `json:"count"`
	Angles     map[string]int `json:"angles"`
	FirstPhoto time.Time      `json:"first_photo"`
	LastPhoto  time.Time      `json:"last_photo"`
}

// AggregateBodyParts tallies counts, per-angle counts and first/last
// capture time for every photo that names a body part.
func AggregateBodyParts(photos []Photo) map[string]*BodyPartStat {
	stats := make(map[string]*BodyPartStat)
	for _, photo := range photos {
		if photo.BodyPart == "" {
			continue
		}
		stat, ok := stats[photo.BodyPart]
		if !ok {
			stat = &BodyPartStat{
				Angles:     make(map[string]int),
				FirstPhoto: photo.CreatedAt,
				LastPhoto:  photo.CreatedAt,
			}
			stats[photo.BodyPart] = stat
		}
		stat.Count++
		if photo.Angle != "" {
			stat.Angles[photo.Angle]++
		}
		if photo.CreatedAt.Before(stat.FirstPhoto) {
			stat.FirstPhoto = photo.CreatedAt
		}
		if photo.CreatedAt.After(stat.LastPhoto) {
			stat.LastPhoto = photo.CreatedAt
		}
	}
	return stats
}
