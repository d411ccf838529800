package catalog

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/1F47E/campus-nav/pkg/models"
)

// SnapshotData is the serializable form of a loaded catalog
type SnapshotData struct {
	Locations []models.Location
	Count     int
	SavedAt   time.Time
}

// SaveSnapshot writes the catalog records to a binary file
func SaveSnapshot(filename string, c *Catalog) error {
	data := SnapshotData{
		Locations: c.Records(),
		Count:     c.Len(),
		SavedAt:   time.Now().UTC(),
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode data: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Snapshot is a Source reading a file written by SaveSnapshot
type Snapshot struct {
	Path string
}

func (s Snapshot) Load(ctx context.Context) ([]models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data SnapshotData
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	if data.Count != len(data.Locations) {
		return nil, fmt.Errorf("corrupt snapshot: header says %d locations, found %d",
			data.Count, len(data.Locations))
	}

	return data.Locations, nil
}
