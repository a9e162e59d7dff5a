package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/locatour/tourguide/core"
)

//go:embed ilocos.json
var embeddedDataset []byte

// recordJSON mirrors the dataset's column names.
type recordJSON struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Type                string `json:"type"`
	Location            string `json:"location"`
	DescriptionKeywords string `json:"description_keywords"`
	FullDescription     string `json:"full_description"`
	BestTimeToVisit     string `json:"best_time_to_visit"`
	RelatedItems        string `json:"related_items"`
	NearestHub          string `json:"nearest_hub"`
}

// Load parses a JSON array of tourism records. Every record is validated;
// the first invalid record fails the whole load.
func Load(r io.Reader) ([]core.Record, error) {
	var raw []recordJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	records := make([]core.Record, 0, len(raw))
	for i, rj := range raw {
		record := core.Record{
			Id:                  rj.ID,
			Name:                rj.Name,
			Type:                rj.Type,
			Location:            rj.Location,
			DescriptionKeywords: rj.DescriptionKeywords,
			FullDescription:     rj.FullDescription,
			BestTimeToVisit:     rj.BestTimeToVisit,
			RelatedItems:        rj.RelatedItems,
			NearestHub:          rj.NearestHub,
		}
		if err := core.ValidateRecord(&record); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, rj.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadFile loads records from a JSON file on disk.
func LoadFile(path string) ([]core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Embedded returns the Ilocos Norte dataset that ships with the module.
func Embedded() ([]core.Record, error) {
	return Load(bytes.NewReader(embeddedDataset))
}
