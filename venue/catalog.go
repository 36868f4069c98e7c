package venue

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fogleman/pt/pt"
)

// JSON schema types
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type SeatJSON struct {
	ID       int       `json:"id"`
	Row      int       `json:"row"`
	Number   int       `json:"seatNumber"`
	Label    string    `json:"label"`
	Position PointJSON `json:"position"`
	Rotation float64   `json:"rotation"`
}

type SourceJSON struct {
	Position PointJSON `json:"position"`
	Height   float64   `json:"height"`
}

// CatalogJSON is the seat catalog handed to renderers and seat pickers.
type CatalogJSON struct {
	FocalPoint PointJSON  `json:"focalPoint"`
	Source     SourceJSON `json:"source"`
	Seats      []SeatJSON `json:"seats"`
}

func VectorToJSON(v pt.Vector) PointJSON {
	return PointJSON{X: v.X, Y: v.Y, Z: v.Z}
}

func (p PointJSON) Vector() pt.Vector {
	return V(p.X, p.Y, p.Z)
}

func SeatToJSON(s Seat) SeatJSON {
	return SeatJSON{
		ID:       s.ID,
		Row:      s.Row,
		Number:   s.Number,
		Label:    s.Label(),
		Position: VectorToJSON(s.Position),
		Rotation: s.Facing,
	}
}

func NewCatalog(l Layout, src Source) CatalogJSON {
	c := CatalogJSON{
		FocalPoint: VectorToJSON(l.Geometry.FocalPoint),
		Source: SourceJSON{
			Position: VectorToJSON(src.Position),
			Height:   src.Height,
		},
		Seats: make([]SeatJSON, 0, l.Len()),
	}
	for _, s := range l.seats {
		c.Seats = append(c.Seats, SeatToJSON(s))
	}
	return c
}

// WriteCatalog encodes the catalog of l as indented JSON.
func WriteCatalog(w io.Writer, l Layout, src Source) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewCatalog(l, src)); err != nil {
		return fmt.Errorf("encoding seat catalog: %w", err)
	}
	return nil
}

// SaveCatalog writes the catalog of l to filename.
func SaveCatalog(filename string, l Layout, src Source) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating seat catalog: %w", err)
	}
	defer f.Close()
	if err := WriteCatalog(f, l, src); err != nil {
		return err
	}
	return f.Close()
}
