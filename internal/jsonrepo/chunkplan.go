package jsonrepo

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ostreetar/ostree-tar/ostreetar"
)

// ChunkEntryRecord is one content object's contribution to a chunk,
// mirroring ostreetar.ChunkEntry's JSON shape.
type ChunkEntryRecord struct {
	Checksum string   `json:"checksum"`
	Size     int64    `json:"size"`
	Paths    []string `json:"paths"`
}

// ChunkRecord is the on-disk JSON shape of a single chunk, consumed by the
// CLI's "export --chunk" mode.
type ChunkRecord struct {
	Entries []ChunkEntryRecord `json:"entries"`
}

// toChunk converts a ChunkRecord to the ostreetar.Chunk it describes.
func (c ChunkRecord) toChunk() ostreetar.Chunk {
	chunk := ostreetar.Chunk{Entries: make([]ostreetar.ChunkEntry, len(c.Entries))}
	for i, e := range c.Entries {
		chunk.Entries[i] = ostreetar.ChunkEntry{Checksum: e.Checksum, Size: e.Size, Paths: e.Paths}
	}
	return chunk
}

// LoadChunk reads a ChunkRecord document from path and returns the Chunk it
// describes, for the CLI's "export --chunk" mode.
func LoadChunk(path string) (ostreetar.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return ostreetar.Chunk{}, fmt.Errorf("jsonrepo: opening chunk plan: %w", err)
	}
	defer f.Close()
	return DecodeChunk(f)
}

// DecodeChunk parses a ChunkRecord document from r.
func DecodeChunk(r io.Reader) (ostreetar.Chunk, error) {
	var rec ChunkRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return ostreetar.Chunk{}, fmt.Errorf("jsonrepo: decoding chunk plan: %w", err)
	}
	return rec.toChunk(), nil
}

// MetadataInventoryRecord names one metadata object a final-chunk plan
// wants carried ahead of the residual content.
type MetadataInventoryRecord struct {
	Type     string `json:"type"` // "dirtree" or "dirmeta"
	Checksum string `json:"checksum"`
}

// ChunkPlanRecord is the on-disk JSON shape of a full final-chunk plan,
// consumed by the CLI's "export --final-chunk" mode. It implements
// ostreetar.ChunkPlanner directly once decoded.
type ChunkPlanRecord struct {
	MetadataEntries []MetadataInventoryRecord `json:"metadataInventory"`
	Residual        ChunkRecord               `json:"residual"`
}

// LoadChunkPlan reads a ChunkPlanRecord document from path.
func LoadChunkPlan(path string) (*ChunkPlanRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jsonrepo: opening chunk plan: %w", err)
	}
	defer f.Close()
	return DecodeChunkPlan(f)
}

// DecodeChunkPlan parses a ChunkPlanRecord document from r.
func DecodeChunkPlan(r io.Reader) (*ChunkPlanRecord, error) {
	var rec ChunkPlanRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("jsonrepo: decoding chunk plan: %w", err)
	}
	for _, m := range rec.MetadataEntries {
		if m.Type != "dirtree" && m.Type != "dirmeta" {
			return nil, fmt.Errorf("jsonrepo: chunk plan metadata inventory entry %q has unsupported type %q", m.Checksum, m.Type)
		}
	}
	return &rec, nil
}

// MetadataInventory implements ostreetar.ChunkPlanner.
func (p *ChunkPlanRecord) MetadataInventory() []ostreetar.MetadataInventoryEntry {
	entries := make([]ostreetar.MetadataInventoryEntry, len(p.MetadataEntries))
	for i, m := range p.MetadataEntries {
		t := ostreetar.ObjectDirTree
		if m.Type == "dirmeta" {
			t = ostreetar.ObjectDirMeta
		}
		entries[i] = ostreetar.MetadataInventoryEntry{Type: t, Checksum: m.Checksum}
	}
	return entries
}

// ResidualChunk implements ostreetar.ChunkPlanner.
func (p *ChunkPlanRecord) ResidualChunk() ostreetar.Chunk {
	return p.Residual.toChunk()
}
