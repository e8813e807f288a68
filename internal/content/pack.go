package content

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// PackFormat is the content pack major version this build reads.
const PackFormat = "v1"

// ErrUnsupportedVersion is returned for packs written for another major version.
var ErrUnsupportedVersion = errors.New("unsupported content pack version")

//go:embed schema/pack.schema.json
var packSchemaJSON []byte

const packSchemaURL = "schema://closer/pack.schema.json"

var (
	packSchemaOnce sync.Once
	packSchema     *jsonschema.Schema
	packSchemaErr  error
)

// Pack is a versioned bundle of cards.
type Pack struct {
	Version string `json:"version"`
	Name    string `json:"name,omitempty"`
	Cards   []Raw  `json:"cards"`
}

// ReadPack decodes, validates and version-checks a JSON content pack.
func ReadPack(r io.Reader) (*Pack, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse pack: %w", err)
	}

	schema, err := compiledPackSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate pack: %w", err)
	}

	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	if err := CheckVersion(p.Version); err != nil {
		return nil, err
	}
	return &p, nil
}

// CheckVersion accepts any semantic version with the supported major.
func CheckVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != PackFormat {
		return fmt.Errorf("%w: %s (want %s.x.x)", ErrUnsupportedVersion, v, PackFormat)
	}
	return nil
}

// Normalized returns every card in the pack with defaults applied.
func (p *Pack) Normalized(now time.Time) []Card {
	cards := make([]Card, len(p.Cards))
	for i, raw := range p.Cards {
		// Keep pack order stable when sorting by creation time.
		cards[i] = Normalize(raw, now.Add(time.Duration(i)*time.Millisecond))
	}
	return cards
}

func compiledPackSchema() (*jsonschema.Schema, error) {
	packSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(packSchemaJSON, &doc); err != nil {
			packSchemaErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(packSchemaURL, doc); err != nil {
			packSchemaErr = fmt.Errorf("add pack schema: %w", err)
			return
		}
		packSchema, packSchemaErr = c.Compile(packSchemaURL)
		if packSchemaErr != nil {
			packSchemaErr = fmt.Errorf("compile pack schema: %w", packSchemaErr)
		}
	})
	return packSchema, packSchemaErr
}
