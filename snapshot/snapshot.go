// Package snapshot serializes the full GameState as a single binary blob
// (spec.md §6): msgpack framing, snappy compression, and a blake2b content
// hash used as a determinism check and a schema/config compatibility guard
// for per-house fog-of-war deltas.
package snapshot

import (
	"bytes"
	"fmt"

	"github.com/golang/snappy"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"

	"github.com/nicoberrocal/nomarch/state"
)

// SchemaVersion is bumped whenever the serialized shape of state.State
// changes incompatibly. Cross-build migrations are out of scope (spec.md
// §6) — a mismatched version is rejected outright.
const SchemaVersion uint32 = 1

// envelope is the on-wire structure: schema version plus the snappy-
// compressed msgpack payload.
type envelope struct {
	SchemaVersion uint32
	Payload       []byte
}

// stateDTO mirrors state.State's exported shape for serialization. State
// itself keeps its tables/indices unexported, so snapshot reconstructs a
// flat, serializable view rather than reaching into State's internals —
// the same boundary the teacher draws between a domain type and its
// persistence-facing document (e.g. diplomacy.RelationDoc mirroring
// diplomacy.Relation).
type stateDTO struct {
	Turn          uint32
	Houses        []state.House
	Systems       []state.System
	Colonies      []state.Colony
	Facilities    []state.Facility
	Fleets        []state.Fleet
	Squadrons     []state.Squadron
	Ships         []state.Ship
	GroundUnits   []state.GroundUnit
	Constructions []state.ConstructionProject
	Repairs       []state.RepairProject
	Transfers     []state.PopulationTransfer
}

// Encode serializes dto (as built by ToDTO) into a versioned, compressed
// snapshot blob; s is not read.
func Encode(s *state.State, dto stateDTO) ([]byte, error) {
	raw, err := msgpack.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal: %w", err)
	}
	compressed := snappy.Encode(nil, raw)
	env := envelope{SchemaVersion: SchemaVersion, Payload: compressed}
	out, err := msgpack.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal envelope: %w", err)
	}
	return out, nil
}

// Decode parses a snapshot blob, refusing a schema version mismatch.
func Decode(data []byte) (stateDTO, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return stateDTO{}, fmt.Errorf("snapshot: unmarshal envelope: %w", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return stateDTO{}, fmt.Errorf("snapshot: schema version mismatch: blob=%d engine=%d", env.SchemaVersion, SchemaVersion)
	}
	raw, err := snappy.Decode(nil, env.Payload)
	if err != nil {
		return stateDTO{}, fmt.Errorf("snapshot: decompress: %w", err)
	}
	var dto stateDTO
	if err := msgpack.Unmarshal(raw, &dto); err != nil {
		return stateDTO{}, fmt.Errorf("snapshot: unmarshal payload: %w", err)
	}
	return dto, nil
}

// ContentHash returns the blake2b-256 digest of a snapshot blob — used as
// the determinism check (spec.md §8 property 1: two independent executions
// of the same turn must produce byte-identical state) and embedded in
// per-house delta headers alongside the config hash.
func ContentHash(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// ConfigHash returns the blake2b-256 digest of a marshaled GameConfig,
// embedded in per-house fog-of-war snapshots so a delta can validate it was
// computed against the same ruleset (spec.md §6).
func ConfigHash(cfgBytes []byte) [32]byte {
	return blake2b.Sum256(cfgBytes)
}

// PlayerStateHeader is the compatibility header every per-house fog-of-war
// snapshot carries (spec.md §6): "(config_schema_version, config_hash);
// delta snapshots validate both match before applying."
type PlayerStateHeader struct {
	ConfigSchemaVersion uint32
	ConfigHash          [32]byte
}

// Compatible reports whether a delta snapshot's header matches the engine's
// current config.
func (h PlayerStateHeader) Compatible(currentSchemaVersion uint32, currentConfigHash [32]byte) bool {
	return h.ConfigSchemaVersion == currentSchemaVersion && bytes.Equal(h.ConfigHash[:], currentConfigHash[:])
}

// ToDTO flattens s into its serializable form.
func ToDTO(s *state.State, turn uint32) stateDTO {
	return stateDTO{
		Turn:          turn,
		Houses:        s.AllHouses(),
		Systems:       s.AllSystems(),
		Colonies:      s.AllColonies(),
		Facilities:    s.AllFacilities(),
		Fleets:        s.AllFleets(),
		Squadrons:     s.AllSquadrons(),
		Ships:         s.AllShips(),
		GroundUnits:   s.AllGroundUnits(),
		Constructions: s.AllConstructions(),
		Repairs:       s.AllRepairs(),
		Transfers:     s.AllTransfers(),
	}
}
