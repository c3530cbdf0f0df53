// Package packet defines CommandPacket, the per-house order bundle the
// engine accepts for one turn, its msgpack wire codec, and all-or-nothing
// validation with line-referenced diagnostics (spec.md §6).
package packet

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/nicoberrocal/nomarch/fleets"
	"github.com/nicoberrocal/nomarch/ids"
)

// BuildCommand is one new-construction order inside a packet.
type BuildCommand struct {
	Colony      ids.ColonyID
	Facility    ids.FacilityID
	TargetClass string
	IsShip      bool
}

// RepairCommand is one repair order.
type RepairCommand struct {
	Colony ids.ColonyID
	Target ids.ShipID // 0 if repairing a facility
}

// ScrapCommand liquidates a ship or facility for partial salvage.
type ScrapCommand struct {
	Ship     ids.ShipID     // 0 if scrapping a facility
	Facility ids.FacilityID // 0 if scrapping a ship
}

// DiplomaticCommand is one diplomacy order: declare, propose ceasefire, etc.
type DiplomaticCommand struct {
	Kind   string // "Declare" | "ProposeCeasefire" | "AcceptCeasefire"
	Target ids.HouseID
	Value  string // target Relation, when Kind == "Declare"
}

// EspionageCommand is one espionage order for this turn.
type EspionageCommand struct {
	Op     string
	Target ids.HouseID
	EBP    int
	CIP    int
}

// PopulationTransferCommand moves population between two of the house's own
// colonies via the Space Guild.
type PopulationTransferCommand struct {
	From, To ids.ColonyID
	Quantity int64
}

// TerraformCommand upgrades a colony's planet class by one step.
type TerraformCommand struct {
	Colony ids.ColonyID
}

// ColonyManagementCommand toggles per-colony automation flags.
type ColonyManagementCommand struct {
	Colony                ids.ColonyID
	AutomationBuild       *bool
	AutomationFighterLoad *bool
	TaxRate               *float64
}

// CommandPacket is the full per-house order bundle for one turn (spec.md
// §6).
type CommandPacket struct {
	HouseID              ids.HouseID
	Turn                 uint32
	TreasuryAtSubmission int64
	FleetCommands        map[ids.FleetID]fleets.Command
	ZeroTurnCommands     []ids.FleetID
	BuildCommands        []BuildCommand
	RepairCommands       []RepairCommand
	ScrapCommands        []ScrapCommand
	ResearchAllocation   map[string]float64
	DiplomaticCommands   []DiplomaticCommand
	EspionageActions     []EspionageCommand
	EBPInvestment        int
	CIPInvestment        int
	PopulationTransfers  []PopulationTransferCommand
	TerraformCommands    []TerraformCommand
	ColonyManagement     []ColonyManagementCommand
}

// Encode serializes p to its msgpack wire form.
func Encode(p CommandPacket) ([]byte, error) {
	return msgpack.Marshal(p)
}

// Decode parses a msgpack-encoded CommandPacket.
func Decode(data []byte) (CommandPacket, error) {
	var p CommandPacket
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return CommandPacket{}, fmt.Errorf("packet: decode: %w", err)
	}
	return p, nil
}

// ValidationDiagnostic names the first command-line-indexed error found
// during all-or-nothing validation (spec.md §6: "any error rejects the
// whole packet with a line-referenced diagnostic").
type ValidationDiagnostic struct {
	Line   int
	Reason string
}

func (d ValidationDiagnostic) Error() string {
	return fmt.Sprintf("packet line %d: %s", d.Line, d.Reason)
}

// Validate performs structural, all-or-nothing validation of p against the
// current turn number. It does not check domain legality of individual
// commands (ownership, funds, reachability) — those are per-command checks
// performed by the consuming packages (fleets, commission, ...) during
// Command-phase application, each producing its own OrderRejected event
// rather than failing the whole packet (spec.md §7).
func Validate(p CommandPacket, currentTurn uint32) error {
	if p.Turn != currentTurn {
		return ValidationDiagnostic{Line: 0, Reason: "packet turn does not match current turn"}
	}
	if p.HouseID == ids.Null {
		return ValidationDiagnostic{Line: 0, Reason: "missing house_id"}
	}
	line := 1
	for fid, cmd := range p.FleetCommands {
		if fid == ids.Null {
			return ValidationDiagnostic{Line: line, Reason: "fleet command targets null fleet id"}
		}
		if cmd.Priority < 0 {
			return ValidationDiagnostic{Line: line, Reason: "negative command priority"}
		}
		line++
	}
	for _, b := range p.BuildCommands {
		if b.Colony == ids.Null {
			return ValidationDiagnostic{Line: line, Reason: "build command targets null colony id"}
		}
		line++
	}
	for _, t := range p.PopulationTransfers {
		if t.Quantity <= 0 {
			return ValidationDiagnostic{Line: line, Reason: "non-positive population transfer quantity"}
		}
		line++
	}
	return nil
}
