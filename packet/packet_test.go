package packet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoberrocal/nomarch/fleets"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/packet"
)

func TestValidate_RejectsMismatchedTurn(t *testing.T) {
	p := packet.CommandPacket{HouseID: 1, Turn: 5}
	err := packet.Validate(p, 6)
	assert.Error(t, err)
}

func TestValidate_RejectsMissingHouseID(t *testing.T) {
	p := packet.CommandPacket{Turn: 1}
	err := packet.Validate(p, 1)
	assert.Error(t, err)
}

func TestValidate_AcceptsWellFormedPacket(t *testing.T) {
	p := packet.CommandPacket{
		HouseID: 1, Turn: 1,
		FleetCommands: map[ids.FleetID]fleets.Command{
			2: {Type: fleets.CommandHold, Priority: 1},
		},
	}
	assert.NoError(t, packet.Validate(p, 1))
}

func TestEncodeDecode_RoundTrips(t *testing.T) {
	p := packet.CommandPacket{
		HouseID: 1, Turn: 1,
		EBPInvestment: 10,
		PopulationTransfers: []packet.PopulationTransferCommand{
			{From: 1, To: 2, Quantity: 500},
		},
	}
	data, err := packet.Encode(p)
	require.NoError(t, err)

	decoded, err := packet.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p.HouseID, decoded.HouseID)
	assert.Equal(t, p.EBPInvestment, decoded.EBPInvestment)
	assert.Len(t, decoded.PopulationTransfers, 1)
}
