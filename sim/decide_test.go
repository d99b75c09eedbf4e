package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queuesim/queuesim/sim/rng"
)

func TestDecideByWeight_DistributesProportionally(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	a := newRecordingStation("a")
	b := newRecordingStation("b")
	d, err := NewDecideByWeight("decide", []Station{a, b}, []float64{1, 3})
	require.NoError(t, err)
	a.Attach(s)
	b.Attach(s)
	d.Attach(s)

	for i := 0; i < 4000; i++ {
		d.Accept(s, 0, NewClient(uint64(i), "job", 0))
	}

	total := len(a.accepted) + len(b.accepted)
	require.Equal(t, 4000, total)
	ratio := float64(len(b.accepted)) / float64(len(a.accepted))
	require.InDelta(t, 3.0, ratio, 0.5)
}

func TestDecideByWeight_RejectsMismatchedLengths(t *testing.T) {
	_, err := NewDecideByWeight("decide", []Station{newRecordingStation("a")}, []float64{1, 2})
	require.ErrorIs(t, err, ErrParameter)
}

func TestDecideByWeight_RejectsZeroTotal(t *testing.T) {
	_, err := NewDecideByWeight("decide", []Station{newRecordingStation("a")}, []float64{0})
	require.ErrorIs(t, err, ErrParameter)
}

func TestDecideByCondition_FirstMatchWins(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	vip := newRecordingStation("vip")
	regular := newRecordingStation("regular")
	d := NewDecideByCondition("decide", []Condition{
		{Predicate: func(c *Client) bool { return c.Attr("vip") == true }, Then: vip},
	}, regular)
	vip.Attach(s)
	regular.Attach(s)
	d.Attach(s)

	vipClient := NewClient(1, "job", 0)
	vipClient.SetAttr("vip", true)
	regularClient := NewClient(2, "job", 0)

	d.Accept(s, 0, vipClient)
	d.Accept(s, 0, regularClient)

	require.Len(t, vip.accepted, 1)
	require.Len(t, regular.accepted, 1)
}

func TestDecideByClientType_RoutesByTypeName(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	gold := newRecordingStation("gold")
	silver := newRecordingStation("silver")
	d := NewDecideByClientType("decide", map[string]Station{"gold": gold}, silver)
	gold.Attach(s)
	silver.Attach(s)
	d.Attach(s)

	d.Accept(s, 0, NewClient(1, "gold", 0))
	d.Accept(s, 0, NewClient(2, "bronze", 0))

	require.Len(t, gold.accepted, 1)
	require.Len(t, silver.accepted, 1, "unmapped type falls to the configured default")
}

func TestDecideByClientType_PanicsOnUnmappedTypeWithNoDefault(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	gold := newRecordingStation("gold")
	d := NewDecideByClientType("decide", map[string]Station{"gold": gold}, nil)
	gold.Attach(s)
	d.Attach(s)

	require.PanicsWithError(t, "sim: wiring error: decide has no branch for client type \"bronze\" and no default", func() {
		d.Accept(s, 0, NewClient(1, "bronze", 0))
	})
}
