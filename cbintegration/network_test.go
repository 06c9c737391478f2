package cbintegration_test

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbintegration"
)

func TestRunHappyPath_FourNodesAgree(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	net := cbintegration.New(log, cbconsensus.Height(1), 4)

	value := cbconsensus.Value{Data: []byte("block-1")}
	result, err := net.RunHappyPath(value, 200)
	require.NoError(t, err)
	require.Len(t, result.Decided, 4)

	want := value.ID()
	for addr, got := range result.Decided {
		require.Equalf(t, want, got, "node %s decided a different value", addr)
	}
	require.Equal(t, 1, result.Rounds)
}

func TestRunHappyPath_SingleValidatorDecidesImmediately(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	net := cbintegration.New(log, cbconsensus.Height(1), 1)

	value := cbconsensus.Value{Data: []byte("solo")}
	result, err := net.RunHappyPath(value, 50)
	require.NoError(t, err)
	require.Len(t, result.Decided, 1)
}

func TestRunHappyPath_ExceedingStepBudgetErrors(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	net := cbintegration.New(log, cbconsensus.Height(1), 4)

	value := cbconsensus.Value{Data: []byte("block-1")}
	_, err := net.RunHappyPath(value, 1)
	require.Error(t, err)
}

func TestMoveToHeight_ResetsEveryNode(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	net := cbintegration.New(log, cbconsensus.Height(1), 3)

	value := cbconsensus.Value{Data: []byte("block-1")}
	_, err := net.RunHappyPath(value, 100)
	require.NoError(t, err)

	net.MoveToHeight(2)
	require.Equal(t, cbconsensus.Height(2), net.Height)
	for _, n := range net.Nodes {
		require.Equal(t, cbconsensus.Height(2), n.Driver.Height())
		require.Nil(t, n.Driver.State().Decision)
	}

	value2 := cbconsensus.Value{Data: []byte("block-2")}
	result, err := net.RunHappyPath(value2, 100)
	require.NoError(t, err)
	require.Len(t, result.Decided, 3)
}
