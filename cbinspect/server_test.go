package cbinspect_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbdriver"
	"github.com/corebft/corebft/cbinspect"
)

func buildValidators(powers ...uint64) (cbconsensus.ValidatorSet, []cbconsensus.Address) {
	vs := make([]cbconsensus.Validator, len(powers))
	addrs := make([]cbconsensus.Address, len(powers))
	for i, p := range powers {
		addr := cbconsensus.Address(string(rune('a' + i)))
		vs[i] = cbconsensus.Validator{Address: addr, VotingPower: p}
		addrs[i] = addr
	}
	return cbconsensus.NewValidatorSet(vs), addrs
}

func newTestDriver(t *testing.T) *cbdriver.Driver {
	t.Helper()
	vs, addrs := buildValidators(1, 1, 1)
	d, err := cbdriver.New(1, vs,
		cbdriver.WithAddress(addrs[0]),
		cbdriver.WithProposerSelector(cbconsensus.RoundRobinProposerSelector{}),
	)
	require.NoError(t, err)
	return d
}

func TestHandleState_UnknownDriverIDReturns404(t *testing.T) {
	s := cbinspect.NewServer()
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/driver/" + "00000000-0000-0000-0000-000000000000" + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleState_InvalidIDReturns400(t *testing.T) {
	s := cbinspect.NewServer()
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/driver/not-a-uuid/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleState_ReturnsRegisteredDriverSnapshot(t *testing.T) {
	s := cbinspect.NewServer()
	d := newTestDriver(t)
	s.Register(d)
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/driver/" + d.ID().String() + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Height  cbconsensus.Height `json:"height"`
		Round   string             `json:"round"`
		Step    string             `json:"step"`
		Decided bool               `json:"decided"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.Equal(t, cbconsensus.Height(1), view.Height)
	require.False(t, view.Decided)
}

func TestHandleState_AfterDeregisterReturns404(t *testing.T) {
	s := cbinspect.NewServer()
	d := newTestDriver(t)
	s.Register(d)
	s.Deregister(d.ID())
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/driver/" + d.ID().String() + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleVotes_InvalidRoundReturns400(t *testing.T) {
	s := cbinspect.NewServer()
	d := newTestDriver(t)
	s.Register(d)
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/driver/" + d.ID().String() + "/votes/not-a-number")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleVotes_EmptyRoundReturnsEmptyList(t *testing.T) {
	s := cbinspect.NewServer()
	d := newTestDriver(t)
	s.Register(d)
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/driver/" + d.ID().String() + "/votes/0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Empty(t, views)
}
