package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/bristolhouseclearances/client"
	"github.com/Soborbo/bristolhouseclearances/distance"
	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/pricing"
	"github.com/Soborbo/bristolhouseclearances/wizard"
)

type fakeQuoteServer struct {
	submits   atomic.Int32
	distances atomic.Int32
	status    int
	last      models.QuoteSubmission
}

func (f *fakeQuoteServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/distance", func(w http.ResponseWriter, r *http.Request) {
		f.distances.Add(1)
		_ = json.NewEncoder(w).Encode(models.DistanceResponse{
			Success: true,
			Data:    &models.DistanceResult{Miles: 10, DistanceText: "10 miles", DurationText: "20 min"},
		})
	})
	mux.HandleFunc("/api/submit", func(w http.ResponseWriter, r *http.Request) {
		f.submits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&f.last)
		if f.status != 0 {
			w.WriteHeader(f.status)
			_ = json.NewEncoder(w).Encode(models.QuoteResponse{Success: false, Message: "Verification failed"})
			return
		}
		price := pricing.Compute(f.last.Items, f.last.AccessIssues, f.last.Distance.EffectiveMiles())
		_ = json.NewEncoder(w).Encode(models.QuoteResponse{Success: true, Price: &price})
	})
	return mux
}

type quoteRig struct {
	server    *fakeQuoteServer
	repo      *wizard.MemoryRepository
	machine   *wizard.Machine
	resolver  *distance.Resolver
	submitter *wizard.Submitter
}

func newQuoteRig(t *testing.T, repo *wizard.MemoryRepository, fake *fakeQuoteServer) *quoteRig {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	api := client.NewQuoteAPI(server.URL, server.Client())
	machine := wizard.NewMachine(repo)
	return &quoteRig{
		server:    fake,
		repo:      repo,
		machine:   machine,
		resolver:  distance.NewResolver(nil, api, machine),
		submitter: wizard.NewSubmitter(machine, api),
	}
}

func (r *quoteRig) run(input quoteInput) (string, error) {
	var out bytes.Buffer
	err := runQuote(context.Background(), &out, r.machine, r.resolver, r.submitter, input)
	return out.String(), err
}

func completeInput() quoteInput {
	return quoteInput{
		items:   map[string]int{"sofa_qty": 1, "mattress_qty": 2},
		access:  []string{"no-lift"},
		address: models.Address{Line1: "1 High Street", Postcode: "bs1 1aa"},
		contact: models.Contact{FirstName: "Sam", LastName: "Jones", Email: "sam@example.com", Phone: "07123 456789"},
		consent: true,
	}
}

func TestRunQuote_Complete(t *testing.T) {
	rig := newQuoteRig(t, wizard.NewMemoryRepository(), &fakeQuoteServer{})

	out, err := rig.run(completeInput())
	require.NoError(t, err)

	assert.Contains(t, out, "Distance from depot: 10 miles (20 min)")
	assert.Contains(t, out, "Quote submitted")
	assert.Contains(t, out, "£210.00")
	assert.Equal(t, "BS1 1AA", rig.server.last.Address.Postcode)
	assert.Equal(t, models.DistanceInfo{Miles: 10, Calculated: true}, rig.server.last.Distance)

	state := rig.machine.State()
	assert.True(t, state.Submitted)
	assert.Equal(t, wizard.LastStep, state.CurrentStep)
}

func TestRunQuote_ResumesFromSession(t *testing.T) {
	repo := wizard.NewMemoryRepository()
	fake := &fakeQuoteServer{}

	partial := completeInput()
	partial.address = models.Address{}
	_, err := newQuoteRig(t, repo, fake).run(partial)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 3 is incomplete")
	assert.Equal(t, int32(0), fake.submits.Load())

	// A second run only supplies the missing address
	out, err := newQuoteRig(t, repo, fake).run(quoteInput{
		address: models.Address{Line1: "1 High Street", Postcode: "BS1 1AA"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "£210.00")
	assert.Equal(t, int32(1), fake.submits.Load())

	// Once submitted, rerunning shows the stored price without submitting again
	out, err = newQuoteRig(t, repo, fake).run(quoteInput{})
	require.NoError(t, err)
	assert.Contains(t, out, "Quote already submitted")
	assert.Equal(t, int32(1), fake.submits.Load())
}

func TestRunQuote_LocalValidation(t *testing.T) {
	rig := newQuoteRig(t, wizard.NewMemoryRepository(), &fakeQuoteServer{})
	input := completeInput()
	input.consent = false
	input.contact.Email = "nope"

	out, err := rig.run(input)
	require.Error(t, err)
	assert.Contains(t, out, "email:")
	assert.Contains(t, out, "gdpr:")
	assert.Equal(t, int32(0), rig.server.submits.Load())
}

func TestRunQuote_ServerRejection(t *testing.T) {
	rig := newQuoteRig(t, wizard.NewMemoryRepository(), &fakeQuoteServer{status: http.StatusForbidden})

	_, err := rig.run(completeInput())
	require.Error(t, err)
	assert.Equal(t, "Verification failed", err.Error())
	assert.False(t, rig.machine.State().Submitted)
}

func TestRunQuote_NoItems(t *testing.T) {
	rig := newQuoteRig(t, wizard.NewMemoryRepository(), &fakeQuoteServer{})

	_, err := rig.run(quoteInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 is incomplete")
}
