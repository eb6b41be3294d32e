// Package distance resolves the depot distance for the address entered in the wizard.
// Each committed postcode starts a new request generation; a result is applied only
// while its generation is still the latest, so an older response can never overwrite
// a newer one.
package distance

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/Soborbo/bristolhouseclearances/client"
	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/wizard"
)

// minPostcodeLength is the trimmed length below which nothing is looked up
const minPostcodeLength = 5

// PostcodeVerifier checks that a postcode exists
type PostcodeVerifier interface {
	Lookup(ctx context.Context, postcode string) models.PostcodeResult
}

// DistanceFetcher asks the server for the distance to an address
type DistanceFetcher interface {
	FetchDistance(ctx context.Context, line1, postcode string) (*models.DistanceResult, error)
}

// Target receives the resolved distance
type Target interface {
	Dispatch(action wizard.Action) wizard.State
}

var (
	_ DistanceFetcher = (*client.QuoteAPI)(nil)
	_ Target          = (*wizard.Machine)(nil)
)

// Outcome describes what happened to one committed postcode
type Outcome struct {
	Skipped    bool                  // Postcode too short, nothing was requested
	Superseded bool                  // A newer postcode took over; nothing was applied
	Applied    bool                  // The distance was stored in the wizard
	Postcode   models.PostcodeResult // Verification result, informational only
	Distance   *models.DistanceResult
	Err        error // Genuine failure, for logging only
}

// Resolver runs the postcode verification and distance lookup for the wizard
type Resolver struct {
	verifier PostcodeVerifier
	fetcher  DistanceFetcher
	target   Target

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewResolver creates a new Resolver. verifier may be nil to skip verification.
func NewResolver(verifier PostcodeVerifier, fetcher DistanceFetcher, target Target) *Resolver {
	return &Resolver{
		verifier: verifier,
		fetcher:  fetcher,
		target:   target,
	}
}

// begin starts a new generation and cancels the request of the previous one
func (r *Resolver) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	r.generation++
	callCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	return r.generation, callCtx, cancel
}

func (r *Resolver) current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen == r.generation
}

// OnPostcodeCommitted is called when the user leaves the postcode field.
// The distance is requested whatever the verification says; the server decides
// whether the address can be located.
func (r *Resolver) OnPostcodeCommitted(ctx context.Context, line1, postcode string) Outcome {
	pc := strings.TrimSpace(postcode)
	if len(pc) < minPostcodeLength {
		return Outcome{Skipped: true}
	}

	gen, callCtx, cancel := r.begin(ctx)
	defer cancel()

	var outcome Outcome
	if r.verifier != nil {
		outcome.Postcode = r.verifier.Lookup(callCtx, pc)
		if !outcome.Postcode.Valid() {
			log.Printf("⚠️  Distance: Postcode %s not verified: %s", pc, outcome.Postcode.Status)
		}
	}
	if !r.current(gen) {
		outcome.Superseded = true
		return outcome
	}

	result, err := r.fetcher.FetchDistance(callCtx, line1, pc)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		outcome.Superseded = true
		return outcome
	}
	r.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			outcome.Superseded = true
			return outcome
		}
		log.Printf("⚠️  Distance: Lookup for %s failed: %v", pc, err)
		outcome.Err = err
		return outcome
	}

	// Applied under the lock so a newer generation cannot start in between
	r.target.Dispatch(wizard.SetDistance{Miles: result.Miles})
	outcome.Distance = result
	outcome.Applied = true
	log.Printf("✓ Distance: %s resolved to %.1f miles", pc, result.Miles)
	return outcome
}

// Cancel aborts any request in flight; its result will not be applied
func (r *Resolver) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.generation++
}
