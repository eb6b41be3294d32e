package service

import (
	"context"
	"sync"

	"github.com/Soborbo/bristolhouseclearances/dispatch"
	"github.com/Soborbo/bristolhouseclearances/models"
)

// inlineDispatcher runs tasks synchronously so tests can observe their effects
type inlineDispatcher struct {
	mu     sync.Mutex
	names  []string
	errors []error
}

var _ dispatch.Runner = (*inlineDispatcher)(nil)

func (d *inlineDispatcher) Go(name string, task dispatch.Task) bool {
	err := task(context.Background())
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = append(d.names, name)
	d.errors = append(d.errors, err)
	return true
}

// heldDispatcher keeps tasks without running them
type heldDispatcher struct {
	tasks []dispatch.Task
}

func (d *heldDispatcher) Go(name string, task dispatch.Task) bool {
	d.tasks = append(d.tasks, task)
	return true
}

type fakeVerifier struct {
	ok     bool
	err    error
	tokens []string
}

func (f *fakeVerifier) Verify(ctx context.Context, token string, remoteIP string) (bool, error) {
	f.tokens = append(f.tokens, token)
	return f.ok, f.err
}

type fakeEmail struct {
	err  error
	sent []*models.EmailMessage
}

func (f *fakeEmail) Send(ctx context.Context, msg *models.EmailMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeSheet struct {
	err  error
	rows [][]any
}

func (f *fakeSheet) AppendRow(ctx context.Context, values []any) error {
	f.rows = append(f.rows, values)
	return f.err
}

type fakeRecords struct {
	err     error
	records []*models.QuoteRecord
}

func (f *fakeRecords) Insert(ctx context.Context, record *models.QuoteRecord) error {
	f.records = append(f.records, record)
	return f.err
}
