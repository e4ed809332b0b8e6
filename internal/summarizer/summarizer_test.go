package summarizer

import (
	"context"
	"errors"
	"testing"

	"incidentdesk/internal/tester"
)

type fakeClient struct {
	out   string
	err   error
	calls int

	lastSystem string
	lastUser   string
}

func (f *fakeClient) Name() string { return "fake" }
func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.out, f.err
}

func TestSummarizeEmbedsDescriptionInPrompt(t *testing.T) {
	cli := &fakeClient{out: "Fallo de conectividad"}
	s := New(cli)

	out, err := s.Summarize(context.Background(), "la base de datos no responde")
	tester.NoErr(t, err)
	tester.Eq(t, out, "Fallo de conectividad", "model answer returned verbatim")
	tester.Contains(t, cli.lastUser, "la base de datos no responde")
	tester.Contains(t, cli.lastUser, "resumen técnico")
	tester.Contains(t, cli.lastSystem, "español")
}

func TestSummarizePropagatesClientError(t *testing.T) {
	cli := &fakeClient{err: errors.New("rate limited")}
	s := New(cli)

	_, err := s.Summarize(context.Background(), "d")
	tester.Err(t, err)
	tester.Contains(t, err.Error(), "summarize incident")
}

func TestCachedReusesSummaryForSameDescription(t *testing.T) {
	cli := &fakeClient{out: "resumen"}
	c, err := NewCached(New(cli), 8)
	tester.NoErr(t, err)

	first, err := c.Summarize(context.Background(), "misma descripción")
	tester.NoErr(t, err)
	second, err := c.Summarize(context.Background(), "misma descripción")
	tester.NoErr(t, err)

	tester.Eq(t, first, second)
	tester.Eq(t, cli.calls, 1, "second call served from cache")

	_, err = c.Summarize(context.Background(), "otra descripción")
	tester.NoErr(t, err)
	tester.Eq(t, cli.calls, 2, "different description misses the cache")
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	cli := &fakeClient{err: errors.New("provider unavailable")}
	c, err := NewCached(New(cli), 8)
	tester.NoErr(t, err)

	_, err = c.Summarize(context.Background(), "d")
	tester.Err(t, err)

	cli.err = nil
	cli.out = "resumen"
	out, err := c.Summarize(context.Background(), "d")
	tester.NoErr(t, err, "retry after a failure reaches the model again")
	tester.Eq(t, out, "resumen")
	tester.Eq(t, cli.calls, 2)
}
